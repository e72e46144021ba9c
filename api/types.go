package api

import (
	"gorm.io/datatypes"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	skillHandler       skillHandler
	experienceHandler  experienceHandler
	certificateHandler certificateHandler
	settingsHandler    settingsHandler
	contactHandler     contactHandler
	authHandler        authHandler
	chatHandler        chatHandler
	uploadHandler      uploadHandler
	healthHandler      healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// toStringSlice converts a decoded JSON value into a string-list column value.
func toStringSlice(v any) (datatypes.JSONSlice[string], bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make(datatypes.JSONSlice[string], 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// toInt converts a decoded JSON number into an int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
