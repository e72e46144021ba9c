package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

var testSecret = []byte("test-secret")

type testAPI struct {
	server *httptest.Server
	db     database.Database
}

func newTestAPI(t *testing.T, mutate ...func(*handlerConfig)) testAPI {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(gormDB))

	db := database.New(gormDB)

	// The list cache is package-level; isolate tests from each other.
	listCache.Flush()

	cfg := handlerConfig{
		resolver:    NewClaimsResolver(testSecret),
		secret:      testSecret,
		tokenTTL:    time.Hour,
		clientKey:   "widget-key",
		startupTime: time.Now(),
	}
	for _, m := range mutate {
		m(&cfg)
	}

	router := chi.NewRouter()
	setupRoutes(router, initializeHandlers(db, cfg), newAuthMiddleware(cfg.resolver))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return testAPI{server: server, db: db}
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	user := models.User{ID: uuid.New(), Email: role + "@example.com", Role: role}
	token, err := IssueToken(&user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (a testAPI) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestProjectLifecycle(t *testing.T) {
	api := newTestAPI(t)
	admin := tokenFor(t, models.RoleAdmin)

	t.Run("public list starts empty", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/projects", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, decodeBody[[]models.Project](t, resp))
	})

	var created models.Project
	t.Run("admin creates a project", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/projects", admin, map[string]any{
			"title":       "Portfolio Site",
			"description": "This very site",
			"tech_stack":  []string{"Go", "Postgres"},
			"featured":    true,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created = decodeBody[models.Project](t, resp)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "Portfolio Site", created.Title)
	})

	t.Run("create invalidates the cached list", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/projects", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		projects := decodeBody[[]models.Project](t, resp)
		require.Len(t, projects, 1)
		assert.Equal(t, created.ID, projects[0].ID)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		resp := api.do(t, http.MethodPut, "/projects/"+created.ID.String(), admin, map[string]any{
			"title":         "Renamed",
			"display_order": 3,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		updated := decodeBody[models.Project](t, resp)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "This very site", updated.Description)
		assert.Equal(t, 3, updated.DisplayOrder)
		assert.True(t, updated.Featured)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/projects/"+created.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Renamed", decodeBody[models.Project](t, resp).Title)
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/projects/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("get malformed id is 400", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/projects/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete removes it", func(t *testing.T) {
		resp := api.do(t, http.MethodDelete, "/projects/"+created.ID.String(), admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = api.do(t, http.MethodGet, "/projects/"+created.ID.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminGating(t *testing.T) {
	api := newTestAPI(t)
	viewer := tokenFor(t, models.RoleViewer)

	payload := map[string]any{"name": "Go", "category": models.SkillCategoryBackend, "proficiency": 90}

	t.Run("mutation without token is 401", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/skills", "", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("mutation with garbage token is 401", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/skills", "not-a-jwt", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("mutation as non-admin is 403", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/skills", viewer, payload)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("expired admin token is 401", func(t *testing.T) {
		user := models.User{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}
		expired, err := IssueToken(&user, testSecret, -time.Minute)
		require.NoError(t, err)

		resp := api.do(t, http.MethodPost, "/skills", expired, payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("public reads need no token", func(t *testing.T) {
		for _, path := range []string{"/projects", "/skills", "/experiences", "/certificates", "/profile", "/resume"} {
			resp := api.do(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})
}

func TestSettingsEndpoints(t *testing.T) {
	api := newTestAPI(t)
	admin := tokenFor(t, models.RoleAdmin)

	t.Run("profile is null before first write", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/profile", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "null", strings.TrimSpace(string(raw)))
	})

	t.Run("first update creates the row", func(t *testing.T) {
		resp := api.do(t, http.MethodPut, "/profile", admin, map[string]any{
			"hero_title":   "Hi, I'm Rob",
			"career_goals": []string{"ship things"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		settings := decodeBody[models.ProfileSettings](t, resp)
		require.NotNil(t, settings.HeroTitle)
		assert.Equal(t, "Hi, I'm Rob", *settings.HeroTitle)
	})

	t.Run("second update touches only named fields", func(t *testing.T) {
		resp := api.do(t, http.MethodPut, "/profile", admin, map[string]any{"about_text": "I write Go."})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		settings := decodeBody[models.ProfileSettings](t, resp)
		require.NotNil(t, settings.HeroTitle)
		assert.Equal(t, "Hi, I'm Rob", *settings.HeroTitle)
		require.NotNil(t, settings.AboutText)
		assert.Equal(t, "I write Go.", *settings.AboutText)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		resp := api.do(t, http.MethodPut, "/profile", admin, map[string]any{
			"singleton_key": "evil",
			"id":            uuid.NewString(),
			"footer_text":   "bye",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		settings := decodeBody[models.ProfileSettings](t, resp)
		require.NotNil(t, settings.FooterText)
		assert.Equal(t, "bye", *settings.FooterText)

		count, err := api.db.ProfileSettingsRepo().Count()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("resume settings round trip", func(t *testing.T) {
		resp := api.do(t, http.MethodPut, "/resume", admin, map[string]any{
			"file_url":  "https://example.com/resume.pdf",
			"file_name": "resume.pdf",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = api.do(t, http.MethodGet, "/resume", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resume := decodeBody[models.ResumeSettings](t, resp)
		require.NotNil(t, resume.FileName)
		assert.Equal(t, "resume.pdf", *resume.FileName)
	})

	t.Run("notification settings are admin only", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/notification-settings", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = api.do(t, http.MethodPut, "/notification-settings", admin, map[string]any{
			"notification_email": "owner@example.com",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = api.do(t, http.MethodGet, "/notification-settings", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		settings := decodeBody[models.NotificationSettings](t, resp)
		require.NotNil(t, settings.NotificationEmail)
		assert.Equal(t, "owner@example.com", *settings.NotificationEmail)
	})
}

func TestContactPipeline(t *testing.T) {
	api := newTestAPI(t)
	admin := tokenFor(t, models.RoleAdmin)
	viewer := tokenFor(t, models.RoleViewer)

	t.Run("anyone can submit", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/contact", "", map[string]any{
			"name":    "Ada",
			"email":   "ada@example.com",
			"subject": "Hello",
			"message": "I have a project for you.",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		submission := decodeBody[models.ContactSubmission](t, resp)
		assert.NotEqual(t, uuid.Nil, submission.ID)
		assert.False(t, submission.IsRead)
	})

	t.Run("validation failures are 400", func(t *testing.T) {
		cases := []map[string]any{
			{"email": "ada@example.com", "subject": "s", "message": "m"},
			{"name": "Ada", "email": "not-an-email", "subject": "s", "message": "m"},
			{"name": "Ada", "email": "ada@example.com", "subject": "   ", "message": "m"},
		}
		for i, payload := range cases {
			resp := api.do(t, http.MethodPost, "/contact", "", payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "case %d", i)
		}
	})

	t.Run("listing requires admin", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/contact", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = api.do(t, http.MethodGet, "/contact", viewer, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin reads then marks read", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/contact", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[struct {
			Submissions []models.ContactSubmission `json:"submissions"`
			UnreadCount int64                      `json:"unread_count"`
		}](t, resp)
		require.Len(t, body.Submissions, 1)
		assert.Equal(t, int64(1), body.UnreadCount)

		id := body.Submissions[0].ID.String()
		resp = api.do(t, http.MethodPut, "/contact/"+id+"/read", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = api.do(t, http.MethodGet, "/contact", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body = decodeBody[struct {
			Submissions []models.ContactSubmission `json:"submissions"`
			UnreadCount int64                      `json:"unread_count"`
		}](t, resp)
		assert.Equal(t, int64(0), body.UnreadCount)
		assert.True(t, body.Submissions[0].IsRead)

		resp = api.do(t, http.MethodDelete, "/contact/"+id, admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestAuthEndpoints(t *testing.T) {
	api := newTestAPI(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Email: "owner@example.com", PasswordHash: string(hash), Role: models.RoleAdmin}
	require.NoError(t, api.db.UserRepo().Add(&user))

	t.Run("unknown email and wrong password look identical", func(t *testing.T) {
		unknown := api.do(t, http.MethodPost, "/auth/login", "", map[string]any{
			"email": "nobody@example.com", "password": "whatever",
		})
		wrong := api.do(t, http.MethodPost, "/auth/login", "", map[string]any{
			"email": "owner@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, wrong.StatusCode)

		unknownBody := decodeBody[map[string]any](t, unknown)
		wrongBody := decodeBody[map[string]any](t, wrong)
		assert.Equal(t, unknownBody["error"], wrongBody["error"])
	})

	t.Run("login then verify then mutate", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/auth/login", "", map[string]any{
			"email": "Owner@Example.com", "password": "s3cret",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		login := decodeBody[loginResponse](t, resp)
		require.NotEmpty(t, login.Token)
		assert.Equal(t, models.RoleAdmin, login.User.Role)

		resp = api.do(t, http.MethodGet, "/auth/verify", login.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		verify := decodeBody[map[string]any](t, resp)
		assert.Equal(t, true, verify["valid"])

		resp = api.do(t, http.MethodPost, "/certificates", login.Token, map[string]any{
			"title": "AWS Certified", "issuer": "Amazon",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("verify without token is 401", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/auth/verify", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRoleTableResolver(t *testing.T) {
	api := newTestAPI(t)
	resolver := NewRoleTableResolver(testSecret, api.db.UserRepo())

	user := models.User{Email: "viewer@example.com", PasswordHash: "hash", Role: models.RoleViewer}
	require.NoError(t, api.db.UserRepo().Add(&user))

	token, err := IssueToken(&user, testSecret, time.Hour)
	require.NoError(t, err)

	identity, err := resolver.Resolve(token)
	require.NoError(t, err)
	assert.False(t, identity.IsAdmin)

	// A grant takes effect without reissuing the token.
	require.NoError(t, api.db.UserRepo().GrantRole(user.ID, models.RoleAdmin))

	identity, err = resolver.Resolve(token)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, user.ID, identity.UserID)
}

type fakeObjectStore struct {
	keys []string
}

func (s *fakeObjectStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.keys = append(s.keys, *params.Key)
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	admin := tokenFor(t, models.RoleAdmin)

	multipartBody := func(t *testing.T, filename string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
		return &buf, writer.FormDataContentType()
	}

	t.Run("stores file and returns public url", func(t *testing.T) {
		store := &fakeObjectStore{}
		api := newTestAPI(t, func(cfg *handlerConfig) {
			cfg.store = store
			cfg.bucket = "portfolio-assets"
			cfg.region = "us-east-1"
		})

		body, contentType := multipartBody(t, "avatar.PNG")
		req, err := http.NewRequest(http.MethodPost, api.server.URL+"/upload", body)
		require.NoError(t, err)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+admin)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		result := decodeBody[map[string]string](t, resp)
		assert.Equal(t, "avatar.PNG", result["file_name"])
		assert.True(t, strings.HasPrefix(result["url"], "https://portfolio-assets.s3.us-east-1.amazonaws.com/uploads/"))
		assert.True(t, strings.HasSuffix(result["url"], ".png"))

		require.Len(t, store.keys, 1)
		assert.True(t, strings.HasPrefix(store.keys[0], "uploads/"))
	})

	t.Run("unconfigured store is 503", func(t *testing.T) {
		api := newTestAPI(t)
		body, contentType := multipartBody(t, "avatar.png")

		req, err := http.NewRequest(http.MethodPost, api.server.URL+"/upload", body)
		require.NoError(t, err)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+admin)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestCreateValidation(t *testing.T) {
	api := newTestAPI(t)
	admin := tokenFor(t, models.RoleAdmin)

	t.Run("project without title", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/projects", admin, map[string]any{"description": "x"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("skill with unknown category", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/skills", admin, map[string]any{
			"name": "Go", "category": "Wizardry", "proficiency": 90,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("experience with unknown type", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/experiences", admin, map[string]any{
			"title": "Engineer", "company": "Acme", "period": "2024", "experience_type": "hobby",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
