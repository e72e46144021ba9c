package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

const resendEndpoint = "https://api.resend.com/emails"

// SendEmail sends an email using the Resend API
// Parameters:
//   - subject: The email subject line
//   - body: The email body (HTML or plain text)
//   - recipients: A list of recipient email addresses
//
// Requires environment variables:
//   - RESEND_API_KEY: Your Resend API key
//   - RESEND_FROM_EMAIL: The sender email address (e.g., "Your Name <site@example.com>")
func SendEmail(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	cfg := config.New()

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if fromEmail == "" {
		return fmt.Errorf("RESEND_FROM_EMAIL environment variable is required")
	}

	payload := ResendEmailRequest{
		From:    fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest("POST", resendEndpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}

// DispatchContactEmails sends the owner notification and, when enabled, a
// confirmation to the submitter. Both sends run concurrently and failures are
// logged only: the stored submission is never rolled back because an email
// bounced.
func DispatchContactEmails(settings *models.NotificationSettings, submission *models.ContactSubmission) {
	if settings == nil || settings.NotificationEmail == nil || *settings.NotificationEmail == "" {
		log.Warn().Msg("No notification email configured, skipping contact notification")
		return
	}

	var group errgroup.Group

	group.Go(func() error {
		subject := fmt.Sprintf("New contact submission: %s", submission.Subject)
		body := fmt.Sprintf(
			"<p><strong>From:</strong> %s (%s)</p><p><strong>Subject:</strong> %s</p><p>%s</p>",
			submission.Name, submission.Email, submission.Subject, submission.Message,
		)
		if err := SendEmail(subject, body, []string{*settings.NotificationEmail}); err != nil {
			log.Error().Err(err).Str("submissionId", submission.ID.String()).Msg("Failed to send contact notification email")
		}
		return nil
	})

	if settings.SendConfirmationEmail {
		group.Go(func() error {
			subject := "Thanks for reaching out"
			body := fmt.Sprintf(
				"<p>Hi %s,</p><p>Your message \"%s\" was received. I'll get back to you soon.</p>",
				submission.Name, submission.Subject,
			)
			if err := SendEmail(subject, body, []string{submission.Email}); err != nil {
				log.Error().Err(err).Str("submissionId", submission.ID.String()).Msg("Failed to send contact confirmation email")
			}
			return nil
		})
	}

	// errors are swallowed inside each send; Wait only synchronizes
	_ = group.Wait()
}
