package services

import (
	"fmt"
	"legal_aid_app_go/config"
	"legal_aid_app_go/models"
	"log"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail delivers an email through Resend, or logs it in test mode.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		log.Printf("[EMAIL] (test mode) To: %v Subject: %q", email.To, email.Subject)
		log.Printf("[EMAIL] (test mode) Body: %s", email.TextBody)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync delivers an email in the background. Delivery failures are
// logged and never abort the calling operation.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

// SendWelcomeEmail notifies a freshly provisioned user about the next setup
// step for their role.
func SendWelcomeEmail(cfg *config.Config, user *models.User, guidance string) {
	SendEmailAsync(cfg, &Email{
		To:       []string{user.Email},
		Subject:  "Welcome to Legal Aid Hub",
		TextBody: fmt.Sprintf("Hello %s,\n\n%s\n\nThe Legal Aid Hub team", user.FullName, guidance),
	})
}
