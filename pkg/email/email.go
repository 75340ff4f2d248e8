package email

import (
	"context"
)

// EmailService defines the interface for sending transactional emails
type EmailService interface {
	// SendWelcomeEmail greets a newly registered user
	SendWelcomeEmail(ctx context.Context, to, name string) error

	// SendVerificationEmail sends an email verification link to the user
	SendVerificationEmail(ctx context.Context, to, name, token string) error
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	APIKey          string
	FromEmail       string
	FromName        string
	VerificationURL string
}
