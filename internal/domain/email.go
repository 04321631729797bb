package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ContactMessageEmailData holds data for the contact notification email sent
// to the site operator when a message is submitted.
type ContactMessageEmailData struct {
	Name    string
	Email   string
	Message string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendContactMessage(ctx context.Context, data *ContactMessageEmailData) error
}
