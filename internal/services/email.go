package services

import (
	"context"
	"fmt"
	"log"

	"melodymesh/internal/domain"
)

type emailService struct {
	mailer        domain.Mailer
	renderer      domain.EmailTemplateRenderer
	notifyAddress string
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer. Contact notifications are delivered to notifyAddress.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, notifyAddress string) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, notifyAddress: notifyAddress}
}

// SendContactMessage sends the operator notification for a submitted contact
// message using the "contact_message" template.
func (s *emailService) SendContactMessage(ctx context.Context, data *domain.ContactMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("contact message data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("contact_message", data)
	if err != nil {
		return fmt.Errorf("failed to render contact_message template: %w", err)
	}
	if err := s.mailer.Send(s.notifyAddress, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	log.Printf("[EMAIL] Contact notification sent to %s", s.notifyAddress)
	return nil
}
