package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"melodymesh/internal/domain"
)

type contactService struct {
	contactRepo  domain.ContactRepository
	emailService domain.EmailService
}

// NewContactService creates a ContactService. emailService may be nil, in
// which case no notification is sent.
func NewContactService(contactRepo domain.ContactRepository, emailService domain.EmailService) domain.ContactService {
	return &contactService{
		contactRepo:  contactRepo,
		emailService: emailService,
	}
}

func (s *contactService) Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: name, email, and message are required", domain.ErrInvalidInput)
	}

	msg := &domain.ContactMessage{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	// Notification is best effort; a mailer outage must not lose the message.
	if s.emailService != nil {
		data := &domain.ContactMessageEmailData{
			Name:    msg.Name,
			Email:   msg.Email,
			Message: msg.Message,
		}
		if err := s.emailService.SendContactMessage(ctx, data); err != nil {
			log.Printf("[CONTACT] failed to send notification email: %v", err)
		}
	}
	return msg, nil
}
