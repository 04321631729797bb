package domain

import (
	"context"
	"time"
)

// ContactMessage is a write-only record of a contact form submission.
// swagger:model ContactMessage
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRepository defines the interface for contact message storage.
// Messages are only ever inserted.
type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
}

// ContactService defines the business logic for contact intake.
type ContactService interface {
	Submit(ctx context.Context, name, email, message string) (*ContactMessage, error)
}
