package domain

import (
	"context"
	"errors"
	"time"
)

// Event types. An event is either upcoming or past; nothing else is accepted.
const (
	EventTypeUpcoming = "upcoming"
	EventTypePast     = "past"
)

// ErrEventNotFound is returned when a mutation targets a missing event.
var ErrEventNotFound = errors.New("event not found")

// ValidEventType reports whether t is one of the enumerated event types.
func ValidEventType(t string) bool {
	return t == EventTypeUpcoming || t == EventTypePast
}

// Event represents a catalog event. CreatedBy is a free-text owner label used
// for filtering, not a referential key, and is immutable after creation.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title, description string, date time.Time, eventType, createdBy string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Type:        eventType,
		CreatedBy:   createdBy,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventFilter narrows catalog listings. Nil fields match everything;
// non-nil fields are exact, case-sensitive matches.
type EventFilter struct {
	CreatedBy *string
	Type      *string
}

// EventChanges carries a partial update. Nil fields are left untouched.
type EventChanges struct {
	Title       *string
	Description *string
	Date        *time.Time
	Type        *string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, id string, changes EventChanges) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService defines the business logic for the event catalog.
type CatalogService interface {
	ListAll(ctx context.Context) ([]*Event, error)
	ListByOwner(ctx context.Context, owner string) ([]*Event, error)
	ListByOwnerAndType(ctx context.Context, owner, eventType string) ([]*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, id string, changes EventChanges) (*Event, error)
	Delete(ctx context.Context, id string) error
}
