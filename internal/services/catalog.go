package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"melodymesh/internal/domain"
)

type catalogService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewCatalogService creates a CatalogService backed by the given event repository.
func NewCatalogService(eventRepo domain.EventRepository, timeout time.Duration) domain.CatalogService {
	return &catalogService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *catalogService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.list(ctx, domain.EventFilter{})
}

func (s *catalogService) ListByOwner(ctx context.Context, owner string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.list(ctx, domain.EventFilter{CreatedBy: &owner})
}

func (s *catalogService) ListByOwnerAndType(ctx context.Context, owner, eventType string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if !domain.ValidEventType(eventType) {
		return nil, fmt.Errorf("%w: type must be %q or %q", domain.ErrInvalidInput, domain.EventTypeUpcoming, domain.EventTypePast)
	}
	return s.list(ctx, domain.EventFilter{CreatedBy: &owner, Type: &eventType})
}

func (s *catalogService) list(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *catalogService) Create(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if !domain.ValidEventType(event.Type) {
		return fmt.Errorf("%w: type must be %q or %q", domain.ErrInvalidInput, domain.EventTypeUpcoming, domain.EventTypePast)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (s *catalogService) Update(ctx context.Context, id string, changes domain.EventChanges) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if changes.Title != nil && strings.TrimSpace(*changes.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	if changes.Type != nil && !domain.ValidEventType(*changes.Type) {
		return nil, fmt.Errorf("%w: type must be %q or %q", domain.ErrInvalidInput, domain.EventTypeUpcoming, domain.EventTypePast)
	}

	updated, err := s.eventRepo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
