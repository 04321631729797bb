package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"melodymesh/internal/delivery/http/helpers"
	"melodymesh/internal/domain"
)

// Date formats accepted for event dates: full timestamps and plain calendar days.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

func parseEventDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC3339", s)
}

// CreateEventRequest is the request body for POST /events
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	CreatedBy   string `json:"createdBy"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := parseEventDate(c.Date); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Type == "" {
		errs = append(errs, "type is required")
	} else if !domain.ValidEventType(c.Type) {
		errs = append(errs, "type must be \"upcoming\" or \"past\"")
	}
	return errs
}

// UpdateEventRequest is the request body for PUT /events/{id}. Omitted fields
// are left unchanged; createdBy is immutable and not accepted.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Type        *string `json:"type"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Date != nil {
		if _, err := parseEventDate(*u.Date); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if u.Type != nil && !domain.ValidEventType(*u.Type) {
		errs = append(errs, "type must be \"upcoming\" or \"past\"")
	}
	return errs
}

// DeleteEventResponse is the confirmation body for DELETE /events/{id}.
type DeleteEventResponse struct {
	Deleted bool `json:"deleted"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewEventController(logger *slog.Logger, svc domain.CatalogService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List events
// @Description Lists all events, optionally filtered by exact owner label and event type.
// @Tags events
// @Produce json
// @Param owner query string false "Owner label (exact match)"
// @Param type query string false "Event type: upcoming or past; rejected with 400 unless owner is also given"
// @Success 200 {object} helpers.APIResponse "data contains the event array"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner := q.Get("owner")
	eventType := q.Get("type")
	if eventType != "" && owner == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "type filter requires owner")
		return
	}

	var (
		events []*domain.Event
		err    error
	)
	switch {
	case owner != "" && eventType != "":
		events, err = c.Service.ListByOwnerAndType(r.Context(), owner, eventType)
	case owner != "":
		events, err = c.Service.ListByOwner(r.Context(), owner)
	default:
		events, err = c.Service.ListAll(r.Context())
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Create godoc
// @Summary Create an event
// @Description Create an event. Title, date, and type are required; type is "upcoming" or "past". The optional createdBy label attributes the event to its curator and cannot be changed later.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := parseEventDate(req.Date)
	event := domain.NewEvent(req.Title, req.Description, date, req.Type, req.CreatedBy, time.Time{}, time.Time{})
	if err := c.Service.Create(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update an event
// @Description Update an event's title, description, date, or type. Omitted fields are left unchanged; the owner label is immutable.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event id")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	changes := domain.EventChanges{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	}
	if req.Date != nil {
		date, _ := parseEventDate(*req.Date)
		changes.Date = &date
	}
	event, err := c.Service.Update(r.Context(), id, changes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Delete an event by identifier.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the deletion confirmation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event id")
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Deleted: true})
}
