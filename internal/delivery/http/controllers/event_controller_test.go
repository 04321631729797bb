package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"melodymesh/internal/delivery/http/helpers"
	"melodymesh/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogService implements domain.CatalogService for handler tests.
type fakeCatalogService struct {
	events      []*domain.Event
	listErr     error
	lastOwner   string
	lastType    string
	createErr   error
	lastCreated *domain.Event
	updated     *domain.Event
	updateErr   error
	lastChanges domain.EventChanges
	deleteErr   error
	lastDeleted string
}

func (f *fakeCatalogService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeCatalogService) ListByOwner(ctx context.Context, owner string) ([]*domain.Event, error) {
	f.lastOwner = owner
	return f.events, f.listErr
}

func (f *fakeCatalogService) ListByOwnerAndType(ctx context.Context, owner, eventType string) ([]*domain.Event, error) {
	f.lastOwner = owner
	f.lastType = eventType
	return f.events, f.listErr
}

func (f *fakeCatalogService) Create(ctx context.Context, e *domain.Event) error {
	f.lastCreated = e
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = "evt-1"
	return nil
}

func (f *fakeCatalogService) Update(ctx context.Context, id string, changes domain.EventChanges) (*domain.Event, error) {
	f.lastChanges = changes
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeCatalogService) Delete(ctx context.Context, id string) error {
	f.lastDeleted = id
	return f.deleteErr
}

func TestEventController_List(t *testing.T) {
	sample := []*domain.Event{
		{ID: "evt-1", Title: "Spring Fest", Type: domain.EventTypeUpcoming, CreatedBy: "melodyadmin"},
	}

	t.Run("all events", func(t *testing.T) {
		fake := &fakeCatalogService{events: sample}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		assert.Empty(t, fake.lastOwner)
	})

	t.Run("owner filter", func(t *testing.T) {
		fake := &fakeCatalogService{events: sample}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events?owner=melodyadmin", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "melodyadmin", fake.lastOwner)
		assert.Empty(t, fake.lastType)
	})

	t.Run("owner and type filter", func(t *testing.T) {
		fake := &fakeCatalogService{events: sample}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events?owner=melodyadmin&type=upcoming", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "melodyadmin", fake.lastOwner)
		assert.Equal(t, "upcoming", fake.lastType)
	})

	t.Run("type without owner is rejected", func(t *testing.T) {
		fake := &fakeCatalogService{events: sample}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events?type=past", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
		assert.Contains(t, envelope.Error.Message, "owner")
	})

	t.Run("invalid type from service", func(t *testing.T) {
		fake := &fakeCatalogService{listErr: domain.ErrInvalidInput}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events?owner=x&type=soon", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		fake := &fakeCatalogService{listErr: assert.AnError}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestEventController_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodyCode   string
		wantBodySubstr string
		checkCreated   func(t *testing.T, e *domain.Event)
	}{
		{
			name:       "success with date only",
			body:       `{"title":"Spring Fest","date":"2025-06-15","type":"upcoming","createdBy":"melodyadmin"}`,
			wantStatus: http.StatusCreated,
			checkCreated: func(t *testing.T, e *domain.Event) {
				assert.Equal(t, "Spring Fest", e.Title)
				assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), e.Date)
				assert.Equal(t, "melodyadmin", e.CreatedBy)
			},
		},
		{
			name:       "success with RFC3339 date",
			body:       `{"title":"Spring Fest","date":"2025-06-15T18:30:00Z","type":"past"}`,
			wantStatus: http.StatusCreated,
			checkCreated: func(t *testing.T, e *domain.Event) {
				assert.Equal(t, 18, e.Date.Hour())
				assert.Equal(t, domain.EventTypePast, e.Type)
			},
		},
		{
			name:         "invalid json",
			body:         `{invalid`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:           "missing title",
			body:           `{"date":"2025-06-15","type":"upcoming"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "title",
		},
		{
			name:           "unparseable date",
			body:           `{"title":"Fest","date":"June 15th","type":"upcoming"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "date",
		},
		{
			name:           "invalid type",
			body:           `{"title":"Fest","date":"2025-06-15","type":"soon"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "type",
		},
		{
			name:         "service error",
			body:         `{"title":"Fest","date":"2025-06-15","type":"upcoming"}`,
			fakeErr:      assert.AnError,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCatalogService{createErr: tt.fakeErr}
			ctrl := NewEventController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				require.NotNil(t, fake.lastCreated)
				if tt.checkCreated != nil {
					tt.checkCreated(t, fake.lastCreated)
				}
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestEventController_Update(t *testing.T) {
	now := time.Now()
	updated := &domain.Event{
		ID: "evt-1", Title: "Spring Fest 2", Type: domain.EventTypeUpcoming,
		Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), CreatedBy: "melodyadmin",
		CreatedAt: now, UpdatedAt: now,
	}

	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
		checkChanges func(t *testing.T, c domain.EventChanges)
	}{
		{
			name:       "title only leaves other fields unset",
			body:       `{"title":"Spring Fest 2"}`,
			wantStatus: http.StatusOK,
			checkChanges: func(t *testing.T, c domain.EventChanges) {
				require.NotNil(t, c.Title)
				assert.Equal(t, "Spring Fest 2", *c.Title)
				assert.Nil(t, c.Description)
				assert.Nil(t, c.Date)
				assert.Nil(t, c.Type)
			},
		},
		{
			name:       "date is parsed",
			body:       `{"date":"2025-07-01"}`,
			wantStatus: http.StatusOK,
			checkChanges: func(t *testing.T, c domain.EventChanges) {
				require.NotNil(t, c.Date)
				assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *c.Date)
			},
		},
		{
			name:         "empty title rejected",
			body:         `{"title":"  "}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "invalid type rejected",
			body:         `{"type":"soon"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown field rejected",
			body:         `{"createdBy":"other"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "not found",
			body:         `{"title":"x"}`,
			fakeErr:      domain.ErrEventNotFound,
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "service error",
			body:         `{"title":"x"}`,
			fakeErr:      assert.AnError,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCatalogService{updated: updated, updateErr: tt.fakeErr}
			ctrl := NewEventController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodPut, "http://test/events/evt-1", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("id", "evt-1")
			rr := httptest.NewRecorder()

			ctrl.Update(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				if tt.checkChanges != nil {
					tt.checkChanges(t, fake.lastChanges)
				}
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}

func TestEventController_Delete(t *testing.T) {
	tests := []struct {
		name         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "not found", fakeErr: domain.ErrEventNotFound, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
		{name: "service error", fakeErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantBodyCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCatalogService{deleteErr: tt.fakeErr}
			ctrl := NewEventController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodDelete, "http://test/events/evt-1", nil)
			req.SetPathValue("id", "evt-1")
			rr := httptest.NewRecorder()

			ctrl.Delete(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "evt-1", fake.lastDeleted)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp DeleteEventResponse
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				assert.True(t, resp.Deleted)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}
