package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"melodymesh/internal/delivery/http/helpers"
	"melodymesh/internal/domain"
)

// SubmitContactRequest is the request body for POST /contact
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (s SubmitContactRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(s.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{Logger: logger, Service: svc}
}

// Submit godoc
// @Summary Submit a contact message
// @Description Record a contact form submission. All fields are required. Messages are write-only; nothing reads them back over the API.
// @Tags contact
// @Accept json
// @Produce json
// @Param body body SubmitContactRequest true "Contact message"
// @Success 201 {object} helpers.APIResponse "data contains the stored message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contact [post]
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	msg, err := c.Service.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, msg)
}
