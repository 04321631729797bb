package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"melodymesh/internal/delivery/http/helpers"
	"melodymesh/internal/domain"
)

// LoginRequest is the request body for POST /accounts/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// RegisterRequest is the request body for POST /accounts
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	DOB      string `json:"dob"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Event    string `json:"event"` // optional event-interest tag
	Password string `json:"password"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

type AccountController struct {
	Logger  *slog.Logger
	Service domain.AccountService
}

func NewAccountController(logger *slog.Logger, svc domain.AccountService) *AccountController {
	return &AccountController{Logger: logger, Service: svc}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with username and password. Returns the role, a session token, and the account.
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains role, token, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /accounts/login [post]
func (c *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid username or password")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Register godoc
// @Summary Register a new account
// @Description Create an account. Name, username, email, and password are required. Username "admin" gets the admin role; the operator username is reserved. Credentials are stored hashed and never returned.
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains the created account"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /accounts [post]
func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	account, err := c.Service.Register(r.Context(), &domain.Registration{
		Name:          req.Name,
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		DOB:           req.DOB,
		Phone:         req.Phone,
		EventInterest: req.Event,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservedUsername):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "this username is reserved")
		case errors.Is(err, domain.ErrDuplicateUsername):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "username already registered")
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, account)
}

// ListAccounts godoc
// @Summary List all accounts
// @Description Administrative listing of every account. Requires an admin Bearer token.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the account array"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /accounts [get]
func (c *AccountController) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := c.Service.ListAccounts(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, accounts)
}
