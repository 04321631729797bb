package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"melodymesh/internal/delivery/http/controllers"
	"melodymesh/internal/delivery/http/middleware"
	"melodymesh/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// The account listing is the only admin-gated route; catalog mutations are
// left open and gated by the UI, matching the documented contract.
func NewRouter(
	accountController *controllers.AccountController,
	eventController *controllers.EventController,
	contactController *controllers.ContactController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAdmin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(verifier)(middleware.RequireRole(domain.RoleAdmin)(next))
	}

	// Accounts
	mux.HandleFunc("POST /accounts/login", accountController.Login)
	mux.HandleFunc("POST /accounts", accountController.Register)
	mux.HandleFunc("GET /accounts", requireAdmin(accountController.ListAccounts))

	// Event catalog
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("POST /events", eventController.Create)
	mux.HandleFunc("PUT /events/{id}", eventController.Update)
	mux.HandleFunc("DELETE /events/{id}", eventController.Delete)

	// Contact intake
	mux.HandleFunc("POST /contact", contactController.Submit)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
