package domain

import (
	"context"
	"errors"
	"time"
)

// Roles assignable to accounts.
const (
	RoleAdmin      = "admin"
	RoleRegistered = "registered"
)

// Sentinel errors for account operations.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateUsername  = errors.New("username already in use")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrReservedUsername   = errors.New("this username is reserved")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid input")
)

// Account represents a registered account. Credentials are never serialized.
// swagger:model Account
type Account struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	DOB           string    `json:"dob,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	EventInterest string    `json:"event,omitempty"`
	PasswordHash  string    `json:"-"`
	Salt          string    `json:"-"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAccount returns a new Account with the given fields. ID is set by the repository on create.
func NewAccount(name, username, email, role string, createdAt, updatedAt time.Time) *Account {
	return &Account{
		Name:      name,
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BootstrapAccount is the configured operator identity. It authenticates
// successfully regardless of storage state and is upserted at startup so the
// stored row always converges to these values.
type BootstrapAccount struct {
	Username string
	Password string
	Name     string
	Email    string
}

// Registration carries the fields accepted when creating an account.
type Registration struct {
	Name          string
	Username      string
	Email         string
	Password      string
	DOB           string
	Phone         string
	EventInterest string
}

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	Role    string   `json:"role"`
	Token   string   `json:"token"`
	Account *Account `json:"user"`
}

// TokenClaims are the application claims carried by a session token.
type TokenClaims struct {
	Username string
	Role     string
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session tokens for an authenticated account.
type TokenIssuer interface {
	Issue(username, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// AccountRepository defines the interface for account storage.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Upsert(ctx context.Context, account *Account) error
	List(ctx context.Context) ([]*Account, error)
}

// AccountService defines the business logic for identity and credentials.
type AccountService interface {
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, reg *Registration) (*Account, error)
	EnsureOperatorAccount(ctx context.Context) error
	ListAccounts(ctx context.Context) ([]*Account, error)
}
