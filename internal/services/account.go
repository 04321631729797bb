package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"melodymesh/internal/domain"
)

// Username that self-assigns the admin role on registration.
const adminUsername = "admin"

type accountService struct {
	accountRepo domain.AccountRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	bootstrap   domain.BootstrapAccount
}

// NewAccountService creates an AccountService with the given repository, auth
// ports, and bootstrap operator identity.
func NewAccountService(accountRepo domain.AccountRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, bootstrap domain.BootstrapAccount) domain.AccountService {
	return &accountService{
		accountRepo: accountRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
		bootstrap:   bootstrap,
	}
}

func (s *accountService) Authenticate(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	// The operator identity authenticates against configuration alone, so
	// login keeps working even when the backing store is empty.
	if s.isOperator(username, password) {
		token, err := s.tokenIssuer.Issue(s.bootstrap.Username, domain.RoleAdmin, s.tokenExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to sign token: %w", err)
		}
		return &domain.AuthResult{
			Role:  domain.RoleAdmin,
			Token: token,
			Account: &domain.Account{
				Name:     s.bootstrap.Name,
				Username: s.bootstrap.Username,
				Email:    s.bootstrap.Email,
				Role:     domain.RoleAdmin,
			},
		}, nil
	}

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Unknown user and wrong password are indistinguishable on purpose.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if err := s.hasher.Compare(account.PasswordHash, account.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(account.Username, account.Role, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &domain.AuthResult{Role: account.Role, Token: token, Account: account}, nil
}

func (s *accountService) isOperator(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.bootstrap.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.bootstrap.Password)) == 1
	return userOK && passOK
}

func (s *accountService) Register(ctx context.Context, reg *domain.Registration) (*domain.Account, error) {
	name := strings.TrimSpace(reg.Name)
	username := strings.TrimSpace(reg.Username)
	email := strings.TrimSpace(reg.Email)
	if name == "" || username == "" || email == "" || reg.Password == "" {
		return nil, fmt.Errorf("%w: name, username, email, and password are required", domain.ErrInvalidInput)
	}
	if username == s.bootstrap.Username {
		return nil, domain.ErrReservedUsername
	}

	role := domain.RoleRegistered
	if username == adminUsername {
		role = domain.RoleAdmin
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := domain.NewAccount(name, username, email, role, now, now)
	account.DOB = strings.TrimSpace(reg.DOB)
	account.Phone = strings.TrimSpace(reg.Phone)
	account.EventInterest = strings.TrimSpace(reg.EventInterest)
	account.PasswordHash = hash
	account.Salt = salt

	// The unique constraints on username and email are the source of truth
	// for duplicates, including concurrent registrations.
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (s *accountService) EnsureOperatorAccount(ctx context.Context) error {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, s.bootstrap.Password)
	if err != nil {
		return fmt.Errorf("failed to hash operator password: %w", err)
	}

	now := time.Now()
	account := domain.NewAccount(s.bootstrap.Name, s.bootstrap.Username, s.bootstrap.Email, domain.RoleAdmin, now, now)
	account.PasswordHash = hash
	account.Salt = salt
	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return fmt.Errorf("failed to upsert operator account: %w", err)
	}
	return nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []*domain.Account{}
	}
	return accounts, nil
}
