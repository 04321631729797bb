package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"melodymesh/internal/domain"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) domain.AccountRepository {
	return &accountRepository{DB: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `
		INSERT INTO accounts (name, username, email, dob, phone, event_interest, password_hash, salt, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		a.Name, a.Username, a.Email,
		nullIfEmpty(a.DOB), nullIfEmpty(a.Phone), nullIfEmpty(a.EventInterest),
		a.PasswordHash, a.Salt, a.Role, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT id, name, username, email, dob, phone, event_interest, password_hash, salt, role, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`
	a := &domain.Account{}
	var dob, phone, interest sql.NullString
	err := r.DB.QueryRowContext(ctx, query, username).Scan(
		&a.ID, &a.Name, &a.Username, &a.Email, &dob, &phone, &interest,
		&a.PasswordHash, &a.Salt, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	a.DOB = dob.String
	a.Phone = phone.String
	a.EventInterest = interest.String
	return a, nil
}

func (r *accountRepository) Upsert(ctx context.Context, a *domain.Account) error {
	query := `
		INSERT INTO accounts (name, username, email, password_hash, salt, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (username) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			salt = EXCLUDED.salt,
			role = EXCLUDED.role,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		a.Name, a.Username, a.Email, a.PasswordHash, a.Salt, a.Role, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

func (r *accountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT id, name, username, email, dob, phone, event_interest, password_hash, salt, role, created_at, updated_at
		FROM accounts
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		a := &domain.Account{}
		var dob, phone, interest sql.NullString
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Username, &a.Email, &dob, &phone, &interest,
			&a.PasswordHash, &a.Salt, &a.Role, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.DOB = dob.String
		a.Phone = phone.String
		a.EventInterest = interest.String
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// mapUniqueViolation translates Postgres unique violations on the accounts
// table into the matching domain error, by constraint name.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		if strings.Contains(pqErr.Constraint, "email") {
			return domain.ErrDuplicateEmail
		}
		return domain.ErrDuplicateUsername
	}
	return err
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
