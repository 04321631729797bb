package postgres

import (
	"context"
	"database/sql"

	"melodymesh/internal/domain"
)

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, m.Name, m.Email, m.Message, m.CreatedAt).Scan(&m.ID)
}
