package repository

import (
	"context"
	"fmt"

	"foodexpress/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// contactRepository implements the ContactRepository interface using PostgreSQL.
type contactRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewContactRepository creates a new PostgreSQL-backed contact repository.
func NewContactRepository(pool *pgxpool.Pool, logger zerolog.Logger) ContactRepository {
	return &contactRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "contact").Logger(),
	}
}

// CreateContact inserts a contact-form submission.
func (r *contactRepository) CreateContact(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		contact.ID,
		contact.Name,
		contact.Email,
		contact.Message,
		contact.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("contact_id", contact.ID.String()).
			Msg("failed to create contact")
		return fmt.Errorf("failed to create contact: %w", err)
	}

	r.logger.Debug().
		Str("contact_id", contact.ID.String()).
		Msg("contact created successfully")

	return nil
}
