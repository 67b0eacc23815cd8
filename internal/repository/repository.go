package repository

import (
	"context"

	"foodexpress/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	// Returns model.ErrDuplicateClientKey when an order with the same
	// client_key already exists.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByClientKey retrieves the order persisted under the given
	// idempotency token, with its items. Returns nil when none exists.
	GetByClientKey(ctx context.Context, clientKey string) (*model.Order, error)

	// ListByUser retrieves all orders owned by the given user,
	// newest first by created_at.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}

// ContactRepository defines the interface for contact-form persistence.
type ContactRepository interface {
	// CreateContact inserts a contact-form submission.
	CreateContact(ctx context.Context, contact *model.Contact) error
}
