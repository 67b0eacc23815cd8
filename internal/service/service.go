package service

import (
	"context"

	"foodexpress/internal/model"

	"github.com/google/uuid"
)

// OrderService defines operations for order placement and retrieval.
type OrderService interface {
	// PlaceOrder creates the order for the given user, or returns the
	// already-persisted order when the request's clientKey was seen before.
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.OrderResponse, error)

	// ListOrders retrieves the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}

// ContactService defines operations for contact-form submissions.
type ContactService interface {
	// SubmitContact validates and persists a contact-form submission.
	SubmitContact(ctx context.Context, req *model.ContactRequest) (*model.Contact, error)
}
