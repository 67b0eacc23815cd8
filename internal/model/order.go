package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// Order represents a placed customer order.
type Order struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"userId" db:"user_id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total" db:"total"`
	Status    OrderStatus `json:"status" db:"status"`
	ClientKey string      `json:"clientKey" db:"client_key"`
	Meta      OrderMeta   `json:"meta"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID       uuid.UUID `json:"-" db:"id"`
	OrderID  uuid.UUID `json:"-" db:"order_id"`
	Name     string    `json:"name" db:"name"`
	Price    float64   `json:"price" db:"unit_price"`
	Quantity int       `json:"quantity" db:"quantity"`
}

// OrderMeta holds delivery details captured at checkout.
type OrderMeta struct {
	PaymentMethod string `json:"paymentMethod" db:"payment_method"`
	Address       string `json:"address" db:"address"`
	Notes         string `json:"notes,omitempty" db:"notes"`
}

// OrderRequest represents the request payload for placing an order.
type OrderRequest struct {
	Items     []OrderItemRequest `json:"items"`
	Total     float64            `json:"total"`
	ClientKey string             `json:"clientKey"`
	Meta      OrderMeta          `json:"meta"`
}

// OrderItemRequest represents a single line item in an order request.
type OrderItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderResponse represents the response payload for an order.
// Created reports whether this request persisted the order, or an
// earlier submission with the same clientKey already had.
type OrderResponse struct {
	Order   Order `json:"order"`
	Created bool  `json:"created"`
}
