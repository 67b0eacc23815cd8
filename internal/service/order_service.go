package service

import (
	"context"
	"errors"
	"fmt"

	"foodexpress/internal/clock"
	"foodexpress/internal/model"
	"foodexpress/internal/pricing"
	"foodexpress/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	rules     pricing.Rules
	clock     clock.Clock
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	rules pricing.Rules,
	clk clock.Clock,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		rules:     rules,
		clock:     clk,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder creates a new order, idempotent on the request's clientKey.
//
// The insert is attempted first; a uniqueness violation on client_key is
// translated into fetching and returning the existing order. Under
// concurrent duplicate submissions both callers observe the same order,
// serialized by the database constraint.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	quote := pricing.Price(s.rules, req.Items)
	if !quote.TotalMatches(req.Total) {
		s.logger.Warn().
			Float64("client_total", req.Total).
			Str("server_total", quote.Total.String()).
			Msg("client total does not match priced items")
		return nil, model.ErrTotalMismatch
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := s.clock.Now()
	order := &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Total:     req.Total,
		Status:    model.StatusPending,
		ClientKey: req.ClientKey,
		Meta:      req.Meta,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		if errors.Is(err, model.ErrDuplicateClientKey) {
			// A submission with this clientKey already won. Resolve it
			// and return the stored order as a success.
			return s.resolveExisting(ctx, userID, req.ClientKey)
		}
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		orderItems[i] = model.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	order.Items = orderItems

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("client_key", order.ClientKey).
		Int("item_count", len(orderItems)).
		Float64("total", order.Total).
		Msg("order placed")

	return &model.OrderResponse{Order: *order, Created: true}, nil
}

// resolveExisting fetches the order already stored under the clientKey and
// returns it as an equivalent success response.
func (s *orderService) resolveExisting(ctx context.Context, userID uuid.UUID, clientKey string) (*model.OrderResponse, error) {
	existing, err := s.orderRepo.GetByClientKey(ctx, clientKey)
	if err != nil {
		s.logger.Error().Err(err).Str("client_key", clientKey).Msg("failed to resolve existing order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if existing == nil {
		// The winning row disappeared between the violation and the read.
		// Nothing sensible to return; surface a generic failure.
		return nil, fmt.Errorf("failed to place order: duplicate client key but no stored order")
	}
	if existing.UserID != userID {
		s.logger.Warn().
			Str("client_key", clientKey).
			Str("owner", existing.UserID.String()).
			Str("caller", userID.String()).
			Msg("client key collision across users")
		return nil, model.ErrDuplicateClientKey
	}

	s.logger.Info().
		Str("order_id", existing.ID.String()).
		Str("client_key", clientKey).
		Msg("order already placed, returning existing")

	return &model.OrderResponse{Order: *existing, Created: false}, nil
}

// ListOrders retrieves the user's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.ErrEmptyItems
	}

	if len(req.Items) == 0 {
		return model.ErrEmptyItems
	}

	for i, item := range req.Items {
		if item.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Str("name", item.Name).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
		if item.Price < 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("name", item.Name).
				Float64("price", item.Price).
				Msg("invalid price")
			return model.ErrInvalidPrice
		}
	}

	if req.Total < 0 {
		return model.ErrInvalidTotal
	}

	if req.ClientKey == "" {
		return model.ErrMissingClientKey
	}

	return nil
}
