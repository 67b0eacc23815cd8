package integration

import (
	"context"
	"testing"
	"time"

	"foodexpress/internal/clock"
	"foodexpress/internal/model"
	"foodexpress/internal/pricing"
	"foodexpress/internal/repository"
	"foodexpress/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("CreateOrder and CreateOrderItems", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		now := time.Now()
		order := &model.Order{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			Total:     460.00,
			Status:    model.StatusPending,
			ClientKey: "key-repo-create",
			Meta:      model.OrderMeta{PaymentMethod: "COD", Address: "12 MG Road"},
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, repo.CreateOrder(ctx, tx, order))

		items := []model.OrderItem{
			{ID: uuid.New(), OrderID: order.ID, Name: "Pizza", Price: 200, Quantity: 2},
			{ID: uuid.New(), OrderID: order.ID, Name: "Garlic Bread", Price: 99, Quantity: 1},
		}
		require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
		require.NoError(t, tx.Commit(ctx))

		got, err := repo.GetByClientKey(ctx, "key-repo-create")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.ID, got.ID)
		assert.Len(t, got.Items, 2)
	})

	t.Run("Transaction rollback leaves no order behind", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		now := time.Now()
		order := &model.Order{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			Total:     460.00,
			Status:    model.StatusPending,
			ClientKey: "key-rollback",
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		got, err := repo.GetByClientKey(ctx, "key-rollback")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestOrderService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)
	svc := service.NewOrderService(repo, pricing.DefaultRules(), clock.NewSystem(), logger)

	ctx := context.Background()

	t.Run("PlaceOrder twice with same key returns the stored order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		userID := uuid.New()
		req := &model.OrderRequest{
			Items:     []model.OrderItemRequest{{Name: "Pizza", Price: 200, Quantity: 2}},
			Total:     460.00,
			ClientKey: "key-svc-idem",
			Meta:      model.OrderMeta{PaymentMethod: "COD", Address: "12 MG Road"},
		}

		first, err := svc.PlaceOrder(ctx, userID, req)
		require.NoError(t, err)
		assert.True(t, first.Created)

		second, err := svc.PlaceOrder(ctx, userID, req)
		require.NoError(t, err)
		assert.False(t, second.Created)
		assert.Equal(t, first.Order.ID, second.Order.ID)
	})

	t.Run("PlaceOrder rejects a key owned by another user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := &model.OrderRequest{
			Items:     []model.OrderItemRequest{{Name: "Pizza", Price: 200, Quantity: 2}},
			Total:     460.00,
			ClientKey: "key-svc-collision",
			Meta:      model.OrderMeta{PaymentMethod: "COD", Address: "12 MG Road"},
		}

		_, err := svc.PlaceOrder(ctx, uuid.New(), req)
		require.NoError(t, err)

		_, err = svc.PlaceOrder(ctx, uuid.New(), req)
		require.ErrorIs(t, err, model.ErrDuplicateClientKey)
	})
}
