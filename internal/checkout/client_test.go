package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodexpress/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, token string) *SessionStore {
	t.Helper()
	session := NewSessionStore(NewMemoryKV())
	if token != "" {
		require.NoError(t, session.SetToken(token))
	}
	return session
}

func TestClient_PlaceOrder_SendsIdempotencyKey(t *testing.T) {
	var gotAuth, gotKey string
	var gotReq model.OrderRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := model.OrderResponse{
			Order: model.Order{
				ID:        uuid.New(),
				Total:     gotReq.Total,
				Status:    model.StatusPending,
				ClientKey: gotReq.ClientKey,
			},
			Created: true,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestSession(t, "tok-123"), zerolog.Nop())

	req := &model.OrderRequest{
		Items:     []model.OrderItemRequest{{Name: "Pizza", Price: 200, Quantity: 2}},
		Total:     460.00,
		ClientKey: "key-abc",
		Meta:      model.OrderMeta{PaymentMethod: "COD", Address: "12 MG Road"},
	}

	resp, err := client.PlaceOrder(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "key-abc", gotKey)
	assert.Equal(t, "key-abc", gotReq.ClientKey)
}

func TestClient_PlaceOrder_NoToken(t *testing.T) {
	client := NewClient("http://localhost:0", newTestSession(t, ""), zerolog.Nop())

	_, err := client.PlaceOrder(context.Background(), &model.OrderRequest{ClientKey: "key"})

	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClient_PlaceOrder_ErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.ErrorResponse{
			Error:   model.ErrCodeEmptyItems,
			Message: "Order must contain at least one item",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestSession(t, "tok"), zerolog.Nop())

	_, err := client.PlaceOrder(context.Background(), &model.OrderRequest{ClientKey: "key"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Order must contain at least one item")
}

func TestClient_ListOrders_DedupesAndSorts(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	oldest := uuid.New()
	middle := uuid.New()
	newest := uuid.New()

	// Duplicated and unsorted on purpose; the client must not trust the
	// server's ordering.
	payload := []model.Order{
		{ID: middle, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: oldest, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: middle, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: newest, CreatedAt: now},
		{ID: oldest, CreatedAt: now.Add(-2 * time.Hour)},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestSession(t, "tok"), zerolog.Nop())

	orders, err := client.ListOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, newest, orders[0].ID)
	assert.Equal(t, middle, orders[1].ID)
	assert.Equal(t, oldest, orders[2].ID)
}

func TestDedupeAndSort(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	a := uuid.New()
	b := uuid.New()

	tests := []struct {
		name   string
		input  []model.Order
		wantID []uuid.UUID
	}{
		{
			name:   "empty",
			input:  nil,
			wantID: nil,
		},
		{
			name: "duplicates removed keeping first",
			input: []model.Order{
				{ID: a, CreatedAt: now},
				{ID: a, CreatedAt: now},
			},
			wantID: []uuid.UUID{a},
		},
		{
			name: "sorted newest first",
			input: []model.Order{
				{ID: a, CreatedAt: now.Add(-time.Hour)},
				{ID: b, CreatedAt: now},
			},
			wantID: []uuid.UUID{b, a},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeAndSort(tt.input)
			require.Len(t, got, len(tt.wantID))
			for i, id := range tt.wantID {
				assert.Equal(t, id, got[i].ID)
			}
		})
	}
}
