package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"foodexpress/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client talks to the order API on behalf of the checkout flow.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *SessionStore
	logger     zerolog.Logger
}

// NewClient creates an API client. The session store supplies the bearer
// token for authenticated calls.
func NewClient(baseURL string, session *SessionStore, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    session,
		logger:     logger.With().Str("component", "api-client").Logger(),
	}
}

// apiError is the JSON error body the API returns on failure.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PlaceOrder submits the order payload with its idempotency token. The
// Idempotency-Key header mirrors the payload's clientKey.
func (c *Client) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.ClientKey)
	if err := c.authorise(httpReq); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var orderResp model.OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	c.logger.Info().
		Str("order_id", orderResp.Order.ID.String()).
		Bool("created", orderResp.Created).
		Msg("order submitted")

	return &orderResp, nil
}

// ListOrders retrieves the caller's order history. The result is
// deduplicated by id and re-sorted newest first regardless of the order
// the server returned; the backend is not trusted to guarantee either.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list request: %w", err)
	}
	if err := c.authorise(httpReq); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var orders []model.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return DedupeAndSort(orders), nil
}

// authorise attaches the stored bearer token to the request.
func (c *Client) authorise(req *http.Request) error {
	token, err := c.session.Token()
	if err != nil {
		return fmt.Errorf("failed to read auth token: %w", err)
	}
	if token == "" {
		return ErrNotAuthenticated
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// decodeError extracts the API's message field from an error response.
func (c *Client) decodeError(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("order API returned %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("order API returned %d", resp.StatusCode)
}

// DedupeAndSort removes duplicate orders by id, keeping the first
// occurrence, and sorts the result by createdAt descending.
func DedupeAndSort(orders []model.Order) []model.Order {
	seen := make(map[uuid.UUID]bool, len(orders))
	unique := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if seen[order.ID] {
			continue
		}
		seen[order.ID] = true
		unique = append(unique, order)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].CreatedAt.After(unique[j].CreatedAt)
	})

	return unique
}
