package handler

import (
	"encoding/json"
	"net/http"

	"foodexpress/internal/middleware"
	"foodexpress/internal/model"
	"foodexpress/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests. The request is idempotent on
// the payload's clientKey: a repeat submission returns the stored order
// with 200 instead of creating a duplicate.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeDomainError(w, model.ErrUnauthorised, h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	// The Idempotency-Key header mirrors the body's clientKey; when the
	// body omits it, the header still identifies the submission.
	if req.ClientKey == "" {
		req.ClientKey = r.Header.Get("Idempotency-Key")
	}

	resp, err := h.service.PlaceOrder(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// List handles GET /api/orders requests, returning the caller's orders
// newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInvalidJSON, "method not allowed", h.logger)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeDomainError(w, model.ErrUnauthorised, h.logger)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve orders", h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
