package checkout

import (
	"strings"

	"foodexpress/internal/model"
)

// Storage keys. The draft lives in the session-scoped store; the token
// and pending cart live in the longer-lived store.
const (
	draftKey = "checkoutDraft"
	tokenKey = "token"
	cartKey  = "cart"
)

// Draft is the transient snapshot of a checkout attempt: cart items,
// payment method, address and notes, pending confirmation.
type Draft struct {
	Items         []model.OrderItemRequest `json:"items"`
	PaymentMethod string                   `json:"paymentMethod"`
	Address       string                   `json:"address"`
	Notes         string                   `json:"notes,omitempty"`
}

// Valid reports whether the draft satisfies the checkout entry
// preconditions: at least one item, a chosen payment method and a
// non-blank address.
func (d Draft) Valid() bool {
	return len(d.Items) > 0 && d.PaymentMethod != "" && strings.TrimSpace(d.Address) != ""
}

// DraftStore persists the checkout draft across a process restart for
// the duration of one checkout attempt.
type DraftStore struct {
	kv KV
}

// NewDraftStore creates a draft store over the given session-scoped KV.
func NewDraftStore(kv KV) *DraftStore {
	return &DraftStore{kv: kv}
}

// Load retrieves the saved draft, if any.
func (s *DraftStore) Load() (Draft, bool, error) {
	var draft Draft
	ok, err := getJSON(s.kv, draftKey, &draft)
	return draft, ok, err
}

// Save persists the draft.
func (s *DraftStore) Save(draft Draft) error {
	return setJSON(s.kv, draftKey, draft)
}

// Clear discards the draft.
func (s *DraftStore) Clear() error {
	return s.kv.Delete(draftKey)
}

// SessionStore holds the longer-lived client state: the auth token and
// the pending cart. Both are cleared on successful placement or
// cancellation.
type SessionStore struct {
	kv KV
}

// NewSessionStore creates a session store over the given KV.
func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Token returns the stored auth token, or "" when absent.
func (s *SessionStore) Token() (string, error) {
	var token string
	ok, err := getJSON(s.kv, tokenKey, &token)
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

// SetToken stores the auth token.
func (s *SessionStore) SetToken(token string) error {
	return setJSON(s.kv, tokenKey, token)
}

// Cart returns the pending cart items, if any.
func (s *SessionStore) Cart() ([]model.OrderItemRequest, bool, error) {
	var items []model.OrderItemRequest
	ok, err := getJSON(s.kv, cartKey, &items)
	return items, ok, err
}

// SetCart stores the pending cart items.
func (s *SessionStore) SetCart(items []model.OrderItemRequest) error {
	return setJSON(s.kv, cartKey, items)
}

// ClearCart discards the pending cart.
func (s *SessionStore) ClearCart() error {
	return s.kv.Delete(cartKey)
}
