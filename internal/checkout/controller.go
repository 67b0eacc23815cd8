// Package checkout implements the client side of order placement: the
// countdown state machine, the checkout draft and session stores, and
// the API client that submits the idempotent order request.
package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"foodexpress/internal/clock"
	"foodexpress/internal/model"
	"foodexpress/internal/pricing"

	"github.com/rs/zerolog"
)

// State is the checkout controller's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateArmed
	StateCounting
	StateCompleting
	StatePlaced
	StateFailed
	StateCancelled
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateCounting:
		return "counting"
	case StateCompleting:
		return "completing"
	case StatePlaced:
		return "placed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Precondition errors signalled by Arm. Callers map them to the component
// that can repair the precondition: login or the cart page.
var (
	ErrNotAuthenticated = errors.New("checkout: not authenticated")
	ErrNoDraft          = errors.New("checkout: no valid checkout draft")
	ErrAlreadyArmed     = errors.New("checkout: controller already armed")
	ErrNotFailed        = errors.New("checkout: no failed submission to retry")
)

// EventKind identifies a controller event.
type EventKind int

const (
	EventTick EventKind = iota
	EventHalfway
	EventPlaced
	EventFailed
	EventCancelled
)

// Event is delivered on the controller's event channel as the countdown
// progresses and terminates.
type Event struct {
	Kind      EventKind
	Remaining int
	Order     *model.Order
	Err       error
}

// OrderPlacer submits an order payload to the API. *Client satisfies it.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
}

// Config holds countdown parameters.
type Config struct {
	// Duration is the countdown length in ticks.
	Duration int
	// Interval is the real-time length of one tick.
	Interval time.Duration
}

// DefaultConfig returns the storefront's fixed one-minute countdown.
func DefaultConfig() Config {
	return Config{
		Duration: 60,
		Interval: time.Second,
	}
}

// Controller drives one checkout attempt: it arms with a fresh
// idempotency token, counts down, and submits the order exactly once on
// expiry. The instance is single-use; a new checkout needs a new
// controller.
type Controller struct {
	cfg     Config
	drafts  *DraftStore
	session *SessionStore
	placer  OrderPlacer
	rules   pricing.Rules
	clk     clock.Clock
	logger  zerolog.Logger

	state atomic.Int32

	// Written once in Arm before the countdown goroutine starts.
	draft     Draft
	clientKey string

	// Touched only by the countdown goroutine.
	remaining    int
	halfwayFired bool

	ticker   clock.Ticker
	stop     chan struct{}
	stopOnce sync.Once

	eventsMu     sync.Mutex
	events       chan Event
	eventsClosed bool
}

// New creates a checkout controller over the given stores and API client.
func New(
	cfg Config,
	drafts *DraftStore,
	session *SessionStore,
	placer OrderPlacer,
	rules pricing.Rules,
	clk clock.Clock,
	logger zerolog.Logger,
) *Controller {
	if cfg.Duration <= 0 {
		cfg = DefaultConfig()
	}
	return &Controller{
		cfg:     cfg,
		drafts:  drafts,
		session: session,
		placer:  placer,
		rules:   rules,
		clk:     clk,
		logger:  logger.With().Str("component", "checkout-controller").Logger(),
		stop:    make(chan struct{}),
		events:  make(chan Event, cfg.Duration+16),
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// ClientKey returns the idempotency token generated for this attempt.
// Empty until Arm succeeds.
func (c *Controller) ClientKey() string {
	return c.clientKey
}

// Events returns the channel on which countdown and terminal events are
// delivered. The channel is closed when the attempt fully terminates.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Arm validates the checkout preconditions, generates a fresh idempotency
// token, persists the draft, and starts the countdown. On precondition
// failure the controller stays Idle and the caller redirects the user to
// login (ErrNotAuthenticated) or the cart (ErrNoDraft).
func (c *Controller) Arm(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateArmed)) {
		return ErrAlreadyArmed
	}

	token, err := c.session.Token()
	if err != nil {
		c.state.Store(int32(StateIdle))
		return err
	}
	if token == "" {
		c.state.Store(int32(StateIdle))
		return ErrNotAuthenticated
	}

	draft, ok, err := c.drafts.Load()
	if err != nil {
		c.state.Store(int32(StateIdle))
		return err
	}
	if !ok || !draft.Valid() {
		c.state.Store(int32(StateIdle))
		return ErrNoDraft
	}

	// Write-on-arm: the draft must survive a restart until a terminal
	// state clears it.
	if err := c.drafts.Save(draft); err != nil {
		c.state.Store(int32(StateIdle))
		return err
	}

	c.draft = draft
	c.clientKey = NewClientKey()
	c.remaining = c.cfg.Duration
	c.halfwayFired = false
	c.ticker = c.clk.NewTicker(c.cfg.Interval)

	c.state.Store(int32(StateCounting))

	c.logger.Info().
		Str("client_key", c.clientKey).
		Int("duration", c.cfg.Duration).
		Msg("checkout armed, countdown started")

	go c.run(ctx)

	return nil
}

// run is the controller's event loop: a single goroutine consumes timer
// ticks until the countdown completes or the controller is stopped.
func (c *Controller) run(ctx context.Context) {
	for {
		select {
		case <-c.ticker.C():
			c.onTick(ctx)
		case <-c.stop:
			return
		case <-ctx.Done():
			c.halt()
			return
		}
	}
}

// onTick advances the countdown by one unit.
func (c *Controller) onTick(ctx context.Context) {
	if c.State() != StateCounting {
		return
	}

	c.remaining--
	c.emit(Event{Kind: EventTick, Remaining: c.remaining})

	if !c.halfwayFired && c.remaining == c.cfg.Duration/2 {
		c.halfwayFired = true
		c.emit(Event{Kind: EventHalfway, Remaining: c.remaining})
	}

	if c.remaining <= 0 {
		c.Complete(ctx)
	}
}

// Complete finishes the checkout by submitting the order. It is
// idempotent at the controller level: the state transition
// Counting -> Completing is a compare-and-swap, so a concurrent or
// re-entrant invocation is a no-op and exactly one submission happens.
func (c *Controller) Complete(ctx context.Context) {
	if !c.state.CompareAndSwap(int32(StateCounting), int32(StateCompleting)) {
		return
	}
	c.halt()
	c.submit(ctx)
}

// Retry re-submits a failed attempt with the same idempotency token. The
// server resolves a repeat of an already-persisted clientKey to the
// stored order, so retrying is safe.
func (c *Controller) Retry(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateFailed), int32(StateCompleting)) {
		return ErrNotFailed
	}
	c.submit(ctx)
	return nil
}

// Cancel stops the countdown and discards the draft and pending cart
// without contacting the order API. Only valid while counting.
func (c *Controller) Cancel() {
	if !c.state.CompareAndSwap(int32(StateCounting), int32(StateCancelled)) {
		return
	}
	c.halt()

	if err := c.drafts.Clear(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear draft on cancel")
	}
	if err := c.session.ClearCart(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear cart on cancel")
	}

	c.logger.Info().Str("client_key", c.clientKey).Msg("checkout cancelled")
	c.emit(Event{Kind: EventCancelled})
	c.closeEvents()
}

// Close releases the countdown timer so no tick fires after the
// controller is discarded. The draft is left as-is; an abandoned
// checkout resumes from the stored draft.
func (c *Controller) Close() {
	c.halt()
	c.closeEvents()
}

// submit builds the order payload from the draft and the pricing rules
// and sends it once. On success the draft and cart are cleared; on
// failure the draft is retained so the user can retry manually.
func (c *Controller) submit(ctx context.Context) {
	quote := pricing.Price(c.rules, c.draft.Items)

	req := &model.OrderRequest{
		Items:     c.draft.Items,
		Total:     quote.Total.InexactFloat64(),
		ClientKey: c.clientKey,
		Meta: model.OrderMeta{
			PaymentMethod: c.draft.PaymentMethod,
			Address:       c.draft.Address,
			Notes:         c.draft.Notes,
		},
	}

	resp, err := c.placer.PlaceOrder(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Str("client_key", c.clientKey).Msg("order submission failed")
		c.state.Store(int32(StateFailed))
		c.emit(Event{Kind: EventFailed, Err: err})
		return
	}

	if err := c.drafts.Clear(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear draft after placement")
	}
	if err := c.session.ClearCart(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear cart after placement")
	}

	c.state.Store(int32(StatePlaced))
	c.logger.Info().
		Str("order_id", resp.Order.ID.String()).
		Str("client_key", c.clientKey).
		Bool("created", resp.Created).
		Msg("order placed")
	c.emit(Event{Kind: EventPlaced, Order: &resp.Order})
	c.closeEvents()
}

// halt releases the timer and stops the event loop. Safe to call more
// than once.
func (c *Controller) halt() {
	c.stopOnce.Do(func() {
		if c.ticker != nil {
			c.ticker.Stop()
		}
		close(c.stop)
	})
}

// emit delivers an event without blocking the countdown loop. The
// channel is sized to hold a full countdown, so only an unread backlog
// from a stalled consumer is dropped.
func (c *Controller) emit(e Event) {
	c.eventsMu.Lock()
	defer c.eventsMu.Unlock()
	if c.eventsClosed {
		return
	}
	select {
	case c.events <- e:
	default:
	}
}

func (c *Controller) closeEvents() {
	c.eventsMu.Lock()
	defer c.eventsMu.Unlock()
	if !c.eventsClosed {
		c.eventsClosed = true
		close(c.events)
	}
}
