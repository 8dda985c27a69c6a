package api

import (
	"context"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"airline-ops-backend/config"
	"airline-ops-backend/internal/auth"
	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/events"
	"airline-ops-backend/internal/notification"
	"airline-ops-backend/internal/store"
)

// Deps are the collaborators shared by every handler.
type Deps struct {
	Store    store.Store
	Issuer   *auth.Issuer
	Notifier notification.Notifier
	Events   events.Publisher
	WebPush  *webpush.Options
	Retry    config.BookingConfig
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	issuer   *auth.Issuer
	notifier notification.Notifier
	events   events.Publisher
	webpush  *webpush.Options
	retry    config.BookingConfig
	now      func() time.Time
}

// NewHandler creates a new API handler. Missing notifier and publisher are
// replaced by no-ops.
func NewHandler(d Deps) *Handler {
	h := &Handler{
		store:    d.Store,
		issuer:   d.Issuer,
		notifier: d.Notifier,
		events:   d.Events,
		webpush:  d.WebPush,
		retry:    d.Retry,
		now:      time.Now,
	}
	if h.notifier == nil {
		h.notifier = notification.Nop{}
	}
	if h.events == nil {
		h.events = events.Nop{}
	}
	return h
}

// withRetry runs fn again after a transient store failure, waiting the
// configured delays between attempts. Other errors return at once.
func withRetry[T any](ctx context.Context, cfg config.BookingConfig, op string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && len(cfg.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(cfg.RetryDelays) {
				delayIdx = len(cfg.RetryDelays) - 1
			}
			select {
			case <-time.After(cfg.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return zero, domain.TransientError{Op: op, Err: ctx.Err()}
			}
		}

		v, err := fn()
		if err == nil {
			return v, nil
		}
		if !domain.IsTransient(err) {
			return zero, err
		}
		lastErr = err
		log.Printf("%s attempt %d failed: %v", op, attempt+1, err)
	}
	return zero, lastErr
}
