package repository

import (
	"bdaywisher/internal/domain/entity"
	"context"
	"time"
)

// CompletionFunc is called with the delivery handle and firing instant of an alert.
type CompletionFunc func(ctx context.Context, handle string, firedAt time.Time)

// Subscription is a registered completion listener.
type Subscription interface {
	// Cancel stops further callbacks. It is safe to call more than once.
	Cancel()
}

// DeliveryFacility fires one-shot alerts at a scheduled instant.
type DeliveryFacility interface {
	// Schedule registers an alert at fireTime and returns a handle for cancellation.
	Schedule(ctx context.Context, fireTime time.Time, payload entity.AlertPayload) (string, error)
	// Cancel removes the alert registered under handle.
	Cancel(ctx context.Context, handle string) error
	// CancelAll removes every outstanding alert.
	CancelAll(ctx context.Context) error
	// OnCompleted registers fn to be called whenever an alert fires.
	OnCompleted(fn CompletionFunc) Subscription
}
