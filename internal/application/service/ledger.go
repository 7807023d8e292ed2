package service

import (
	"bdaywisher/internal/domain/entity"
	"context"
	"time"
)

// LedgerService keeps the pending and sent reminder lists consistent with
// the delivery facility and durable across restarts.
type LedgerService interface {
	// Load restores both lists from the durable store.
	Load(ctx context.Context) error
	// Restore re-registers future pending reminders with the delivery
	// facility and drops the ones whose time has passed.
	Restore(ctx context.Context, settings entity.NotificationSettings, now time.Time) (restored, dropped int)
	// OnDeliveryCompleted moves the reminder with the given handle from pending to sent.
	OnDeliveryCompleted(ctx context.Context, handle string, completedAt time.Time)
	// Cancel removes a pending reminder. It reports whether anything was removed.
	Cancel(ctx context.Context, id string) bool
	// Pending returns the pending reminders.
	Pending() []entity.Reminder
	// Sent returns the sent reminders.
	Sent() []entity.Reminder
	// UpdatePending runs fn on the pending list under the ledger lock and
	// persists whatever fn returns with a single write.
	UpdatePending(ctx context.Context, fn func(pending []entity.Reminder) []entity.Reminder)
}
