// Package notify delivers fired birthday alerts to the coordinator over one or more channels.
package notify

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/logger"
	"bdaywisher/internal/pkg/metrics"
	"context"
	"errors"
	"fmt"
)

// Notifier sends an alert on a single channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, payload entity.AlertPayload) error
}

// Broadcaster sends every alert on all of its channels. A failing channel
// does not stop the others.
type Broadcaster struct {
	notifiers []Notifier
	log       logger.Logger
}

// NewBroadcaster creates a Broadcaster over notifiers.
func NewBroadcaster(log logger.Logger, notifiers ...Notifier) *Broadcaster {
	return &Broadcaster{notifiers: notifiers, log: log}
}

// Channels returns the names of the configured channels.
func (b *Broadcaster) Channels() []string {
	names := make([]string, len(b.notifiers))
	for i, n := range b.notifiers {
		names[i] = n.Name()
	}
	return names
}

// Notify sends payload on every channel and joins the failures.
func (b *Broadcaster) Notify(ctx context.Context, payload entity.AlertPayload) error {
	var errs []error
	for _, n := range b.notifiers {
		err := n.Notify(ctx, payload)
		metrics.AlertSent(n.Name(), err)
		if err != nil {
			b.log.Error(fmt.Sprintf("Failed to send alert for %s via %s", payload.PersonName, n.Name()), err)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes alerts to the application log.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Name() string { return "log" }

// Notify logs the alert.
func (n *LogNotifier) Notify(_ context.Context, payload entity.AlertPayload) error {
	n.log.Info(fmt.Sprintf("🔔 %s: %s (sound=%t vibrate=%t)", payload.Title, payload.Body, payload.Sound, payload.Vibrate))
	return nil
}

// Text renders the payload as a chat message.
func Text(payload entity.AlertPayload) string {
	return payload.Title + "\n" + payload.Body
}
