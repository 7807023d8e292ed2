package notify

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	appErrors "bdaywisher/internal/pkg/errors"
	"context"
	"errors"
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LinePusher is the part of the LINE client used to push alerts.
type LinePusher interface {
	PushMessages(to string, silent bool, messages ...linebot.SendingMessage) error
}

// LineNotifier pushes alerts to every registered coordinator.
type LineNotifier struct {
	client       LinePusher
	coordinators repository.CoordinatorRepository
}

// NewLineNotifier creates a LineNotifier.
func NewLineNotifier(client LinePusher, coordinators repository.CoordinatorRepository) *LineNotifier {
	return &LineNotifier{client: client, coordinators: coordinators}
}

func (n *LineNotifier) Name() string { return "line" }

// Notify pushes the alert to each coordinator. With sound off the push is silent.
func (n *LineNotifier) Notify(ctx context.Context, payload entity.AlertPayload) error {
	list, err := n.coordinators.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if len(list) == 0 {
		return fmt.Errorf("%w: no LINE coordinators have followed the bot", appErrors.ErrChannelDisabled)
	}

	var errs []error
	for _, c := range list {
		if err := n.client.PushMessages(c.ID, !payload.Sound, linebot.NewTextMessage(Text(payload))); err != nil {
			errs = append(errs, fmt.Errorf("coordinator %s: %w", c.ID, err))
		}
	}
	return errors.Join(errs...)
}
