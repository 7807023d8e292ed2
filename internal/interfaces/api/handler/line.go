package handler

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/application/service"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/clock"
	"bdaywisher/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// maxListed caps reminders listed in one LINE reply.
const maxListed = 10

// LineMessenger is the part of the LINE client used by the webhook.
type LineMessenger interface {
	ParseRequest(r *http.Request) ([]*linebot.Event, error)
	SendMessages(replyToken string, messages ...linebot.SendingMessage) error
	DisplayName(userID string) string
}

// LineHandler handles incoming LINE webhook events.
type LineHandler struct {
	lineClient   LineMessenger
	coordinators service.CoordinatorService
	roster       service.RosterService
	ledger       service.LedgerService
	orchestrator service.OrchestratorService
	clock        clock.Clock
	log          logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(
	lineClient LineMessenger,
	coordinators service.CoordinatorService,
	roster service.RosterService,
	ledger service.LedgerService,
	orchestrator service.OrchestratorService,
	clk clock.Clock,
	log logger.Logger,
) *LineHandler {
	return &LineHandler{
		lineClient:   lineClient,
		coordinators: coordinators,
		roster:       roster,
		ledger:       ledger,
		orchestrator: orchestrator,
		clock:        clk,
		log:          log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		h.log.Info(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, event)
		case linebot.EventTypeUnfollow:
			h.handleUnfollowEvent(ctx, event)
		default:
			h.log.Info(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}

	return c.String(http.StatusOK, "OK")
}

// handleFollowEvent registers the follower as a coordinator.
func (h *LineHandler) handleFollowEvent(ctx context.Context, event *linebot.Event) {
	userID := event.Source.UserID
	h.log.Info(fmt.Sprintf("User %s followed the bot.", userID))

	c, err := h.coordinators.Register(ctx, userID, h.lineClient.DisplayName(userID))
	if err != nil {
		h.reply(event.ReplyToken, "Sorry, registration failed. Please block and re-add the bot to try again.")
		return
	}

	greeting := "Hi! You will now receive birthday reminders."
	if c.DisplayName != "" {
		greeting = fmt.Sprintf("Hi %s! You will now receive birthday reminders.", c.DisplayName)
	}
	h.reply(event.ReplyToken, greeting, helpText)
}

// handleUnfollowEvent removes the coordinator. No reply is possible.
func (h *LineHandler) handleUnfollowEvent(ctx context.Context, event *linebot.Event) {
	userID := event.Source.UserID
	h.log.Info(fmt.Sprintf("User %s unfollowed or blocked the bot.", userID))
	_ = h.coordinators.Unregister(ctx, userID)
}

const helpText = `Commands:
today - birthdays today and tomorrow
pending - upcoming reminders
sent - recently delivered reminders
reschedule - rebuild all reminders
help - show this message`

// handleMessageEvent answers the text commands.
func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Info(fmt.Sprintf("Received non-text message type from %s", event.Source.UserID))
		return
	}
	h.log.Info(fmt.Sprintf("Received text message from %s: %s", event.Source.UserID, message.Text))

	switch strings.ToLower(strings.TrimSpace(message.Text)) {
	case "today":
		h.reply(event.ReplyToken, h.todayText(ctx))
	case "pending":
		h.reply(event.ReplyToken, listText("Upcoming reminders", h.ledger.Pending(), func(r entity.Reminder) time.Time { return r.ScheduledTime }))
	case "sent":
		sent := h.ledger.Sent()
		if len(sent) > maxListed {
			sent = sent[len(sent)-maxListed:]
		}
		h.reply(event.ReplyToken, listText("Delivered reminders", sent, func(r entity.Reminder) time.Time { return *r.SentTime }))
	case "reschedule":
		h.reply(event.ReplyToken, h.rescheduleText(ctx))
	default:
		h.reply(event.ReplyToken, helpText)
	}
}

func (h *LineHandler) todayText(ctx context.Context) string {
	snap, err := h.roster.RefreshTodayTomorrow(ctx, h.clock.Now())
	if err != nil {
		return "The roster is unavailable right now. Please try again later."
	}
	resp := dto.ToSnapshotResponse(snap)

	var b strings.Builder
	fmt.Fprintf(&b, "Birthdays for %s", resp.Date)
	writeNames(&b, "Today", resp.Today)
	writeNames(&b, "Tomorrow", resp.Tomorrow)
	return b.String()
}

func writeNames(b *strings.Builder, label string, people []dto.PersonResponse) {
	fmt.Fprintf(b, "\n\n%s:", label)
	if len(people) == 0 {
		b.WriteString(" none")
		return
	}
	for _, p := range people {
		fmt.Fprintf(b, "\n🎂 %s", p.Name)
	}
}

func listText(title string, reminders []entity.Reminder, at func(entity.Reminder) time.Time) string {
	if len(reminders) == 0 {
		return title + ": none"
	}
	var b strings.Builder
	b.WriteString(title + ":")
	for i, r := range reminders {
		if i == maxListed {
			fmt.Fprintf(&b, "\n...and %d more", len(reminders)-maxListed)
			break
		}
		fmt.Fprintf(&b, "\n%s [%s] %s", at(r).Format("2006/01/02 15:04"), r.Kind, r.PersonName)
	}
	return b.String()
}

func (h *LineHandler) rescheduleText(ctx context.Context) string {
	result, err := h.orchestrator.RescheduleCurrent(ctx)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Reschedule from LINE finished with failures: %v", err))
	}
	text := fmt.Sprintf("Scheduled %d reminders.", result.Scheduled)
	if n := len(result.Failures); n > 0 {
		text += fmt.Sprintf(" %d people could not be fully scheduled.", n)
	}
	return text
}

// reply sends texts as one reply. Failures are only logged.
func (h *LineHandler) reply(replyToken string, texts ...string) {
	messages := make([]linebot.SendingMessage, 0, len(texts))
	for _, t := range texts {
		messages = append(messages, linebot.NewTextMessage(t))
	}
	if err := h.lineClient.SendMessages(replyToken, messages...); err != nil {
		h.log.Error("Failed to send reply message", err)
	}
}
