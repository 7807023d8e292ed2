package handler

import (
	"bdaywisher/internal/application/service"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/logger"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMessenger struct {
	events   []*linebot.Event
	parseErr error
	replies  map[string][]string
}

func (f *fakeMessenger) ParseRequest(*http.Request) ([]*linebot.Event, error) {
	return f.events, f.parseErr
}

func (f *fakeMessenger) SendMessages(replyToken string, messages ...linebot.SendingMessage) error {
	for _, m := range messages {
		if text, ok := m.(*linebot.TextMessage); ok {
			f.replies[replyToken] = append(f.replies[replyToken], text.Text)
		}
	}
	return nil
}

func (f *fakeMessenger) DisplayName(string) string { return "Mina" }

type memCoordinators struct {
	byID map[string]*entity.Coordinator
}

func (m *memCoordinators) FindByID(_ context.Context, id string) (*entity.Coordinator, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *memCoordinators) FindAll(context.Context) ([]*entity.Coordinator, error) {
	list := make([]*entity.Coordinator, 0, len(m.byID))
	for _, c := range m.byID {
		list = append(list, c)
	}
	return list, nil
}

func (m *memCoordinators) Save(_ context.Context, c *entity.Coordinator) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCoordinators) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func textEvent(token, text string) *linebot.Event {
	return &linebot.Event{
		Type:       linebot.EventTypeMessage,
		ReplyToken: token,
		Source:     &linebot.EventSource{Type: linebot.EventSourceTypeUser, UserID: "U1"},
		Message:    linebot.NewTextMessage(text),
	}
}

func TestLineWebhook(t *testing.T) {
	a := newTestApp(t)
	coordinators := &memCoordinators{byID: map[string]*entity.Coordinator{}}
	messenger := &fakeMessenger{replies: map[string][]string{}}
	h := NewLineHandler(messenger, service.NewCoordinatorService(coordinators, a.clock, logger.NewNop()), a.roster, a.ledger, a.orchestrator, a.clock, logger.NewNop())
	a.echo.POST("/callback", h.HandleWebhook)

	messenger.events = []*linebot.Event{
		{Type: linebot.EventTypeFollow, ReplyToken: "follow", Source: &linebot.EventSource{Type: linebot.EventSourceTypeUser, UserID: "U1"}},
		textEvent("today", " Today "),
		textEvent("reschedule", "reschedule"),
		textEvent("pending", "pending"),
		textEvent("sent", "sent"),
		textEvent("other", "what?"),
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/callback", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Contains(t, coordinators.byID, "U1")
	assert.Equal(t, "Mina", coordinators.byID["U1"].DisplayName)
	assert.Equal(t, "Hi Mina! You will now receive birthday reminders.", messenger.replies["follow"][0])

	assert.Contains(t, messenger.replies["today"][0], "Today:\n🎂 Asha")
	assert.Contains(t, messenger.replies["today"][0], "Tomorrow:\n🎂 Ravi")
	assert.Equal(t, []string{"Scheduled 2 reminders."}, messenger.replies["reschedule"])
	assert.Contains(t, messenger.replies["pending"][0], "[day-before] Ravi")
	assert.Equal(t, []string{"Delivered reminders: none"}, messenger.replies["sent"])
	assert.Equal(t, []string{helpText}, messenger.replies["other"])

	messenger.events = []*linebot.Event{
		{Type: linebot.EventTypeUnfollow, Source: &linebot.EventSource{Type: linebot.EventSourceTypeUser, UserID: "U1"}},
	}
	rec = httptest.NewRecorder()
	a.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/callback", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, coordinators.byID, "U1")
}

func TestLineWebhook_InvalidSignature(t *testing.T) {
	a := newTestApp(t)
	messenger := &fakeMessenger{parseErr: linebot.ErrInvalidSignature, replies: map[string][]string{}}
	h := NewLineHandler(messenger, nil, a.roster, a.ledger, a.orchestrator, a.clock, logger.NewNop())
	a.echo.POST("/callback", h.HandleWebhook)

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/callback", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
