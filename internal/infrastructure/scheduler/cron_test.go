package scheduler

import (
	"bdaywisher/internal/domain/constant"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/clock"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Notify(ctx context.Context, payload entity.AlertPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type completion struct {
	handle  string
	firedAt time.Time
}

type recorder struct {
	mu   sync.Mutex
	seen []completion
}

func (r *recorder) record(_ context.Context, handle string, firedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, completion{handle, firedAt})
}

func (r *recorder) all() []completion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]completion(nil), r.seen...)
}

func newTestScheduler(t *testing.T, d Dispatcher) *Scheduler {
	t.Helper()
	s := NewScheduler(time.UTC, d, clock.Real{Location: time.UTC}, logger.NewNop())
	t.Cleanup(s.Stop)
	return s
}

var payload = entity.AlertPayload{Title: "Birthday Reminder", Body: "Asha has a birthday tomorrow! 🎂", PersonID: "P1", PersonName: "Asha", Kind: constant.KindDayBefore}

func TestSchedule_RejectsPastAndZero(t *testing.T) {
	s := newTestScheduler(t, &MockDispatcher{})
	ctx := context.Background()

	_, err := s.Schedule(ctx, time.Now().Add(-time.Minute), payload)
	assert.ErrorIs(t, err, appErrors.ErrSchedulingFailed)

	_, err = s.Schedule(ctx, time.Time{}, payload)
	assert.ErrorIs(t, err, appErrors.ErrSchedulingFailed)

	assert.Zero(t, s.Outstanding())
}

func TestScheduleAndCancel(t *testing.T) {
	s := newTestScheduler(t, &MockDispatcher{})
	ctx := context.Background()

	h1, err := s.Schedule(ctx, time.Now().Add(time.Hour), payload)
	require.NoError(t, err)
	h2, err := s.Schedule(ctx, time.Now().Add(2*time.Hour), payload)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, s.Outstanding())

	require.NoError(t, s.Cancel(ctx, h1))
	assert.Equal(t, 1, s.Outstanding())
	assert.ErrorIs(t, s.Cancel(ctx, h1), appErrors.ErrUnknownHandle)

	require.NoError(t, s.CancelAll(ctx))
	assert.Zero(t, s.Outstanding())
}

func TestFire_DispatchesAndNotifiesListeners(t *testing.T) {
	d := &MockDispatcher{}
	d.On("Notify", mock.Anything, payload).Return(errors.New("push failed")).Once()
	s := newTestScheduler(t, d)
	rec := &recorder{}
	s.OnCompleted(rec.record)

	h, err := s.Schedule(context.Background(), time.Now().Add(time.Hour), payload)
	require.NoError(t, err)

	before := time.Now()
	s.fire(h, payload)

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, h, got[0].handle)
	assert.False(t, got[0].firedAt.Before(before))
	assert.Zero(t, s.Outstanding())
	d.AssertExpectations(t)

	// A second firing of the same handle is ignored.
	s.fire(h, payload)
	assert.Len(t, rec.all(), 1)
}

func TestFire_CanceledHandleIsIgnored(t *testing.T) {
	d := &MockDispatcher{}
	s := newTestScheduler(t, d)
	rec := &recorder{}
	s.OnCompleted(rec.record)

	h, err := s.Schedule(context.Background(), time.Now().Add(time.Hour), payload)
	require.NoError(t, err)
	require.NoError(t, s.Cancel(context.Background(), h))

	s.fire(h, payload)
	assert.Empty(t, rec.all())
	d.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSubscription_Cancel(t *testing.T) {
	d := &MockDispatcher{}
	d.On("Notify", mock.Anything, mock.Anything).Return(nil)
	s := newTestScheduler(t, d)
	rec := &recorder{}
	sub := s.OnCompleted(rec.record)
	sub.Cancel()
	sub.Cancel()

	h, err := s.Schedule(context.Background(), time.Now().Add(time.Hour), payload)
	require.NoError(t, err)
	s.fire(h, payload)
	assert.Empty(t, rec.all())
}

func TestSchedule_FiresOnTime(t *testing.T) {
	d := &MockDispatcher{}
	d.On("Notify", mock.Anything, payload).Return(nil)
	s := newTestScheduler(t, d)
	rec := &recorder{}
	s.OnCompleted(rec.record)

	at := time.Now().Add(300 * time.Millisecond)
	h, err := s.Schedule(context.Background(), at, payload)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, 5*time.Second, 20*time.Millisecond)
	got := rec.all()[0]
	assert.Equal(t, h, got.handle)
	assert.False(t, got.firedAt.Before(at))
	assert.Zero(t, s.Outstanding())
}

func TestOnceAt_Next(t *testing.T) {
	at := time.Date(2024, time.March, 14, 6, 0, 0, 0, time.UTC)
	o := onceAt(at)
	assert.Equal(t, at, o.Next(at.Add(-time.Second)))
	assert.True(t, o.Next(at).IsZero())
	assert.True(t, o.Next(at.Add(time.Second)).IsZero())
}

func TestAddJob(t *testing.T) {
	s := newTestScheduler(t, &MockDispatcher{})

	_, err := s.AddJob("not a spec", func() {})
	assert.Error(t, err)

	_, err = s.AddJob("5 0 0 * * *", func() {})
	require.NoError(t, err)

	// Recurring jobs are not alerts.
	require.NoError(t, s.CancelAll(context.Background()))
	assert.Len(t, s.cron.Entries(), 1)
}
