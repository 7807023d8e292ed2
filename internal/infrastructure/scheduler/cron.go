package scheduler

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"bdaywisher/internal/pkg/clock"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const dispatchTimeout = 30 * time.Second

// Dispatcher delivers a fired alert to the coordinator.
type Dispatcher interface {
	Notify(ctx context.Context, payload entity.AlertPayload) error
}

// Scheduler is the cron-backed delivery facility. Every alert is a one-shot
// cron entry addressed by a uuid handle.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher Dispatcher
	clock      clock.Clock
	log        logger.Logger

	mu        sync.Mutex // protects jobs and listeners
	jobs      map[string]cron.EntryID
	listeners map[uint64]repository.CompletionFunc
	nextID    uint64
}

var _ repository.DeliveryFacility = (*Scheduler)(nil)

// NewScheduler creates and starts a cron scheduler running in loc.
func NewScheduler(loc *time.Location, dispatcher Dispatcher, clk clock.Clock, log logger.Logger) *Scheduler {
	c := cron.New(
		cron.WithSeconds(), // Use seconds precision
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger{log: log})),
	)
	c.Start()
	log.Info(fmt.Sprintf("Cron scheduler started in %s.", loc))
	return &Scheduler{
		cron:       c,
		dispatcher: dispatcher,
		clock:      clk,
		log:        log,
		jobs:       make(map[string]cron.EntryID),
		listeners:  make(map[uint64]repository.CompletionFunc),
	}
}

// onceAt fires a single time at the given instant.
type onceAt time.Time

// Next implements cron.Schedule. The zero time tells cron there is no further run.
func (o onceAt) Next(t time.Time) time.Time {
	at := time.Time(o)
	if t.Before(at) {
		return at
	}
	return time.Time{}
}

// Schedule registers a one-shot alert at fireTime.
func (s *Scheduler) Schedule(ctx context.Context, fireTime time.Time, payload entity.AlertPayload) (string, error) {
	if fireTime.IsZero() || !fireTime.After(s.clock.Now()) {
		return "", fmt.Errorf("%w: fire time %s is not in the future", appErrors.ErrSchedulingFailed, fireTime)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", appErrors.ErrSchedulingFailed, err)
	}

	handle := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	entryID := s.cron.Schedule(onceAt(fireTime), cron.FuncJob(func() {
		s.fire(handle, payload)
	}))
	s.jobs[handle] = entryID
	s.log.Info(fmt.Sprintf("Scheduled %s alert for %s at %s (handle %s, job %d)", payload.Kind, payload.PersonName, fireTime.Format(time.RFC3339), handle, entryID))
	return handle, nil
}

// fire runs when a one-shot entry is due: it drops the entry, dispatches the
// payload and notifies completion listeners. A canceled handle is ignored.
func (s *Scheduler) fire(handle string, payload entity.AlertPayload) {
	s.mu.Lock()
	entryID, ok := s.jobs[handle]
	if !ok {
		s.mu.Unlock()
		s.log.Debug(fmt.Sprintf("Alert %s fired after cancellation, ignoring", handle))
		return
	}
	delete(s.jobs, handle)
	s.cron.Remove(entryID)
	listeners := make([]repository.CompletionFunc, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	s.log.Info(fmt.Sprintf("Executing %s alert for %s (handle %s)", payload.Kind, payload.PersonName, handle))
	if err := s.dispatcher.Notify(ctx, payload); err != nil {
		s.log.Error(fmt.Sprintf("Failed to dispatch alert %s", handle), err)
	}

	firedAt := s.clock.Now()
	for _, fn := range listeners {
		fn(ctx, handle, firedAt)
	}
}

// Cancel removes the alert registered under handle.
func (s *Scheduler) Cancel(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.jobs[handle]
	if !ok {
		return fmt.Errorf("%w: %s", appErrors.ErrUnknownHandle, handle)
	}
	delete(s.jobs, handle)
	s.cron.Remove(entryID)
	s.log.Info(fmt.Sprintf("Cancelled alert %s (job %d)", handle, entryID))
	return nil
}

// CancelAll removes every outstanding alert. Jobs added with AddJob are kept.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for handle, entryID := range s.jobs {
		s.cron.Remove(entryID)
		delete(s.jobs, handle)
	}
	s.log.Info("Cancelled all outstanding alerts.")
	return nil
}

// OnCompleted registers fn for every fired alert.
func (s *Scheduler) OnCompleted(fn repository.CompletionFunc) repository.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return &subscription{cancel: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}}
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (sub *subscription) Cancel() {
	sub.once.Do(sub.cancel)
}

// Outstanding returns the number of alerts waiting to fire.
func (s *Scheduler) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// AddJob adds a recurring job to the scheduler.
// spec follows the cron format with seconds (e.g., "0 30 * * * *").
func (s *Scheduler) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.log.Info(fmt.Sprintf("Added cron job with ID %d, spec: %s", id, spec))
	return id, nil
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done() // Wait for running jobs to complete
	s.log.Info("Cron scheduler stopped.")
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(fmt.Sprintf("cron: %s %v", msg, keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(fmt.Sprintf("cron: %s %v", msg, keysAndValues), err)
}
