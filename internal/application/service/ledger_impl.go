package service

import (
	"bdaywisher/internal/domain/constant"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"bdaywisher/internal/pkg/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

type ledgerService struct {
	kv       repository.KeyValueStore
	delivery repository.DeliveryFacility
	log      logger.Logger

	mu      sync.Mutex // held across schedule, record and persist
	pending []entity.Reminder
	sent    []entity.Reminder
}

// NewLedgerService creates a new instance of LedgerService implementation.
func NewLedgerService(kv repository.KeyValueStore, delivery repository.DeliveryFacility, log logger.Logger) LedgerService {
	return &ledgerService{
		kv:       kv,
		delivery: delivery,
		log:      log,
		pending:  []entity.Reminder{},
		sent:     []entity.Reminder{},
	}
}

// Load reads both lists. A missing key is an empty list; an unreadable one
// is logged and treated as empty.
func (s *ledgerService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, perr := s.readList(ctx, constant.KeyPendingNotifications)
	sent, serr := s.readList(ctx, constant.KeySentNotifications)
	s.pending = pending
	s.sent = sent
	s.log.Info(fmt.Sprintf("Loaded reminder ledger: %d pending, %d sent.", len(pending), len(sent)))
	return errors.Join(perr, serr)
}

func (s *ledgerService) readList(ctx context.Context, key string) ([]entity.Reminder, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to read %s", key), err)
		return []entity.Reminder{}, fmt.Errorf("%w: %v", appErrors.ErrPersistenceFailed, err)
	}
	if !ok {
		return []entity.Reminder{}, nil
	}
	var list []entity.Reminder
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn(fmt.Sprintf("Discarding malformed %s: %v", key, err))
		return []entity.Reminder{}, nil
	}
	if list == nil {
		list = []entity.Reminder{}
	}
	return list, nil
}

// Restore gives every still-future pending reminder a fresh delivery handle.
// Handles from a previous process are meaningless to the new facility.
func (s *ledgerService) Restore(ctx context.Context, settings entity.NotificationSettings, now time.Time) (restored, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]entity.Reminder, 0, len(s.pending))
	for _, r := range s.pending {
		if !r.ScheduledTime.After(now) {
			s.log.Info(fmt.Sprintf("Dropping overdue reminder %s for %s (was due %s)", r.ID, r.PersonName, r.ScheduledTime.Format(time.RFC3339)))
			dropped++
			continue
		}
		handle, err := s.delivery.Schedule(ctx, r.ScheduledTime, alertPayload(r, settings))
		if err != nil {
			metrics.ReminderFailed(r.Kind.String())
			s.log.Error(fmt.Sprintf("Failed to restore reminder %s for %s", r.ID, r.PersonName), err)
			dropped++
			continue
		}
		r.DeliveryHandle = handle
		kept = append(kept, r)
		restored++
	}
	s.pending = kept
	s.persist(ctx, constant.KeyPendingNotifications, s.pending)
	s.log.Info(fmt.Sprintf("Restored %d pending reminders, dropped %d.", restored, dropped))
	return restored, dropped
}

// OnDeliveryCompleted is the delivery facility's completion callback. An
// unknown handle is a no-op.
func (s *ledgerService) OnDeliveryCompleted(ctx context.Context, handle string, completedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.pending {
		if r.DeliveryHandle == handle {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.Debug(fmt.Sprintf("Completion for unknown handle %s, ignoring", handle))
		return
	}

	r := s.pending[idx]
	s.pending = append(s.pending[:idx:idx], s.pending[idx+1:]...)
	sentAt := completedAt
	r.SentTime = &sentAt
	s.sent = append(s.sent, r)
	metrics.ReminderDelivered()

	s.persist(ctx, constant.KeyPendingNotifications, s.pending)
	s.persist(ctx, constant.KeySentNotifications, s.sent)
	s.log.Info(fmt.Sprintf("Reminder %s for %s delivered at %s.", r.ID, r.PersonName, sentAt.Format(time.RFC3339)))
}

// Cancel is idempotent. An upstream cancel failure is logged and the local
// removal still happens.
func (s *ledgerService) Cancel(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.pending {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.Debug(fmt.Sprintf("No pending reminder %s to cancel.", id))
		return false
	}

	r := s.pending[idx]
	if err := s.delivery.Cancel(ctx, r.DeliveryHandle); err != nil {
		s.log.Warn(fmt.Sprintf("Upstream cancel of reminder %s (handle %s) failed: %v", r.ID, r.DeliveryHandle, err))
	}
	s.pending = append(s.pending[:idx:idx], s.pending[idx+1:]...)
	metrics.ReminderCanceled()
	s.persist(ctx, constant.KeyPendingNotifications, s.pending)
	s.log.Info(fmt.Sprintf("Cancelled reminder %s for %s.", r.ID, r.PersonName))
	return true
}

// UpdatePending hands the pending list to fn and persists the result once.
func (s *ledgerService) UpdatePending(ctx context.Context, fn func(pending []entity.Reminder) []entity.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := fn(append([]entity.Reminder{}, s.pending...))
	if updated == nil {
		updated = []entity.Reminder{}
	}
	s.pending = updated
	s.persist(ctx, constant.KeyPendingNotifications, s.pending)
}

// persist writes list under key. Failures are logged; memory stays authoritative.
func (s *ledgerService) persist(ctx context.Context, key string, list []entity.Reminder) {
	raw, err := json.Marshal(list)
	if err == nil {
		err = s.kv.Set(ctx, key, raw)
	}
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist %s", key), fmt.Errorf("%w: %v", appErrors.ErrPersistenceFailed, err))
	}
}

// Pending returns a copy of the pending list.
func (s *ledgerService) Pending() []entity.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Reminder{}, s.pending...)
}

// Sent returns a copy of the sent list.
func (s *ledgerService) Sent() []entity.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Reminder{}, s.sent...)
}
