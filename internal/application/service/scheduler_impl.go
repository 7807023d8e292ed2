package service

import (
	"bdaywisher/internal/domain/constant"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"bdaywisher/internal/pkg/dateutil"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"bdaywisher/internal/pkg/metrics"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CustomDelay is how long after the request a custom message fires.
const CustomDelay = 5 * time.Second

type schedulerService struct {
	delivery repository.DeliveryFacility
	ledger   LedgerService
	settings SettingsService
	log      logger.Logger
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(
	delivery repository.DeliveryFacility,
	ledger LedgerService,
	settings SettingsService,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		delivery: delivery,
		ledger:   ledger,
		settings: settings,
		log:      log,
	}
}

// ScheduleForPerson never fails as a whole: each rejected reminder is
// dropped and reported in the joined error while the other proceeds.
func (s *schedulerService) ScheduleForPerson(ctx context.Context, person *entity.Person, settings entity.NotificationSettings, now time.Time) ([]entity.Reminder, error) {
	if !settings.RemindersEnabled {
		return []entity.Reminder{}, nil
	}

	occurrence := dateutil.NextOccurrenceOnOrAfter(person.BirthDate, now)

	type candidate struct {
		kind    constant.ReminderKind
		at      time.Time
		message string
	}
	var candidates []candidate
	if settings.DayBeforeEnabled {
		eve := occurrence.AddDate(0, 0, -1)
		candidates = append(candidates, candidate{
			kind:    constant.KindDayBefore,
			at:      dateutil.At(eve, settings.DayBeforeTime.Hour, settings.DayBeforeTime.Minute),
			message: fmt.Sprintf("%s has a birthday tomorrow! 🎂", person.Name),
		})
	}
	if settings.DayOfEnabled {
		candidates = append(candidates, candidate{
			kind:    constant.KindDayOf,
			at:      dateutil.At(occurrence, settings.DayOfTime.Hour, settings.DayOfTime.Minute),
			message: settings.RenderMessage(person.Name),
		})
	}

	created := []entity.Reminder{}
	var errs []error
	s.ledger.UpdatePending(ctx, func(pending []entity.Reminder) []entity.Reminder {
		for _, c := range candidates {
			if !c.at.After(now) {
				s.log.Debug(fmt.Sprintf("Skipping %s reminder for %s: %s has passed", c.kind, person.Name, c.at.Format(time.RFC3339)))
				continue
			}
			r, err := s.register(ctx, person, c.kind, c.message, c.at, settings)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			created = append(created, r)
		}
		return append(pending, created...)
	})
	return created, errors.Join(errs...)
}

// ScheduleCustom sends message verbatim; no placeholder is substituted.
func (s *schedulerService) ScheduleCustom(ctx context.Context, person *entity.Person, message string, now time.Time) (entity.Reminder, error) {
	var (
		created entity.Reminder
		err     error
	)
	settings := s.settings.Current()
	s.ledger.UpdatePending(ctx, func(pending []entity.Reminder) []entity.Reminder {
		created, err = s.register(ctx, person, constant.KindCustom, message, now.Add(CustomDelay), settings)
		if err != nil {
			return pending
		}
		return append(pending, created)
	})
	return created, err
}

func (s *schedulerService) register(ctx context.Context, person *entity.Person, kind constant.ReminderKind, message string, at time.Time, settings entity.NotificationSettings) (entity.Reminder, error) {
	r := entity.Reminder{
		ID:            uuid.NewString(),
		PersonID:      person.ID,
		PersonName:    person.Name,
		Message:       message,
		Kind:          kind,
		ScheduledTime: at,
	}
	handle, err := s.delivery.Schedule(ctx, at, alertPayload(r, settings))
	if err != nil {
		metrics.ReminderFailed(kind.String())
		s.log.Error(fmt.Sprintf("Failed to schedule %s reminder for %s", kind, person.Name), err)
		if !errors.Is(err, appErrors.ErrSchedulingFailed) {
			err = fmt.Errorf("%w: %v", appErrors.ErrSchedulingFailed, err)
		}
		return entity.Reminder{}, fmt.Errorf("%s reminder for %s: %w", kind, person.Name, err)
	}
	r.DeliveryHandle = handle
	metrics.ReminderScheduled(kind.String())
	s.log.Info(fmt.Sprintf("Scheduled %s reminder %s for %s at %s.", kind, r.ID, person.Name, at.Format(time.RFC3339)))
	return r, nil
}

// alertPayload builds what the coordinator sees when r fires.
func alertPayload(r entity.Reminder, settings entity.NotificationSettings) entity.AlertPayload {
	var title string
	switch r.Kind {
	case constant.KindDayBefore:
		title = "Birthday Reminder"
	case constant.KindDayOf:
		title = fmt.Sprintf("Happy Birthday %s! 🎉", r.PersonName)
	default:
		title = fmt.Sprintf("Message for %s", r.PersonName)
	}
	return entity.AlertPayload{
		Title:      title,
		Body:       r.Message,
		PersonID:   r.PersonID,
		PersonName: r.PersonName,
		Kind:       r.Kind,
		Sound:      settings.SoundEnabled,
		Vibrate:    settings.VibrationEnabled,
	}
}
