package service

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"bdaywisher/internal/pkg/clock"
	"bdaywisher/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type orchestratorService struct {
	delivery  repository.DeliveryFacility
	ledger    LedgerService
	scheduler SchedulerService
	roster    RosterService
	settings  SettingsService
	clock     clock.Clock
	log       logger.Logger

	mu sync.Mutex // one reschedule at a time
}

// NewOrchestratorService creates a new instance of OrchestratorService implementation.
func NewOrchestratorService(
	delivery repository.DeliveryFacility,
	ledger LedgerService,
	scheduler SchedulerService,
	roster RosterService,
	settings SettingsService,
	clk clock.Clock,
	log logger.Logger,
) OrchestratorService {
	return &orchestratorService{
		delivery:  delivery,
		ledger:    ledger,
		scheduler: scheduler,
		roster:    roster,
		settings:  settings,
		clock:     clk,
		log:       log,
	}
}

func (s *orchestratorService) RescheduleCurrent(ctx context.Context) (*dto.RescheduleResult, error) {
	return s.RescheduleAll(ctx, s.roster.People(), s.settings.Current(), s.clock.Now())
}

// RescheduleAll runs people sequentially; each ScheduleForPerson call
// read-modify-writes the shared pending list.
func (s *orchestratorService) RescheduleAll(ctx context.Context, roster []*entity.Person, settings entity.NotificationSettings, now time.Time) (*dto.RescheduleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.UpdatePending(ctx, func(pending []entity.Reminder) []entity.Reminder {
		if err := s.delivery.CancelAll(ctx); err != nil {
			s.log.Error("Failed to cancel outstanding alerts", err)
		}
		s.log.Info(fmt.Sprintf("Cleared %d pending reminders.", len(pending)))
		return []entity.Reminder{}
	})

	result := &dto.RescheduleResult{Failures: []dto.PersonFailure{}}
	var errs []error
	for _, person := range roster {
		created, err := s.scheduler.ScheduleForPerson(ctx, person, settings, now)
		result.Scheduled += len(created)
		if err != nil {
			errs = append(errs, err)
			result.Failures = append(result.Failures, dto.PersonFailure{
				PersonID:   person.ID,
				PersonName: person.Name,
				Error:      err.Error(),
			})
		}
	}

	s.log.Info(fmt.Sprintf("Rescheduled %d reminders for %d people (%d failures).", result.Scheduled, len(roster), len(result.Failures)))
	return result, errors.Join(errs...)
}
