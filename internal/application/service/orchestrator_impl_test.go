package service

import (
	"bdaywisher/internal/domain/constant"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/clock"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescheduleAll(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.June, 1)
	f := newSchedulerFixture()
	roster := NewRosterService(&fakeSource{}, f.kv, clock.Fixed(now), logger.NewNop())
	orch := NewOrchestratorService(f.delivery, f.ledger, f.svc, roster, f.settings, clock.Fixed(now), logger.NewNop())

	seedPending(t, f.ledger, pendingReminder("stale", "h-stale", now.Add(time.Hour)))

	people := []*entity.Person{
		person("P1", "Asha", date(1990, time.June, 15)),
		person("P2", "Ravi", date(1992, time.July, 2)),
		person("P3", "Meera", date(1994, time.August, 9)),
	}
	f.delivery.reject = func(p entity.AlertPayload) error {
		if p.PersonID == "P2" && p.Kind == constant.KindDayOf {
			return errBoom
		}
		return nil
	}

	result, err := orch.RescheduleAll(ctx, people, entity.DefaultNotificationSettings(), now)
	require.ErrorIs(t, err, appErrors.ErrSchedulingFailed)

	assert.Equal(t, 1, f.delivery.cancelAll)
	assert.Equal(t, 5, result.Scheduled)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "P2", result.Failures[0].PersonID)

	pending := f.ledger.Pending()
	assert.Len(t, pending, 5)
	for _, r := range pending {
		assert.NotEqual(t, "stale", r.ID)
	}
}

func TestRescheduleAll_Disabled(t *testing.T) {
	now := date(2024, time.June, 1)
	f := newSchedulerFixture()
	roster := NewRosterService(&fakeSource{}, f.kv, clock.Fixed(now), logger.NewNop())
	orch := NewOrchestratorService(f.delivery, f.ledger, f.svc, roster, f.settings, clock.Fixed(now), logger.NewNop())
	seedPending(t, f.ledger, pendingReminder("stale", "h-stale", now.Add(time.Hour)))

	settings := entity.DefaultNotificationSettings()
	settings.RemindersEnabled = false
	result, err := orch.RescheduleAll(context.Background(), []*entity.Person{person("P1", "Asha", date(1990, time.June, 15))}, settings, now)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Scheduled)
	assert.Empty(t, result.Failures)
	assert.Empty(t, f.ledger.Pending())
}

func TestRescheduleCurrent_UsesRosterAndSettings(t *testing.T) {
	ctx := context.Background()
	now := date(2024, time.June, 1)
	f := newSchedulerFixture()
	src := &fakeSource{people: []*entity.Person{person("P1", "Asha", date(1990, time.June, 15))}}
	roster := NewRosterService(src, f.kv, clock.Fixed(now), logger.NewNop())
	_, err := roster.RefreshAll(ctx)
	require.NoError(t, err)

	next := entity.DefaultNotificationSettings()
	next.DayBeforeEnabled = false
	require.NoError(t, f.settings.Replace(ctx, next))

	orch := NewOrchestratorService(f.delivery, f.ledger, f.svc, roster, f.settings, clock.Fixed(now), logger.NewNop())
	result, err := orch.RescheduleCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scheduled)
	assert.Equal(t, constant.KindDayOf, f.ledger.Pending()[0].Kind)
}
