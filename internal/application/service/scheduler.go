package service

import (
	"bdaywisher/internal/domain/entity"
	"context"
	"time"
)

// SchedulerService turns people and settings into registered reminders.
type SchedulerService interface {
	// ScheduleForPerson registers the day-before and day-of reminders for
	// person's next birthday. Reminders whose fire time has passed are skipped.
	ScheduleForPerson(ctx context.Context, person *entity.Person, settings entity.NotificationSettings, now time.Time) ([]entity.Reminder, error)
	// ScheduleCustom registers a one-off message about person a few seconds after now.
	ScheduleCustom(ctx context.Context, person *entity.Person, message string, now time.Time) (entity.Reminder, error)
}
