package service

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/domain/entity"
	"context"
	"time"
)

// OrchestratorService rebuilds every reminder from scratch.
type OrchestratorService interface {
	// RescheduleAll cancels every outstanding alert, clears the pending list
	// and schedules each person in turn. Per-person failures never abort the loop.
	RescheduleAll(ctx context.Context, roster []*entity.Person, settings entity.NotificationSettings, now time.Time) (*dto.RescheduleResult, error)
	// RescheduleCurrent runs RescheduleAll with the in-memory roster, the current settings and the clock's now.
	RescheduleCurrent(ctx context.Context) (*dto.RescheduleResult, error)
}
