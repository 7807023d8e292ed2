package service

import (
	"bdaywisher/internal/domain/entity"
	"context"
)

// CoordinatorService manages the LINE users who receive birthday alerts.
type CoordinatorService interface {
	// Register stores userID as a coordinator, updating the display name if already known.
	Register(ctx context.Context, userID, displayName string) (*entity.Coordinator, error)
	// Unregister handles the unfollow event.
	Unregister(ctx context.Context, userID string) error
	// List returns every coordinator.
	List(ctx context.Context) ([]*entity.Coordinator, error)
}
