package repository

import (
	"bdaywisher/internal/domain/entity"
	"context"
)

// CoordinatorRepository defines the interface for coordinator data operations.
type CoordinatorRepository interface {
	// FindByID retrieves a coordinator by their LINE User ID.
	FindByID(ctx context.Context, id string) (*entity.Coordinator, error)
	// FindAll retrieves every registered coordinator.
	FindAll(ctx context.Context) ([]*entity.Coordinator, error)
	// Save creates or updates a coordinator.
	Save(ctx context.Context, coordinator *entity.Coordinator) error
	// Delete removes a coordinator by their LINE User ID.
	Delete(ctx context.Context, id string) error
}
