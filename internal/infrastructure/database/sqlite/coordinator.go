package sqlite

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type coordinatorRepository struct {
	db *gorm.DB
}

// NewCoordinatorRepository creates a new instance of CoordinatorRepository.
func NewCoordinatorRepository(db *gorm.DB) repository.CoordinatorRepository {
	return &coordinatorRepository{db: db}
}

// FindByID retrieves a coordinator by their LINE User ID.
func (r *coordinatorRepository) FindByID(ctx context.Context, id string) (*entity.Coordinator, error) {
	var c entity.Coordinator
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("coordinator with ID %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find coordinator %s: %w", id, err)
	}
	return &c, nil
}

// FindAll retrieves every registered coordinator.
func (r *coordinatorRepository) FindAll(ctx context.Context) ([]*entity.Coordinator, error) {
	var list []*entity.Coordinator
	if err := r.db.WithContext(ctx).Order("created_at").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list coordinators: %w", err)
	}
	return list, nil
}

// Save creates or updates a coordinator.
func (r *coordinatorRepository) Save(ctx context.Context, c *entity.Coordinator) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("failed to save coordinator %s: %w", c.ID, err)
	}
	return nil
}

// Delete removes a coordinator by their LINE User ID.
func (r *coordinatorRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&entity.Coordinator{}).Error; err != nil {
		return fmt.Errorf("failed to delete coordinator %s: %w", id, err)
	}
	return nil
}
