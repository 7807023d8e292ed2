package service

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"bdaywisher/internal/pkg/clock"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type coordinatorService struct {
	repo  repository.CoordinatorRepository
	clock clock.Clock
	log   logger.Logger
}

// NewCoordinatorService creates a new instance of CoordinatorService implementation.
func NewCoordinatorService(repo repository.CoordinatorRepository, clk clock.Clock, log logger.Logger) CoordinatorService {
	return &coordinatorService{repo: repo, clock: clk, log: log}
}

// Register finds the coordinator or creates a new one.
func (s *coordinatorService) Register(ctx context.Context, userID, displayName string) (*entity.Coordinator, error) {
	c, err := s.repo.FindByID(ctx, userID)
	switch {
	case err == nil:
		if displayName == "" || c.DisplayName == displayName {
			s.log.Debug(fmt.Sprintf("Coordinator %s already registered", userID))
			return c, nil
		}
		c.DisplayName = displayName
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.log.Info(fmt.Sprintf("Coordinator %s not found, registering.", userID))
		c = &entity.Coordinator{ID: userID, DisplayName: displayName, CreatedAt: s.clock.Now()}
	default:
		s.log.Error(fmt.Sprintf("Failed to find coordinator %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.repo.Save(ctx, c); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save coordinator %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return c, nil
}

// Unregister deletes the coordinator; they stop receiving alerts.
func (s *coordinatorService) Unregister(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete coordinator %s during unfollow", userID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted coordinator %s due to unfollow.", userID))
	return nil
}

func (s *coordinatorService) List(ctx context.Context) ([]*entity.Coordinator, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return list, nil
}
