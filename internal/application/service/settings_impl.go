package service

import (
	"bdaywisher/internal/domain/constant"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type settingsService struct {
	kv  repository.KeyValueStore
	log logger.Logger

	mu       sync.RWMutex
	settings entity.NotificationSettings
}

// NewSettingsService creates a SettingsService holding the defaults until Load is called.
func NewSettingsService(kv repository.KeyValueStore, log logger.Logger) SettingsService {
	return &settingsService{
		kv:       kv,
		log:      log,
		settings: entity.DefaultNotificationSettings(),
	}
}

// Load reads the persisted settings. Any read, decode or validation failure
// discards the stored blob entirely in favor of the defaults.
func (s *settingsService) Load(ctx context.Context) entity.NotificationSettings {
	loaded := s.read(ctx)

	s.mu.Lock()
	s.settings = loaded
	s.mu.Unlock()
	return loaded
}

func (s *settingsService) read(ctx context.Context) entity.NotificationSettings {
	raw, ok, err := s.kv.Get(ctx, constant.KeyNotificationSettings)
	if err != nil {
		s.log.Error("Failed to read notification settings, using defaults", err)
		return entity.DefaultNotificationSettings()
	}
	if !ok {
		s.log.Info("No stored notification settings, using defaults.")
		return entity.DefaultNotificationSettings()
	}
	parsed, err := entity.ParseNotificationSettings(raw)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Stored notification settings are invalid, using defaults: %v", err))
		return entity.DefaultNotificationSettings()
	}
	return parsed
}

// Replace installs settings and persists them. A persistence failure is
// logged; the new settings stay in effect for this process.
func (s *settingsService) Replace(ctx context.Context, settings entity.NotificationSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrInvalidSettings, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings

	raw, err := json.Marshal(settings)
	if err == nil {
		err = s.kv.Set(ctx, constant.KeyNotificationSettings, raw)
	}
	if err != nil {
		s.log.Error("Failed to persist notification settings", fmt.Errorf("%w: %v", appErrors.ErrPersistenceFailed, err))
		return nil
	}
	s.log.Info("Notification settings replaced.")
	return nil
}

// Current returns the in-memory settings.
func (s *settingsService) Current() entity.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}
