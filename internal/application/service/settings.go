package service

import (
	"bdaywisher/internal/domain/entity"
	"context"
)

// SettingsService owns the notification settings.
type SettingsService interface {
	// Load reads the persisted settings, falling back to defaults when absent or invalid.
	Load(ctx context.Context) entity.NotificationSettings
	// Replace validates, persists and installs a complete settings object.
	Replace(ctx context.Context, settings entity.NotificationSettings) error
	// Current returns the in-memory settings.
	Current() entity.NotificationSettings
}
