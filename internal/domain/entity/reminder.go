package entity

import (
	"bdaywisher/internal/domain/constant"
	"time"
)

// Reminder is a scheduled alert about one person. It is pending while SentTime
// is nil and sent afterwards.
type Reminder struct {
	ID             string                `json:"id"`
	PersonID       string                `json:"person_id"`
	PersonName     string                `json:"person_name"`
	Message        string                `json:"message"`
	Kind           constant.ReminderKind `json:"kind"`
	ScheduledTime  time.Time             `json:"scheduled_time"`
	DeliveryHandle string                `json:"delivery_handle"`
	SentTime       *time.Time            `json:"sent_time,omitempty"`
}

// AlertPayload is what the delivery facility hands to the alert channels when a reminder fires.
type AlertPayload struct {
	Title      string                `json:"title"`
	Body       string                `json:"body"`
	PersonID   string                `json:"person_id"`
	PersonName string                `json:"person_name"`
	Kind       constant.ReminderKind `json:"kind"`
	Sound      bool                  `json:"sound"`
	Vibrate    bool                  `json:"vibrate"`
}
