package dto

import (
	"bdaywisher/internal/domain/entity"
	"time"
)

// ReminderResponse is the DTO for a pending or sent reminder.
type ReminderResponse struct {
	ID            string     `json:"id"`
	PersonID      string     `json:"person_id"`
	PersonName    string     `json:"person_name"`
	Message       string     `json:"message"`
	Kind          string     `json:"kind"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	SentTime      *time.Time `json:"sent_time,omitempty"`
}

// ToReminderResponse converts an entity.Reminder to a ReminderResponse DTO.
func ToReminderResponse(r entity.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:            r.ID,
		PersonID:      r.PersonID,
		PersonName:    r.PersonName,
		Message:       r.Message,
		Kind:          r.Kind.String(),
		ScheduledTime: r.ScheduledTime,
		SentTime:      r.SentTime,
	}
}

// ToReminderResponseList converts a slice of entity.Reminder to a slice of ReminderResponse DTOs.
func ToReminderResponseList(reminders []entity.Reminder) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r)
	}
	return list
}

// CustomReminderRequest is the DTO for a one-off message about a person.
type CustomReminderRequest struct {
	PersonID string `json:"person_id"`
	Message  string `json:"message"`
}

// PersonFailure describes a person whose reminders could not all be scheduled.
type PersonFailure struct {
	PersonID   string `json:"person_id"`
	PersonName string `json:"person_name"`
	Error      string `json:"error"`
}

// RescheduleResult is the aggregate outcome of rescheduling the whole roster.
type RescheduleResult struct {
	Scheduled int             `json:"scheduled"`
	Failures  []PersonFailure `json:"failures"`
}
