package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultMessageTemplate is the day-of message; {name} is replaced by the person's name.
const DefaultMessageTemplate = "Happy Birthday {name}! 🎂 Wishing you a fantastic day filled with joy and celebration! 🎉"

// NamePlaceholder is substituted in MessageTemplate.
const NamePlaceholder = "{name}"

// TimeOfDay is a wall-clock time encoded as "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Valid reports whether the hour and minute are in range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// MarshalJSON encodes the time as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NotificationSettings is the process-wide reminder configuration. Sub-toggles
// keep their values while RemindersEnabled is false.
type NotificationSettings struct {
	RemindersEnabled bool      `json:"reminders_enabled"`
	DayBeforeEnabled bool      `json:"day_before_enabled"`
	DayOfEnabled     bool      `json:"day_of_enabled"`
	SoundEnabled     bool      `json:"sound_enabled"`
	VibrationEnabled bool      `json:"vibration_enabled"`
	DayBeforeTime    TimeOfDay `json:"day_before_time"`
	DayOfTime        TimeOfDay `json:"day_of_time"`
	MessageTemplate  string    `json:"message_template"`
}

// DefaultNotificationSettings returns the first-run configuration.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		RemindersEnabled: true,
		DayBeforeEnabled: true,
		DayOfEnabled:     true,
		SoundEnabled:     true,
		VibrationEnabled: true,
		DayBeforeTime:    TimeOfDay{Hour: 18, Minute: 0},
		DayOfTime:        TimeOfDay{Hour: 6, Minute: 0},
		MessageTemplate:  DefaultMessageTemplate,
	}
}

// Validate checks the times and the template.
func (s NotificationSettings) Validate() error {
	if !s.DayBeforeTime.Valid() {
		return fmt.Errorf("day_before_time %s out of range", s.DayBeforeTime)
	}
	if !s.DayOfTime.Valid() {
		return fmt.Errorf("day_of_time %s out of range", s.DayOfTime)
	}
	if strings.TrimSpace(s.MessageTemplate) == "" {
		return fmt.Errorf("message_template is empty")
	}
	return nil
}

// RenderMessage substitutes every {name} in the template.
func (s NotificationSettings) RenderMessage(name string) string {
	return strings.ReplaceAll(s.MessageTemplate, NamePlaceholder, name)
}

// settingsDocument mirrors NotificationSettings with pointers so missing fields can be detected.
type settingsDocument struct {
	RemindersEnabled *bool      `json:"reminders_enabled"`
	DayBeforeEnabled *bool      `json:"day_before_enabled"`
	DayOfEnabled     *bool      `json:"day_of_enabled"`
	SoundEnabled     *bool      `json:"sound_enabled"`
	VibrationEnabled *bool      `json:"vibration_enabled"`
	DayBeforeTime    *TimeOfDay `json:"day_before_time"`
	DayOfTime        *TimeOfDay `json:"day_of_time"`
	MessageTemplate  *string    `json:"message_template"`
}

// ParseNotificationSettings decodes a complete settings object. Unknown or
// missing fields, malformed times and trailing data are all errors.
func ParseNotificationSettings(data []byte) (NotificationSettings, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc settingsDocument
	if err := dec.Decode(&doc); err != nil {
		return NotificationSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	if dec.More() {
		return NotificationSettings{}, errors.New("decode settings: trailing data")
	}

	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("reminders_enabled", doc.RemindersEnabled != nil)
	check("day_before_enabled", doc.DayBeforeEnabled != nil)
	check("day_of_enabled", doc.DayOfEnabled != nil)
	check("sound_enabled", doc.SoundEnabled != nil)
	check("vibration_enabled", doc.VibrationEnabled != nil)
	check("day_before_time", doc.DayBeforeTime != nil)
	check("day_of_time", doc.DayOfTime != nil)
	check("message_template", doc.MessageTemplate != nil)
	if len(missing) > 0 {
		return NotificationSettings{}, fmt.Errorf("settings missing fields: %s", strings.Join(missing, ", "))
	}

	s := NotificationSettings{
		RemindersEnabled: *doc.RemindersEnabled,
		DayBeforeEnabled: *doc.DayBeforeEnabled,
		DayOfEnabled:     *doc.DayOfEnabled,
		SoundEnabled:     *doc.SoundEnabled,
		VibrationEnabled: *doc.VibrationEnabled,
		DayBeforeTime:    *doc.DayBeforeTime,
		DayOfTime:        *doc.DayOfTime,
		MessageTemplate:  *doc.MessageTemplate,
	}
	if err := s.Validate(); err != nil {
		return NotificationSettings{}, err
	}
	return s, nil
}
