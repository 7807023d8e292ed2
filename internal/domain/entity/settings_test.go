package entity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDay_JSON(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"07:45"`), &tod))
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 45}, tod)

	out, err := json.Marshal(TimeOfDay{Hour: 18})
	require.NoError(t, err)
	assert.JSONEq(t, `"18:00"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &tod))
	assert.Error(t, json.Unmarshal([]byte(`"6pm"`), &tod))
	assert.Error(t, json.Unmarshal([]byte(`1800`), &tod))
}

func TestNotificationSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NotificationSettings)
		wantErr bool
	}{
		{"defaults", func(*NotificationSettings) {}, false},
		{"hour out of range", func(s *NotificationSettings) { s.DayOfTime.Hour = 24 }, true},
		{"minute out of range", func(s *NotificationSettings) { s.DayBeforeTime.Minute = 60 }, true},
		{"blank template", func(s *NotificationSettings) { s.MessageTemplate = "  " }, true},
		{"template without placeholder", func(s *NotificationSettings) { s.MessageTemplate = "Cheers!" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultNotificationSettings()
			tt.mutate(&s)
			if tt.wantErr {
				assert.Error(t, s.Validate())
			} else {
				assert.NoError(t, s.Validate())
			}
		})
	}
}

func TestNotificationSettings_RenderMessage(t *testing.T) {
	s := DefaultNotificationSettings()
	s.MessageTemplate = "{name}, happy birthday {name}! {NAME}"
	assert.Equal(t, "Asha, happy birthday Asha! {NAME}", s.RenderMessage("Asha"))

	s.MessageTemplate = "No placeholder"
	assert.Equal(t, "No placeholder", s.RenderMessage("Asha"))
}

func TestParseNotificationSettings(t *testing.T) {
	valid := `{"reminders_enabled":false,"day_before_enabled":true,"day_of_enabled":false,"sound_enabled":true,"vibration_enabled":false,"day_before_time":"20:15","day_of_time":"07:00","message_template":"Hi {name}"}`

	s, err := ParseNotificationSettings([]byte(valid))
	require.NoError(t, err)
	assert.Equal(t, NotificationSettings{
		RemindersEnabled: false,
		DayBeforeEnabled: true,
		DayOfEnabled:     false,
		SoundEnabled:     true,
		VibrationEnabled: false,
		DayBeforeTime:    TimeOfDay{Hour: 20, Minute: 15},
		DayOfTime:        TimeOfDay{Hour: 7},
		MessageTemplate:  "Hi {name}",
	}, s)

	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"not json", `not json`},
		{"missing field", `{"reminders_enabled":true}`},
		{"unknown field", strings.Replace(valid, `"sound_enabled"`, `"volume":3,"sound_enabled"`, 1)},
		{"bad time", strings.Replace(valid, `"20:15"`, `"8pm"`, 1)},
		{"wrong type", strings.Replace(valid, `"reminders_enabled":false`, `"reminders_enabled":"no"`, 1)},
		{"blank template", strings.Replace(valid, `"Hi {name}"`, `""`, 1)},
		{"trailing data", valid + `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNotificationSettings([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseNotificationSettings_RoundTrip(t *testing.T) {
	in := DefaultNotificationSettings()
	in.SoundEnabled = false
	in.DayOfTime = TimeOfDay{Hour: 9, Minute: 5}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	out, err := ParseNotificationSettings(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
