// Package calendar exports pending reminders as an iCalendar feed.
package calendar

import (
	"bdaywisher/internal/domain/entity"
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

const (
	prodID  = "-//bdaywisher//Reminders//EN"
	domain  = "bdaywisher"
	calName = "Birthday Reminders"
)

// stubCalendar is served when nothing is pending; an empty VCALENDAR is still a valid feed.
const stubCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + prodID + "\r\nEND:VCALENDAR\r\n"

// Encode renders reminders as VEVENTs, each with a DISPLAY alarm at its start time.
func Encode(reminders []entity.Reminder, now time.Time) ([]byte, error) {
	if len(reminders) == 0 {
		return []byte(stubCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText("X-WR-CALNAME", calName)

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(now.UTC())

	for _, r := range reminders {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", r.ID, domain))
		event.Props.Set(stamp)

		start := ical.NewProp(ical.PropDateTimeStart)
		start.SetDateTime(r.ScheduledTime.UTC())
		event.Props.Set(start)

		summary := r.Message
		if r.Kind != "" {
			summary = fmt.Sprintf("[%s] %s", r.Kind, r.PersonName)
		}
		event.Props.SetText(ical.PropSummary, summary)
		event.Props.SetText(ical.PropDescription, r.Message)

		alarm := ical.NewComponent(ical.CompAlarm)
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, r.Message)
		// Set trigger manually to avoid "VALUE=TEXT" param
		trigger := ical.NewProp(ical.PropTrigger)
		trigger.Value = "PT0S"
		alarm.Props.Set(trigger)
		event.Children = append(event.Children, alarm)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode iCalendar data: %w", err)
	}
	return buf.Bytes(), nil
}
