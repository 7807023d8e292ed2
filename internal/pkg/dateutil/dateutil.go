// Package dateutil compares birthdays by day and month, ignoring the year.
package dateutil

import "time"

// MatchesDay reports whether birthDate falls on the same day and month as reference.
func MatchesDay(birthDate, reference time.Time) bool {
	return birthDate.Day() == reference.Day() && birthDate.Month() == reference.Month()
}

// TomorrowOf returns the calendar date one day after date.
func TomorrowOf(date time.Time) time.Time {
	return date.AddDate(0, 0, 1)
}

// NextOccurrenceOnOrAfter returns the next birthday on or after reference, in
// reference's location. Future birthdays are returned at midnight; a birthday
// falling on reference's own calendar day returns reference itself. A Feb 29
// birth date lands on Feb 28 in non-leap years.
func NextOccurrenceOnOrAfter(birthDate, reference time.Time) time.Time {
	occurrence := project(birthDate, reference.Year(), reference.Location())
	if occurrence.Before(reference) {
		if SameDay(occurrence, reference) {
			return reference
		}
		occurrence = project(birthDate, reference.Year()+1, reference.Location())
	}
	return occurrence
}

func project(birthDate time.Time, year int, loc *time.Location) time.Time {
	month, day := birthDate.Month(), birthDate.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// At returns date's calendar day at the given hour and minute.
func At(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
