package constant

// ReminderKind identifies why a reminder was scheduled.
type ReminderKind string

const (
	// KindDayBefore fires the evening before a birthday.
	KindDayBefore ReminderKind = "day-before"
	// KindDayOf fires on the birthday itself.
	KindDayOf ReminderKind = "day-of"
	// KindCustom is a one-off message sent a few seconds after it is requested.
	KindCustom ReminderKind = "custom"
)

func (k ReminderKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds.
func (k ReminderKind) Valid() bool {
	switch k {
	case KindDayBefore, KindDayOf, KindCustom:
		return true
	}
	return false
}
