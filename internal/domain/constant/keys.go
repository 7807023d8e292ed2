package constant

// Durable store keys.
const (
	KeyAllBirthdays           = "allBirthdays"
	KeyTodayTomorrowBirthdays = "todayTomorrowBirthdays"
	KeyNotificationSettings   = "notificationSettings"
	KeyPendingNotifications   = "pendingNotifications"
	KeySentNotifications      = "sentNotifications"
)

// CacheKeys are the hint keys dropped by a cache clear. Settings and the
// reminder ledger are never part of it.
var CacheKeys = []string{KeyAllBirthdays, KeyTodayTomorrowBirthdays}
