package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	remindersScheduled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bdaywisher_reminders_scheduled_total",
			Help: "Reminders registered with the delivery facility by kind",
		},
		[]string{"kind"},
	)

	reminderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bdaywisher_reminder_failures_total",
			Help: "Schedule requests rejected by the delivery facility by kind",
		},
		[]string{"kind"},
	)

	remindersDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bdaywisher_reminders_delivered_total",
			Help: "Pending reminders moved to sent",
		},
	)

	remindersCanceled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bdaywisher_reminders_canceled_total",
			Help: "Pending reminders canceled before firing",
		},
	)

	rosterFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bdaywisher_roster_fetch_failures_total",
			Help: "Roster source reads or writes that failed",
		},
	)

	alertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bdaywisher_alerts_sent_total",
			Help: "Alerts pushed to coordinator channels by channel and status",
		},
		[]string{"channel", "status"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ReminderScheduled records a reminder registered with the delivery facility.
func ReminderScheduled(kind string) {
	remindersScheduled.WithLabelValues(kind).Inc()
}

// ReminderFailed records a rejected schedule request.
func ReminderFailed(kind string) {
	reminderFailures.WithLabelValues(kind).Inc()
}

// ReminderDelivered records a pending reminder moved to sent.
func ReminderDelivered() {
	remindersDelivered.Inc()
}

// ReminderCanceled records a canceled pending reminder.
func ReminderCanceled() {
	remindersCanceled.Inc()
}

// RosterFetchFailed records a failed roster source call.
func RosterFetchFailed() {
	rosterFetchFailures.Inc()
}

// AlertSent records an alert delivery attempt on a channel.
func AlertSent(channel string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	alertsSent.WithLabelValues(channel, status).Inc()
}
