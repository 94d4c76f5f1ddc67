package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qsvc_dispatches_total",
			Help: "Quote dispatch attempts by overall outcome",
		},
		[]string{"outcome"}, // success|partial_failure|total_failure
	)

	DeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qsvc_deliveries_total",
			Help: "Per-channel delivery attempts by result",
		},
		[]string{"channel", "result"}, // email|whatsapp , sent|failed
	)

	RemindersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qsvc_reminders_total",
			Help: "Reminder sends by tier and result",
		},
		[]string{"tier", "result"},
	)

	LabelFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qsvc_label_fallbacks_total",
			Help: "Display-name lookups that fell back to the default label (data-quality signal)",
		},
		[]string{"table"},
	)

	RenderFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qsvc_render_failures_total",
			Help: "Document render attempts that fell back to plain text",
		},
	)

	ReminderClaimLostTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qsvc_reminder_claim_lost_total",
			Help: "Reminder timestamp claims that found the column already set (duplicate-send risk)",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		DispatchesTotal,
		DeliveriesTotal,
		RemindersTotal,
		LabelFallbacksTotal,
		RenderFailuresTotal,
		ReminderClaimLostTotal,
	)
}
