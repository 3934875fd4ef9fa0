// Package observability exposes the Prometheus collectors used across ciclo.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/ciclo/internal/models"
)

var (
	overviewsBuilt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ciclo",
		Subsystem: "engine",
		Name:      "overviews_built_total",
		Help:      "Cycle overviews computed, partitioned by whether the user had recorded cycles.",
	}, []string{"has_data"})
	repositoryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ciclo",
		Subsystem: "repository",
		Name:      "errors_total",
		Help:      "Repository failures surfaced to services, partitioned by error kind.",
	}, []string{"kind"})
	remindersSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ciclo",
		Subsystem: "reminders",
		Name:      "sent_total",
		Help:      "Reminder messages delivered, partitioned by reminder type.",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(overviewsBuilt, repositoryErrors, remindersSent)
}

func RecordOverview(hasData bool) {
	overviewsBuilt.WithLabelValues(strconv.FormatBool(hasData)).Inc()
}

func RecordRepositoryError(kind models.ErrorKind) {
	repositoryErrors.WithLabelValues(kind.String()).Inc()
}

func RecordReminderSent(reminderType string) {
	remindersSent.WithLabelValues(reminderType).Inc()
}
