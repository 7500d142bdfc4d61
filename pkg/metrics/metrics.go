package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "glovebox", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "glovebox", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// DocumentsClassified counts classifier outcomes served to clients, by status band
	// ("invalid" for stored dates that failed re-validation).
	DocumentsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "glovebox", Name: "documents_classified_total", Help: "Tracked documents classified, by expiry status."},
		[]string{"status"},
	)
	RecordsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "glovebox", Name: "records_saved_total", Help: "Records created or updated, by kind."},
		[]string{"kind", "op"},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "glovebox", Name: "store_errors_total", Help: "Backend store failures surfaced to clients, by kind."},
		[]string{"kind"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DocumentsClassified)
	reg.MustRegister(RecordsSaved)
	reg.MustRegister(StoreErrors)
}
