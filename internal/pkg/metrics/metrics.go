package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts calls to the upstream read service by outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "upstream_requests_total",
		Help:      "Upstream read requests by resource and outcome.",
	}, []string{"resource", "outcome"})

	// CacheLookups counts monthly record cache hits and misses.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "cache_lookups_total",
		Help:      "Monthly record cache lookups by result.",
	}, []string{"result"})

	// RecordParseErrors counts records whose punch log could not be parsed.
	RecordParseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "record_parse_errors_total",
		Help:      "Attendance records skipped for hours because of malformed punches.",
	})

	// Exports counts generated report files.
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "exports_total",
		Help:      "Report exports by report type and format.",
	}, []string{"report", "format"})

	// SalaryDrafts counts salary records created by generation runs.
	SalaryDrafts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "salary_drafts_created_total",
		Help:      "Pending salary records created from monthly summaries.",
	})
)
