package http

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/metrics"
)

// exportFormat reads ?format=, defaulting to csv.
func exportFormat(r *http.Request) (string, error) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "":
		return report.FormatCSV, nil
	case report.FormatCSV, report.FormatXLSX:
		return format, nil
	}
	return "", report.ErrUnsupportedFormat
}

// wantsExport reports whether a report endpoint was asked for a file
// rather than JSON.
func wantsExport(r *http.Request) bool {
	return r.URL.Query().Get("format") != ""
}

// writeExport streams export and counts it under the given report label.
func writeExport(w http.ResponseWriter, export report.Export, format, label string) {
	metrics.Exports.WithLabelValues(label, format).Inc()
	response.File(w, export, format)
}
