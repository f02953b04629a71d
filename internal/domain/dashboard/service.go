package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the counters for day, fetching sources concurrently
	GetDashboard(ctx context.Context, day time.Time) (DashboardResponse, error)

	// ExportToday renders the login list as today_attendance_{date}
	ExportToday(ctx context.Context, day time.Time) (report.Export, error)
}
