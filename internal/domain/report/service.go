package report

import "context"

// ReportService builds every attendance view from the shared row pipeline.
// Upstream failures degrade to empty collections and are listed in the
// response warnings.
type ReportService interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	History(ctx context.Context, req HistoryRequest) (HistoryResponse, error)
	Monthly(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
	Daily(ctx context.Context, req DailyReportRequest) (DailyReportResponse, error)
	EmployeeReport(ctx context.Context, req EmployeeReportRequest) (EmployeeReportResponse, error)

	ExportReview(ctx context.Context, req ReviewRequest) (Export, error)
	ExportMonthly(ctx context.Context, req MonthlyReportRequest) (Export, error)
	ExportDaily(ctx context.Context, req DailyReportRequest) (Export, error)
	ExportEmployee(ctx context.Context, req EmployeeReportRequest) (Export, error)

	// MonthlySummaries is shared with the salary review
	MonthlySummaries(ctx context.Context, period Period) ([]MonthlySummary, []string, error)
}
