package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// ReportHandler serves JSON by default and a file when ?format= is given.
type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
	Employee(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

// Monthly implements ReportHandler.
func (h *ReportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.MonthlyReportRequest{
		Month:      q.Get("month"),
		Search:     q.Get("search"),
		Department: q.Get("department"),
	}
	if err := req.Validate(); err != nil {
		slog.Error("MonthlyReport validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	if wantsExport(r) {
		format, err := exportFormat(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		export, err := h.reportService.ExportMonthly(r.Context(), req)
		if err != nil {
			slog.Error("MonthlyReport export error", "error", err)
			response.HandleError(w, err)
			return
		}
		writeExport(w, export, format, "monthly_report")
		return
	}

	resp, err := h.reportService.Monthly(r.Context(), req)
	if err != nil {
		slog.Error("MonthlyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Daily implements ReportHandler.
func (h *ReportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.DailyReportRequest{
		Date:       q.Get("date"),
		Department: q.Get("department"),
	}
	if err := req.Validate(); err != nil {
		slog.Error("DailyReport validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	if wantsExport(r) {
		format, err := exportFormat(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		export, err := h.reportService.ExportDaily(r.Context(), req)
		if err != nil {
			slog.Error("DailyReport export error", "error", err)
			response.HandleError(w, err)
			return
		}
		writeExport(w, export, format, "daily_report")
		return
	}

	resp, err := h.reportService.Daily(r.Context(), req)
	if err != nil {
		slog.Error("DailyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Employee implements ReportHandler.
func (h *ReportHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	req := report.EmployeeReportRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Month:      r.URL.Query().Get("month"),
	}
	if err := req.Validate(); err != nil {
		slog.Error("EmployeeReport validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	if wantsExport(r) {
		format, err := exportFormat(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		export, err := h.reportService.ExportEmployee(r.Context(), req)
		if err != nil {
			slog.Error("EmployeeReport export error", "error", err)
			response.HandleError(w, err)
			return
		}
		writeExport(w, export, format, "employee_report")
		return
	}

	resp, err := h.reportService.EmployeeReport(r.Context(), req)
	if err != nil {
		slog.Error("EmployeeReport service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
	}
}
