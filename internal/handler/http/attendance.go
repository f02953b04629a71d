package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Review(w http.ResponseWriter, r *http.Request)
	ExportReview(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	SaveOverrides(w http.ResponseWriter, r *http.Request)
	DeleteOverride(w http.ResponseWriter, r *http.Request)
	RecordPunches(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
}

func reviewRequest(r *http.Request) report.ReviewRequest {
	q := r.URL.Query()
	return report.ReviewRequest{
		Month:      q.Get("month"),
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Sort:       q.Get("sort"),
		Mode:       q.Get("mode"),
	}
}

// Review implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	req := reviewRequest(r)
	if err := req.Validate(); err != nil {
		slog.Error("Review validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := h.reportService.Review(r.Context(), req)
	if err != nil {
		slog.Error("Review service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ExportReview implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ExportReview(w http.ResponseWriter, r *http.Request) {
	req := reviewRequest(r)
	if err := req.Validate(); err != nil {
		slog.Error("ExportReview validate error", "error", err)
		response.HandleError(w, err)
		return
	}
	format, err := exportFormat(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	export, err := h.reportService.ExportReview(r.Context(), req)
	if err != nil {
		slog.Error("ExportReview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeExport(w, export, format, "attendance_review")
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.HistoryRequest{
		From:       q.Get("from"),
		To:         q.Get("to"),
		EmployeeID: q.Get("employee_id"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
		Sort:       q.Get("sort"),
	}
	if err := req.Validate(); err != nil {
		slog.Error("History validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := h.reportService.History(r.Context(), req)
	if err != nil {
		slog.Error("History service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SaveOverrides implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SaveOverrides(w http.ResponseWriter, r *http.Request) {
	var req attendance.SaveOverridesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveOverrides decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("SaveOverrides validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	saved, err := h.attendanceService.SaveOverrides(r.Context(), req)
	if err != nil {
		slog.Error("SaveOverrides service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance overrides saved", "count", len(saved))
	response.SuccessWithMessage(w, "Attendance updated successfully", saved)
}

// DeleteOverride implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	if err := h.attendanceService.DeleteOverride(r.Context(), employeeID, date); err != nil {
		slog.Error("DeleteOverride service error", "error", err, "employee_id", employeeID, "date", date)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance override cleared", nil)
}

// RecordPunches implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RecordPunches(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordPunchesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordPunches decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("RecordPunches validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.RecordPunches(r.Context(), req); err != nil {
		slog.Error("RecordPunches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record stored", nil)
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, reportService report.ReportService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		reportService:     reportService,
	}
}
