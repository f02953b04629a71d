package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
)

type DashboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	ExportToday(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	now              func() time.Time
}

// day reads ?date=YYYY-MM-DD, defaulting to today in UTC.
func (h *DashboardHandlerImpl) day(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := h.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, ok := validator.IsValidDate(raw)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return day, nil
}

// Get implements DashboardHandler.
func (h *DashboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	day, err := h.day(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.dashboardService.GetDashboard(r.Context(), day)
	if err != nil {
		slog.Error("GetDashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ExportToday implements DashboardHandler.
func (h *DashboardHandlerImpl) ExportToday(w http.ResponseWriter, r *http.Request) {
	day, err := h.day(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	format, err := exportFormat(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	export, err := h.dashboardService.ExportToday(r.Context(), day)
	if err != nil {
		slog.Error("ExportToday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeExport(w, export, format, "today_attendance")
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}
