package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	salaryService payroll.SalaryService
}

func salaryFilter(r *http.Request) payroll.SalaryFilter {
	q := r.URL.Query()
	return payroll.SalaryFilter{
		Month:      q.Get("month"),
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
	}
}

// decodeOptional decodes a JSON body when one is present.
func decodeOptional(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// List implements SalaryHandler.
func (h *SalaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := salaryFilter(r)
	if err := filter.Validate(); err != nil {
		slog.Error("ListSalaries validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListSalaries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Generate implements SalaryHandler.
func (h *SalaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateSalaryRequest

	if err := decodeOptional(r, &req); err != nil {
		slog.Error("GenerateSalaries decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if month := r.URL.Query().Get("month"); month != "" {
		req.Month = month
	}

	if err := req.Validate(); err != nil {
		slog.Error("GenerateSalaries validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := h.salaryService.Generate(r.Context(), req)
	if err != nil {
		slog.Error("GenerateSalaries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Salary drafts generated", "month", resp.Month, "created", resp.Created)
	response.Created(w, "Salary records generated", resp)
}

func (h *SalaryHandlerImpl) review(w http.ResponseWriter, r *http.Request, op string, fn func(id string, req payroll.ReviewSalaryRequest) (payroll.SalaryResponse, error)) {
	id := chi.URLParam(r, "id")

	var req payroll.ReviewSalaryRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error(op+" validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := fn(id, req)
	if err != nil {
		slog.Error(op+" service error", "error", err, "id", id)
		response.HandleError(w, err)
		return
	}

	slog.Info("Salary reviewed", "id", id, "status", resp.Status)
	response.SuccessWithMessage(w, "Salary "+string(resp.Status), resp)
}

// Approve implements SalaryHandler.
func (h *SalaryHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "ApproveSalary", func(id string, req payroll.ReviewSalaryRequest) (payroll.SalaryResponse, error) {
		return h.salaryService.Approve(r.Context(), id, req)
	})
}

// Reject implements SalaryHandler.
func (h *SalaryHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "RejectSalary", func(id string, req payroll.ReviewSalaryRequest) (payroll.SalaryResponse, error) {
		return h.salaryService.Reject(r.Context(), id, req)
	})
}

// Update implements SalaryHandler.
func (h *SalaryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payroll.UpdateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("UpdateSalary validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := h.salaryService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("UpdateSalary service error", "error", err, "id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary updated successfully", resp)
}

// Export implements SalaryHandler.
func (h *SalaryHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := salaryFilter(r)
	if err := filter.Validate(); err != nil {
		slog.Error("ExportSalaries validate error", "error", err)
		response.HandleError(w, err)
		return
	}
	format, err := exportFormat(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	export, err := h.salaryService.Export(r.Context(), filter)
	if err != nil {
		slog.Error("ExportSalaries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeExport(w, export, format, "salary_report")
}

func NewSalaryHandler(salaryService payroll.SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{
		salaryService: salaryService,
	}
}
