package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// maxRegisterBodyBytes caps the registration payload, photo included (10MB)
const maxRegisterBodyBytes = 10 << 20

type EmployeeHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

// Register implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req employee.RegisterEmployeeRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterEmployee decode error", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RequestEntityTooLarge(w, "Request body must not exceed 10MB")
			return
		}
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("RegisterEmployee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := h.employeeService.RegisterEmployee(r.Context(), req)
	if err != nil {
		slog.Error("RegisterEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee registered successfully", "employee_code", resp.Code)
	response.Created(w, "Employee registered successfully", resp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := employee.EmployeeFilter{
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
	}

	resp, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	resp, err := h.employeeService.GetEmployee(r.Context(), code)
	if err != nil {
		slog.Error("GetEmployee service error", "error", err, "code", code)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}
