package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/upstream"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var fetchErr *upstream.FetchError
	if errors.As(err, &fetchErr) {
		slog.Error("upstream fetch error", "resource", fetchErr.Resource, "status", fetchErr.StatusCode, "error", fetchErr.Err)
		BadGateway(w, "Upstream "+fetchErr.Resource+" service is unavailable")
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		BadRequest(w, "Invalid email or password", nil)
	case errors.Is(err, auth.ErrEmailAlreadyExists), errors.Is(err, user.ErrUserEmailExists):
		BadRequest(w, "User with this email already exists", nil)
	case errors.Is(err, auth.ErrMissingToken):
		Unauthorized(w, "Access token required")
	case errors.Is(err, auth.ErrInvalidToken):
		Forbidden(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrInvalidPhoto):
		BadRequest(w, err.Error(), map[string]string{"image_data": employee.ErrInvalidPhoto.Error()})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrOverrideNotFound):
		NotFound(w, "Attendance override not found")

	// Salary domain errors
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrSalaryRecordExists):
		Conflict(w, "Salary record already exists for this period")
	case errors.Is(err, payroll.ErrSalaryAlreadyReviewed):
		Conflict(w, "Salary record has already been reviewed")
	case errors.Is(err, payroll.ErrSalaryAlreadyApproved):
		Conflict(w, "Approved salary records cannot be edited")

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", map[string]string{"format": "format must be csv or xlsx"})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
