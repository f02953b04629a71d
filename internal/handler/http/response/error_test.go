package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/upstream"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", validator.ValidationErrors{{Field: "email", Message: "email is required"}}, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusBadRequest, "BAD_REQUEST", "Invalid email or password"},
		{"duplicate email", fmt.Errorf("register: %w", auth.ErrEmailAlreadyExists), http.StatusBadRequest, "BAD_REQUEST", "User with this email already exists"},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, "UNAUTHORIZED", "Access token required"},
		{"invalid token", auth.ErrInvalidToken, http.StatusForbidden, "FORBIDDEN", "Invalid or expired token"},
		{"employee missing", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND", "Employee not found"},
		{"employee duplicate", employee.ErrEmployeeCodeExists, http.StatusConflict, "CONFLICT", "Employee code already exists"},
		{"salary reviewed", payroll.ErrSalaryAlreadyReviewed, http.StatusConflict, "CONFLICT", "Salary record has already been reviewed"},
		{"upstream", &upstream.FetchError{Resource: "employees", StatusCode: 500, Err: errors.New("boom")}, http.StatusBadGateway, "BAD_GATEWAY", "Upstream employees service is unavailable"},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "month must be in YYYY-MM format", body.Error.Details["month"])
}

func TestFile_CSVAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	export := report.Export{
		ReportType: "daily_report",
		Period:     "2024-03-04",
		Table:      report.Table{Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}},
	}

	File(rec, export, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentTypeCSV, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="daily_report_2024-03-04.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), `"A","B"`))
}

func TestFile_XLSXAndUnsupported(t *testing.T) {
	export := report.Export{ReportType: "monthly_report", Period: "2024-03", Table: report.Table{Name: "Monthly", Header: []string{"A"}}}

	rec := httptest.NewRecorder()
	File(rec, export, "xlsx")
	assert.Equal(t, report.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "monthly_report_2024-03.xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec = httptest.NewRecorder()
	File(rec, export, "pdf")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
