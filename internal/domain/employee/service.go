package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// RegisterEmployee ingests a kiosk enrolment including the photo
	RegisterEmployee(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error)

	// ListEmployees lists the directory with search/department/status filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	GetEmployee(ctx context.Context, code string) (EmployeeResponse, error)
}
