package employee

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	directory    employee.DirectorySource
	fileService  file.FileService
}

// NewEmployeeService registers employees in the local repository and lists
// them from directory, which may be the upstream service or the same
// repository.
func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	directory employee.DirectorySource,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		directory:    directory,
		fileService:  fileService,
	}
}

func (s *EmployeeServiceImpl) photoURL(ctx context.Context, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	if strings.HasPrefix(*path, "http://") || strings.HasPrefix(*path, "https://") {
		return path
	}
	url, err := s.fileService.GetFileURL(ctx, *path)
	if err != nil {
		slog.Warn("failed to resolve photo url", "path", *path, "error", err)
		return nil
	}
	return &url
}

// RegisterEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RegisterEmployee(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	exists, err := s.employeeRepo.ExistsByCode(ctx, req.EmployeeCode)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	photoPath, err := s.fileService.UploadEmployeePhoto(ctx, req.EmployeeCode, req.Photo)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := req.ToEmployee()
	newEmployee.PhotoPath = &photoPath

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, photoPath); delErr != nil {
			slog.Warn("failed to remove orphaned photo", "path", photoPath, "error", delErr)
		}
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created, s.photoURL(ctx, created.PhotoPath)), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	all, err := s.directory.List(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	seen := make(map[string]bool)
	departments := make([]string, 0)
	employees := make([]employee.EmployeeResponse, 0, len(all))
	for _, e := range all {
		if e.Department != "" && !seen[e.Department] {
			seen[e.Department] = true
			departments = append(departments, e.Department)
		}
		if filter.Matches(e) {
			employees = append(employees, employee.NewEmployeeResponse(e, s.photoURL(ctx, e.PhotoPath)))
		}
	}
	sort.Strings(departments)

	return employee.ListEmployeeResponse{
		Employees:   employees,
		Departments: departments,
		Total:       len(employees),
	}, nil
}

// GetEmployee implements employee.EmployeeService. The code is matched
// against the directory so both upstream and local employees resolve.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	all, err := s.directory.List(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	for _, e := range all {
		if e.Code == code || e.ID == code {
			return employee.NewEmployeeResponse(e, s.photoURL(ctx, e.PhotoPath)), nil
		}
	}
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}
