package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, code, name, department, job_role, to_char(shift_in, 'HH24:MI:SS'), to_char(shift_out, 'HH24:MI:SS'),
	monthly_salary, hourly_rate, status, joining_date, photo_path, phone_number, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.Name, &emp.Department, &emp.JobRole, &emp.ShiftIn, &emp.ShiftOut,
		&emp.MonthlySalary, &emp.HourlyRate, &emp.Status, &emp.JoiningDate, &emp.PhotoPath,
		&emp.PhoneNumber, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// List implements employee.DirectorySource.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name ASC, code ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE code = $1`
	return scanEmployee(q.QueryRow(ctx, query, code))
}

// ExistsByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			code, name, department, job_role, shift_in, shift_out, monthly_salary, hourly_rate,
			status, joining_date, photo_path, phone_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.Code,
		newEmployee.Name,
		newEmployee.Department,
		newEmployee.JobRole,
		newEmployee.ShiftIn,
		newEmployee.ShiftOut,
		newEmployee.MonthlySalary,
		newEmployee.HourlyRate,
		newEmployee.Status,
		newEmployee.JoiningDate,
		newEmployee.PhotoPath,
		newEmployee.PhoneNumber,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return created, nil
}
