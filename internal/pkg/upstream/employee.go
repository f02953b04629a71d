package upstream

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

const ResourceEmployees = "employees"

type employeePayload struct {
	ID            string           `json:"employee_id"`
	Code          string           `json:"employee_code"`
	Name          string           `json:"employee_name"`
	Department    string           `json:"employee_dept"`
	JobRole       string           `json:"employee_job_role"`
	ShiftIn       string           `json:"employee_shift_in_time"`
	ShiftOut      string           `json:"employee_shift_out_time"`
	MonthlySalary decimal.Decimal  `json:"employee_monthly_salary"`
	HourlyRate    *decimal.Decimal `json:"employee_hourly_rate"`
	Status        string           `json:"status"`
	JoiningDate   string           `json:"employee_joining_date"`
	PhotoURL      *string          `json:"photo_url"`
	PhoneNumber   string           `json:"phone_number"`
}

func (p employeePayload) toEmployee() employee.Employee {
	e := employee.Employee{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Department:    p.Department,
		JobRole:       p.JobRole,
		ShiftIn:       p.ShiftIn,
		ShiftOut:      p.ShiftOut,
		MonthlySalary: p.MonthlySalary,
		HourlyRate:    p.HourlyRate,
		Status:        employee.EmploymentStatus(p.Status),
		PhotoPath:     p.PhotoURL,
		PhoneNumber:   p.PhoneNumber,
	}
	if e.ID == "" {
		e.ID = e.Code
	}
	if e.ShiftIn == "" {
		e.ShiftIn = employee.DefaultShiftIn
	}
	if e.ShiftOut == "" {
		e.ShiftOut = employee.DefaultShiftOut
	}
	if p.JoiningDate != "" {
		if t, err := time.Parse("2006-01-02", p.JoiningDate); err == nil {
			e.JoiningDate = t
		}
	}
	return e
}

// Directory serves employee.DirectorySource from GET /employees.
type Directory struct {
	client *Client
}

func NewDirectory(client *Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) List(ctx context.Context) ([]employee.Employee, error) {
	var payload []employeePayload
	if err := d.client.getJSON(ctx, ResourceEmployees, "/employees", &payload); err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, 0, len(payload))
	for _, p := range payload {
		if p.ID == "" && p.Code == "" {
			slog.Warn("upstream employee without identifier skipped", "name", p.Name)
			continue
		}
		employees = append(employees, p.toEmployee())
	}
	return employees, nil
}
