package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultShiftIn  = "09:00:00"
	DefaultShiftOut = "18:00:00"
)

type Employee struct {
	ID            string
	Code          string
	Name          string
	Department    string
	JobRole       string
	ShiftIn       string
	ShiftOut      string
	MonthlySalary decimal.Decimal
	HourlyRate    *decimal.Decimal
	Status        EmploymentStatus
	JoiningDate   time.Time
	PhotoPath     *string
	PhoneNumber   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

// ShiftHours is the scheduled length of a shift in hours. Shifts that
// cross midnight wrap to the next day.
func (e Employee) ShiftHours() float64 {
	in, errIn := time.Parse("15:04:05", e.ShiftIn)
	out, errOut := time.Parse("15:04:05", e.ShiftOut)
	if errIn != nil || errOut != nil {
		return 0
	}
	d := out.Sub(in)
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d.Hours()
}

// Directory indexes employees by ID and by code.
type Directory map[string]Employee

func NewDirectory(list []Employee) Directory {
	d := make(Directory, len(list)*2)
	for _, e := range list {
		if e.ID != "" {
			d[e.ID] = e
		}
		if e.Code != "" {
			d[e.Code] = e
		}
	}
	return d
}

// Lookup resolves an employee by ID or code. Unknown employees come back
// with only the identifier filled in.
func (d Directory) Lookup(id string) Employee {
	if e, ok := d[id]; ok {
		return e
	}
	return Employee{ID: id, Code: id, Name: id}
}

// Active keeps employees whose status is active or unset, in input order.
func Active(list []Employee) []Employee {
	active := make([]Employee, 0, len(list))
	for _, e := range list {
		if e.Status == "" || e.Status == EmploymentStatusActive {
			active = append(active, e)
		}
	}
	return active
}
