package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RegisterEmployeeRequest is the ingestion payload used by the enrolment
// kiosk. Field names follow the kiosk's wire format.
type RegisterEmployeeRequest struct {
	EmployeeCode          string           `json:"employee_code"`
	EmployeeName          string           `json:"employee_name"`
	EmployeeShiftInTime   string           `json:"employee_shift_in_time"`
	EmployeeShiftOutTime  string           `json:"employee_shift_out_time"`
	EmployeeDept          string           `json:"employee_dept"`
	EmployeeJobRole       string           `json:"employee_job_role"`
	EmployeeMonthlySalary *decimal.Decimal `json:"employee_monthly_salary"`
	EmployeeJoiningDate   string           `json:"employee_joining_date"`
	ImageData             string           `json:"image_data"`
	PhoneNumber           string           `json:"phone_number"`

	Photo       []byte    `json:"-"`
	JoiningDate time.Time `json:"-"`
}

// Validate checks the payload and normalizes shift times to HH:MM:SS,
// defaulting to the 09:00-18:00 shift. The decoded photo is kept on the
// request.
func (r *RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.EmployeeName = strings.TrimSpace(r.EmployeeName)
	r.EmployeeDept = strings.TrimSpace(r.EmployeeDept)
	r.EmployeeJobRole = strings.TrimSpace(r.EmployeeJobRole)

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code may only contain letters, numbers, underscores and hyphens",
		})
	}

	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name is required",
		})
	}
	if len(r.EmployeeName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.EmployeeDept) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_dept",
			Message: "employee_dept is required",
		})
	}

	if validator.IsEmpty(r.EmployeeShiftInTime) {
		r.EmployeeShiftInTime = DefaultShiftIn
	} else if normalized, ok := validator.NormalizeClock(r.EmployeeShiftInTime); ok {
		r.EmployeeShiftInTime = normalized
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_shift_in_time",
			Message: "employee_shift_in_time must be in HH:MM:SS format",
		})
	}

	if validator.IsEmpty(r.EmployeeShiftOutTime) {
		r.EmployeeShiftOutTime = DefaultShiftOut
	} else if normalized, ok := validator.NormalizeClock(r.EmployeeShiftOutTime); ok {
		r.EmployeeShiftOutTime = normalized
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_shift_out_time",
			Message: "employee_shift_out_time must be in HH:MM:SS format",
		})
	}

	if r.EmployeeMonthlySalary == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_monthly_salary",
			Message: "employee_monthly_salary is required",
		})
	} else if !r.EmployeeMonthlySalary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_monthly_salary",
			Message: "employee_monthly_salary must be greater than 0",
		})
	}

	if date, ok := validator.IsValidDate(r.EmployeeJoiningDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_joining_date",
			Message: "employee_joining_date must be in YYYY-MM-DD format",
		})
	} else {
		r.JoiningDate = date
	}

	if photo, ok := validator.DecodeBase64Image(r.ImageData); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "image_data",
			Message: "image_data must be a base64 encoded photo",
		})
	} else {
		r.Photo = photo
	}

	if !validator.IsEmpty(r.PhoneNumber) && !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number must be 10-15 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEmployee maps a validated request to a new active employee.
func (r *RegisterEmployeeRequest) ToEmployee() Employee {
	return Employee{
		Code:          r.EmployeeCode,
		Name:          r.EmployeeName,
		Department:    r.EmployeeDept,
		JobRole:       r.EmployeeJobRole,
		ShiftIn:       r.EmployeeShiftInTime,
		ShiftOut:      r.EmployeeShiftOutTime,
		MonthlySalary: *r.EmployeeMonthlySalary,
		Status:        EmploymentStatusActive,
		JoiningDate:   r.JoiningDate,
		PhoneNumber:   strings.TrimSpace(r.PhoneNumber),
	}
}

type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
}

// Matches applies the directory filters: case-insensitive search over name
// and code, department equality and status equality. "all" disables a
// filter.
func (f EmployeeFilter) Matches(e Employee) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Name), term) && !strings.Contains(strings.ToLower(e.Code), term) {
			return false
		}
	}
	if f.Department != "" && f.Department != "all" && e.Department != f.Department {
		return false
	}
	if f.Status != "" && f.Status != "all" && string(e.Status) != f.Status {
		return false
	}
	return true
}

type EmployeeResponse struct {
	ID            string           `json:"id"`
	Code          string           `json:"employee_code"`
	Name          string           `json:"employee_name"`
	Department    string           `json:"employee_dept"`
	JobRole       string           `json:"employee_job_role"`
	ShiftIn       string           `json:"employee_shift_in_time"`
	ShiftOut      string           `json:"employee_shift_out_time"`
	MonthlySalary decimal.Decimal  `json:"employee_monthly_salary"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	Status        EmploymentStatus `json:"status"`
	JoiningDate   string           `json:"employee_joining_date"`
	PhotoURL      *string          `json:"photo_url,omitempty"`
	PhoneNumber   string           `json:"phone_number,omitempty"`
}

func NewEmployeeResponse(e Employee, photoURL *string) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		Code:          e.Code,
		Name:          e.Name,
		Department:    e.Department,
		JobRole:       e.JobRole,
		ShiftIn:       e.ShiftIn,
		ShiftOut:      e.ShiftOut,
		MonthlySalary: e.MonthlySalary,
		HourlyRate:    e.HourlyRate,
		Status:        e.Status,
		JoiningDate:   e.JoiningDate.Format("2006-01-02"),
		PhotoURL:      photoURL,
		PhoneNumber:   e.PhoneNumber,
	}
}

type ListEmployeeResponse struct {
	Employees   []EmployeeResponse `json:"employees"`
	Departments []string           `json:"departments"`
	Total       int                `json:"total"`
}
