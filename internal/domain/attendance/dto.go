package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/validator"
)

// ========================================
// OVERRIDE DTOs
// ========================================

type OverrideItem struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type SaveOverridesRequest struct {
	Overrides []OverrideItem `json:"overrides"`
}

func (r *SaveOverridesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Overrides) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overrides",
			Message: "at least one override is required",
		})
	}

	for i, item := range r.Overrides {
		prefix := fmt.Sprintf("overrides[%d]", i)
		if validator.IsEmpty(item.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".employee_id",
				Message: "employee_id is required",
			})
		}
		if _, ok := validator.IsValidDate(item.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if item.Status == nil && item.Notes == nil {
			errs = append(errs, validator.ValidationError{
				Field:   prefix,
				Message: "status or notes is required",
			})
		}
		// unselected means "no override"; clearing goes through delete
		if item.Status != nil {
			status := Status(*item.Status)
			if !status.IsValid() || status == StatusUnselected {
				errs = append(errs, validator.ValidationError{
					Field:   prefix + ".status",
					Message: "status must be one of present, half_day, absent, paid_leave, late",
				})
			}
		}
		if item.Notes != nil && len(*item.Notes) > 1000 {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".notes",
				Message: "notes must not exceed 1000 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToOverrides converts a validated request into domain overrides.
func (r *SaveOverridesRequest) ToOverrides(updatedBy string, now time.Time) []Override {
	overrides := make([]Override, 0, len(r.Overrides))
	for _, item := range r.Overrides {
		date, _ := time.Parse(DateLayout, item.Date)
		ov := Override{
			EmployeeID: item.EmployeeID,
			Date:       date,
			Notes:      item.Notes,
			UpdatedBy:  updatedBy,
			UpdatedAt:  now,
		}
		if item.Status != nil {
			status := Status(*item.Status)
			ov.Status = &status
		}
		overrides = append(overrides, ov)
	}
	return overrides
}

type OverrideResponse struct {
	Key        string  `json:"key"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     *Status `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	UpdatedBy  string  `json:"updated_by"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewOverrideResponse(o Override) OverrideResponse {
	return OverrideResponse{
		Key:        o.Key(),
		EmployeeID: o.EmployeeID,
		Date:       o.Date.Format(DateLayout),
		Status:     o.Status,
		Notes:      o.Notes,
		UpdatedBy:  o.UpdatedBy,
		UpdatedAt:  o.UpdatedAt.Format(time.RFC3339),
	}
}

// ========================================
// PUNCH INGESTION DTOs
// ========================================

type RecordPunchesRequest struct {
	EmployeeID string       `json:"employee_id"`
	Date       string       `json:"date"`
	Entries    []PunchEntry `json:"entries"`
	Notes      string       `json:"notes,omitempty"`
}

func (r *RecordPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	for i, e := range r.Entries {
		if e.Type != PunchIn && e.Type != PunchOut {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("entries[%d].type", i),
				Message: "type must be either in or out",
			})
		}
		if _, err := ParseLocalTime(e.Time); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("entries[%d].time", i),
				Message: "time must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *RecordPunchesRequest) ToRecord() AttendanceRecord {
	date, _ := time.Parse(DateLayout, r.Date)
	return AttendanceRecord{
		EmployeeID: r.EmployeeID,
		Date:       date,
		Entries:    r.Entries,
		Notes:      r.Notes,
	}
}
