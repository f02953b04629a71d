package attendance

import (
	"time"
)

const DateLayout = "2006-01-02"

type PunchType string

const (
	PunchIn  PunchType = "in"
	PunchOut PunchType = "out"
)

// PunchEntry is a single raw clock event as received from the terminal.
// Time is kept as the raw "HH:MM" string and parsed during calculation.
type PunchEntry struct {
	Time string    `json:"time"`
	Type PunchType `json:"type"`
}

type Status string

const (
	StatusPresent    Status = "present"
	StatusHalfDay    Status = "half_day"
	StatusAbsent     Status = "absent"
	StatusPaidLeave  Status = "paid_leave"
	StatusLate       Status = "late"
	StatusUnselected Status = "unselected"
)

var validStatuses = []Status{
	StatusPresent,
	StatusHalfDay,
	StatusAbsent,
	StatusPaidLeave,
	StatusLate,
	StatusUnselected,
}

func (s Status) IsValid() bool {
	for _, v := range validStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label is the human readable form used in exports.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusHalfDay:
		return "Half Day"
	case StatusAbsent:
		return "Absent"
	case StatusPaidLeave:
		return "Paid Leave"
	case StatusLate:
		return "Late"
	default:
		return "Unselected"
	}
}

// AttendanceRecord is one employee's punch log for one calendar day.
type AttendanceRecord struct {
	EmployeeID   string
	Date         time.Time
	Entries      []PunchEntry
	ManualStatus *Status
	Notes        string
}

// Key returns the identifier shared with the override store.
func (r AttendanceRecord) Key() string {
	return OverrideKey(r.EmployeeID, r.Date)
}

// FirstPunch returns the raw time of the first entry of the given type.
func (r AttendanceRecord) FirstPunch(t PunchType) string {
	for _, e := range r.Entries {
		if e.Type == t {
			return e.Time
		}
	}
	return ""
}

// Override is an admin annotation on a record. A nil Status means only
// the notes were touched.
type Override struct {
	EmployeeID string
	Date       time.Time
	Status     *Status
	Notes      *string
	UpdatedBy  string
	UpdatedAt  time.Time
}

func (o Override) Key() string {
	return OverrideKey(o.EmployeeID, o.Date)
}

// OverrideKey builds the "{employeeId}-{YYYY-MM-DD}" key.
func OverrideKey(employeeID string, date time.Time) string {
	return employeeID + "-" + date.Format(DateLayout)
}
