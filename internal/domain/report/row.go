package report

import (
	"strconv"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
)

// Row is one attendance record after the full pipeline: override merged,
// hours calculated and status classified. Err holds the per-record
// ParseError when the punch log could not be read; such rows count as
// zero hours.
type Row struct {
	Record   attendance.AttendanceRecord
	Employee employee.Employee
	Hours    attendance.WorkingHours
	Status   attendance.Status
	Err      error
}

// Overridden reports whether an admin status is attached to the record.
func (r Row) Overridden() bool {
	return r.Record.ManualStatus != nil && *r.Record.ManualStatus != ""
}

func (r Row) HoursValue() float64 {
	if r.Err != nil {
		return 0
	}
	return r.Hours.Hours
}

func (r Row) OvertimeHours(expectedDailyHours float64) float64 {
	extra := r.HoursValue() - expectedDailyHours
	if extra < 0 {
		return 0
	}
	return attendance.RoundHalfUp(extra, 1)
}

func (r Row) Warnings() []string {
	if r.Err != nil {
		return []string{r.Err.Error()}
	}
	return r.Hours.Warnings()
}

// BuildRows runs every record through the override merge, the hours
// calculator and the classifier. Input order is preserved.
func BuildRows(records []attendance.AttendanceRecord, dir employee.Directory, overrides attendance.Overrides, mode attendance.PairingMode) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		merged := overrides.Merge(rec)
		hours, err := attendance.CalculateWorkingHoursWithMode(merged.Entries, mode)
		rows = append(rows, Row{
			Record:   merged,
			Employee: dir.Lookup(rec.EmployeeID),
			Hours:    hours,
			Status:   attendance.Classify(merged),
			Err:      err,
		})
	}
	return rows
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
