package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
)

const ResourceAttendance = "attendance"

type recordPayload struct {
	EmployeeID string                  `json:"employee_id"`
	Date       string                  `json:"date"`
	Entries    []attendance.PunchEntry `json:"entries"`
	Status     string                  `json:"status"`
	Notes      string                  `json:"notes"`
}

// Records serves attendance.RecordSource from GET /attendance/monthly.
type Records struct {
	client *Client
}

func NewRecords(client *Client) *Records {
	return &Records{client: client}
}

func (r *Records) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.AttendanceRecord, error) {
	var payload []recordPayload
	path := fmt.Sprintf("/attendance/monthly?month=%02d&year=%04d", int(month), year)
	if err := r.client.getJSON(ctx, ResourceAttendance, path, &payload); err != nil {
		return nil, err
	}

	records := make([]attendance.AttendanceRecord, 0, len(payload))
	for _, p := range payload {
		date, err := time.Parse(attendance.DateLayout, p.Date)
		if err != nil || p.EmployeeID == "" {
			slog.Warn("upstream attendance record skipped", "employee_id", p.EmployeeID, "date", p.Date)
			continue
		}

		rec := attendance.AttendanceRecord{
			EmployeeID: p.EmployeeID,
			Date:       date,
			Entries:    p.Entries,
			Notes:      p.Notes,
		}
		if s := attendance.Status(p.Status); s != attendance.StatusUnselected && s.IsValid() {
			rec.ManualStatus = &s
		}
		records = append(records, rec)
	}
	return records, nil
}
