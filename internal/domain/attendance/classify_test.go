package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func statusPtr(s Status) *Status { return &s }

func strPtr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	day := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)

	t.Run("manual status wins", func(t *testing.T) {
		record := AttendanceRecord{EmployeeID: "E1", Date: day, ManualStatus: statusPtr(StatusHalfDay)}
		assert.Equal(t, StatusHalfDay, Classify(record))
	})

	t.Run("hours never infer a status", func(t *testing.T) {
		record := AttendanceRecord{EmployeeID: "E1", Date: day, Entries: punches("08:00", "in", "17:00", "out")}
		assert.Equal(t, StatusUnselected, Classify(record))
	})

	t.Run("empty manual status is unselected", func(t *testing.T) {
		record := AttendanceRecord{EmployeeID: "E1", Date: day, ManualStatus: statusPtr("")}
		assert.Equal(t, StatusUnselected, Classify(record))
	})
}

func TestOverrides_Merge(t *testing.T) {
	day := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	record := AttendanceRecord{EmployeeID: "E1", Date: day, Notes: "gate scanner offline"}

	t.Run("no override returns record unchanged", func(t *testing.T) {
		merged := NewOverrides(nil).Merge(record)
		assert.Equal(t, record, merged)
		assert.Equal(t, StatusUnselected, Classify(merged))
	})

	t.Run("status and notes applied to a copy", func(t *testing.T) {
		overrides := NewOverrides([]Override{
			{EmployeeID: "E1", Date: day, Status: statusPtr(StatusPaidLeave), Notes: strPtr("approved by supervisor")},
			{EmployeeID: "E2", Date: day, Status: statusPtr(StatusAbsent)},
		})

		merged := overrides.Merge(record)

		assert.Equal(t, StatusPaidLeave, Classify(merged))
		assert.Equal(t, "approved by supervisor", merged.Notes)
		assert.Nil(t, record.ManualStatus)
		assert.Equal(t, "gate scanner offline", record.Notes)
	})

	t.Run("notes only override keeps unselected", func(t *testing.T) {
		overrides := NewOverrides([]Override{{EmployeeID: "E1", Date: day, Notes: strPtr("left early")}})

		merged := overrides.Merge(record)

		assert.Equal(t, StatusUnselected, Classify(merged))
		assert.Equal(t, "left early", merged.Notes)
	})

	t.Run("override for another day is ignored", func(t *testing.T) {
		overrides := NewOverrides([]Override{{EmployeeID: "E1", Date: day.AddDate(0, 0, 1), Status: statusPtr(StatusAbsent)}})
		assert.Equal(t, StatusUnselected, Classify(overrides.Merge(record)))
	})
}

func TestSaveOverridesRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := SaveOverridesRequest{Overrides: []OverrideItem{
			{EmployeeID: "E1", Date: "2025-05-02", Status: strPtr("present")},
			{EmployeeID: "E2", Date: "2025-05-02", Notes: strPtr("forgot badge")},
		}}
		assert.NoError(t, req.Validate())

		overrides := req.ToOverrides("admin-1", time.Now())
		assert.Len(t, overrides, 2)
		assert.Equal(t, StatusPresent, *overrides[0].Status)
		assert.Nil(t, overrides[1].Status)
		assert.Equal(t, "admin-1", overrides[1].UpdatedBy)
	})

	t.Run("invalid", func(t *testing.T) {
		req := SaveOverridesRequest{Overrides: []OverrideItem{
			{EmployeeID: "", Date: "02/05/2025", Status: strPtr("unselected")},
			{EmployeeID: "E2", Date: "2025-05-02"},
		}}

		err := req.Validate()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "overrides[0].employee_id")
		assert.Contains(t, err.Error(), "overrides[0].date")
		assert.Contains(t, err.Error(), "overrides[0].status")
		assert.Contains(t, err.Error(), "overrides[1]: status or notes is required")
	})

	t.Run("empty batch", func(t *testing.T) {
		req := SaveOverridesRequest{}
		assert.Error(t, req.Validate())
	})
}

func TestRecordPunchesRequest_Validate(t *testing.T) {
	req := RecordPunchesRequest{
		EmployeeID: "E1",
		Date:       "2025-05-02",
		Entries:    punches("08:00", "in", "17:00", "out"),
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "E1-2025-05-02", req.ToRecord().Key())

	bad := RecordPunchesRequest{Date: "2025-5-2", Entries: punches("8", "lunch")}
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entries[0].type")
	assert.Contains(t, err.Error(), "entries[0].time")
}
