package attendance

// Classify returns the status shown for a record. An admin-entered status
// always wins; otherwise the record is unselected. Hours are never used to
// infer a status.
func Classify(record AttendanceRecord) Status {
	if record.ManualStatus != nil && *record.ManualStatus != "" {
		return *record.ManualStatus
	}
	return StatusUnselected
}

// Overrides indexes admin annotations by OverrideKey.
type Overrides map[string]Override

func NewOverrides(list []Override) Overrides {
	o := make(Overrides, len(list))
	for _, ov := range list {
		o[ov.Key()] = ov
	}
	return o
}

// Merge returns a copy of record carrying the override for its key, if
// any. The input record is left untouched.
func (o Overrides) Merge(record AttendanceRecord) AttendanceRecord {
	ov, ok := o[record.Key()]
	if !ok {
		return record
	}

	merged := record
	if ov.Status != nil {
		status := *ov.Status
		merged.ManualStatus = &status
	}
	if ov.Notes != nil {
		merged.Notes = *ov.Notes
	}
	return merged
}
