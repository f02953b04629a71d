package attendance

import (
	"fmt"
	"strings"
	"time"
)

// LocalTime is a wall-clock time on a fixed reference day, stored as
// seconds since midnight.
type LocalTime int

var localTimeLayouts = []string{"15:04", "15:04:05"}

// ParseLocalTime accepts "HH:MM" and "HH:MM:SS".
func ParseLocalTime(s string) (LocalTime, error) {
	value := strings.TrimSpace(s)
	for _, layout := range localTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return LocalTime(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, ErrInvalidPunchTime
}

func (t LocalTime) String() string {
	s := int(t)
	if s%60 != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
	}
	return fmt.Sprintf("%02d:%02d", s/3600, (s/60)%60)
}

// Sub returns t-u in minutes. The result is negative when u is later.
func (t LocalTime) Sub(u LocalTime) float64 {
	return float64(int(t)-int(u)) / 60
}

type LogForm string

const (
	FormWellFormed LogForm = "well_formed"
	FormPartial    LogForm = "partial"
)

// EntryLog is a punch sequence annotated with its shape. Entries keep the
// exact order they were received in.
type EntryLog struct {
	Entries     []PunchEntry
	Form        LogForm
	DanglingIns int
	OrphanOuts  int
}

// Normalize classifies a punch sequence. A log is well formed when it
// strictly alternates in/out starting with "in" and ends with "out".
// Entries are never reordered.
func Normalize(entries []PunchEntry) EntryLog {
	log := EntryLog{
		Entries: entries,
		Form:    FormWellFormed,
	}

	open := false
	for i, e := range entries {
		switch e.Type {
		case PunchIn:
			if open {
				log.DanglingIns++
			}
			open = true
		case PunchOut:
			if !open {
				log.OrphanOuts++
			}
			open = false
		}
		if (i%2 == 0 && e.Type != PunchIn) || (i%2 == 1 && e.Type != PunchOut) {
			log.Form = FormPartial
		}
	}
	if open {
		log.DanglingIns++
		log.Form = FormPartial
	}

	return log
}

// ParsedPunch is a PunchEntry with its time resolved.
type ParsedPunch struct {
	At   LocalTime
	Type PunchType
}

// Parse resolves every entry of the log. The first malformed entry fails
// the whole log with a *ParseError.
func (l EntryLog) Parse() ([]ParsedPunch, error) {
	parsed := make([]ParsedPunch, 0, len(l.Entries))
	for i, e := range l.Entries {
		if e.Type != PunchIn && e.Type != PunchOut {
			return nil, &ParseError{Index: i, Value: string(e.Type), Err: ErrInvalidPunchType}
		}
		at, err := ParseLocalTime(e.Time)
		if err != nil {
			return nil, &ParseError{Index: i, Value: e.Time, Err: err}
		}
		parsed = append(parsed, ParsedPunch{At: at, Type: e.Type})
	}
	return parsed, nil
}
