package attendance

import (
	"sort"

	"github.com/shopspring/decimal"
)

type PairingMode int

const (
	// PairSequential pairs punches in the order they were received.
	PairSequential PairingMode = iota
	// PairSortThenPair orders punches by time before pairing them.
	PairSortThenPair
)

func (m PairingMode) String() string {
	if m == PairSortThenPair {
		return "sort_then_pair"
	}
	return "sequential"
}

// ParsePairingMode maps the textual mode, defaulting to sequential.
func ParsePairingMode(s string) PairingMode {
	if s == "sort_then_pair" {
		return PairSortThenPair
	}
	return PairSequential
}

// WorkingHours is the result of reducing one punch log.
type WorkingHours struct {
	Hours         float64 `json:"hours"`
	TotalMinutes  float64 `json:"total_minutes"`
	Pairs         int     `json:"pairs"`
	NegativeSpans int     `json:"negative_spans"`
	Form          LogForm `json:"form"`
}

// Warnings lists anomalies worth surfacing next to the record.
func (w WorkingHours) Warnings() []string {
	var warnings []string
	if w.NegativeSpans > 0 {
		warnings = append(warnings, "check-out earlier than check-in")
	}
	if w.Form == FormPartial {
		warnings = append(warnings, "incomplete punch log")
	}
	return warnings
}

// CalculateWorkingHours reduces a punch log with sequential pairing.
func CalculateWorkingHours(entries []PunchEntry) (WorkingHours, error) {
	return CalculateWorkingHoursWithMode(entries, PairSequential)
}

// CalculateWorkingHoursWithMode walks the punches keeping the last open
// "in". A later "in" replaces a pending one, an "out" with nothing open is
// ignored, and an "out" earlier than its "in" adds a negative span.
func CalculateWorkingHoursWithMode(entries []PunchEntry, mode PairingMode) (WorkingHours, error) {
	log := Normalize(entries)
	result := WorkingHours{Form: log.Form}

	punches, err := log.Parse()
	if err != nil {
		return result, err
	}

	if mode == PairSortThenPair {
		sort.SliceStable(punches, func(i, j int) bool {
			return punches[i].At < punches[j].At
		})
	}

	var lastIn *LocalTime
	for i := range punches {
		p := punches[i]
		switch p.Type {
		case PunchIn:
			at := p.At
			lastIn = &at
		case PunchOut:
			if lastIn == nil {
				continue
			}
			span := p.At.Sub(*lastIn)
			if span < 0 {
				result.NegativeSpans++
			}
			result.TotalMinutes += span
			result.Pairs++
			lastIn = nil
		}
	}

	result.Hours = RoundHalfUp(result.TotalMinutes/60, 1)
	return result, nil
}

// RoundHalfUp rounds v to the given number of decimals, ties toward +inf.
func RoundHalfUp(v float64, places int32) float64 {
	shift := decimal.New(1, places)
	rounded := decimal.NewFromFloat(v).
		Mul(shift).
		Add(decimal.NewFromFloat(0.5)).
		Floor().
		Div(shift)
	f, _ := rounded.Float64()
	return f
}
