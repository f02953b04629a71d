package report

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/attendance"
)

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByDepartment SortKey = "department"
	SortByDate       SortKey = "date"
	SortByHours      SortKey = "hours"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByDepartment, SortByDate, SortByHours:
		return true
	}
	return false
}

// Filter predicates are combined with AND. Empty fields, and "all" for
// Department and Status, disable the predicate. Status "unselected"
// matches records with no admin override.
type Filter struct {
	Search     string
	Department string
	Status     string
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

func (f Filter) Matches(row Row) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		name := strings.ToLower(row.Employee.Name)
		code := strings.ToLower(row.Employee.Code)
		if !strings.Contains(name, term) && !strings.Contains(code, term) {
			return false
		}
	}
	if f.Department != "" && f.Department != "all" && row.Employee.Department != f.Department {
		return false
	}
	if f.Status != "" && f.Status != "all" {
		if f.Status == string(attendance.StatusUnselected) {
			if row.Overridden() {
				return false
			}
		} else if string(row.Status) != f.Status {
			return false
		}
	}
	if f.EmployeeID != "" && row.Record.EmployeeID != f.EmployeeID && row.Employee.Code != f.EmployeeID {
		return false
	}
	if f.From != nil && row.Record.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && row.Record.Date.After(*f.To) {
		return false
	}
	return true
}

// Apply filters rows and orders them by key. The sort is stable so ties
// keep the order of the underlying collection; hours sort longest first.
// An empty key keeps collection order.
func Apply(rows []Row, f Filter, key SortKey) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if f.Matches(row) {
			out = append(out, row)
		}
	}

	less := comparator(key)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
	}
	return out
}

func comparator(key SortKey) func(a, b Row) bool {
	switch key {
	case SortByName:
		return func(a, b Row) bool {
			return strings.ToLower(a.Employee.Name) < strings.ToLower(b.Employee.Name)
		}
	case SortByDepartment:
		return func(a, b Row) bool {
			return strings.ToLower(a.Employee.Department) < strings.ToLower(b.Employee.Department)
		}
	case SortByDate:
		return func(a, b Row) bool {
			return a.Record.Date.Before(b.Record.Date)
		}
	case SortByHours:
		return func(a, b Row) bool {
			return a.HoursValue() > b.HoursValue()
		}
	}
	return nil
}

// Departments lists the distinct departments of rows, sorted.
func Departments(rows []Row) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		d := row.Employee.Department
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
