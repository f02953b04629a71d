package dashboard

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Date       string            `json:"date"`
	Attendance AttendanceStats   `json:"attendance"`
	Salaries   SalaryStats       `json:"salaries"`
	Today      []TodayAttendance `json:"today"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// AttendanceStats counts today's records. Late workers count as present.
type AttendanceStats struct {
	TotalEmployees int     `json:"total_employees"`
	PresentToday   int     `json:"present_today"`
	AbsentToday    int     `json:"absent_today"`
	LoggedIn       int     `json:"logged_in"`
	NotLoggedIn    int     `json:"not_logged_in"`
	PresentPercent float64 `json:"present_percent"`
}

// SalaryStats covers the current month's salary review.
type SalaryStats struct {
	Month     string `json:"month"`
	Pending   int    `json:"pending"`
	Processed int    `json:"processed"` // approved + rejected
}

type TodayAttendance struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	CheckIn      string `json:"check_in,omitempty"`
	LoggedIn     bool   `json:"logged_in"`
}

func (t TodayAttendance) LoginLabel() string {
	if t.LoggedIn {
		return "Logged In"
	}
	return "Not Logged In"
}
