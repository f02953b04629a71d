package payroll

import "errors"

var (
	ErrSalaryRecordNotFound  = errors.New("salary record not found")
	ErrSalaryRecordExists    = errors.New("salary record already exists for this period")
	ErrSalaryAlreadyReviewed = errors.New("salary record has already been reviewed")
	ErrSalaryAlreadyApproved = errors.New("approved salary records cannot be edited")
)
