package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrInvalidPhoto       = errors.New("employee photo must be a jpeg or png image")
)
