package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrOverrideNotFound = errors.New("attendance override not found")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrInvalidPunchTime = errors.New("invalid punch time")
	ErrInvalidPunchType = errors.New("invalid punch type")
)

// ParseError reports a punch that could not be read. It aborts the hours
// computation of the record it belongs to and nothing else.
type ParseError struct {
	Index int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry %d: %v: %q", e.Index, e.Err, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
