package models

import (
	"errors"
	"fmt"
)

// Sentinels for the three failure kinds of an analysis. Concrete errors below
// match them with errors.Is.
var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownSystem    = errors.New("unknown system")
	ErrMalformedRuleSet = errors.New("malformed rule-set")
)

// InvalidDateError reports a date_of_birth that is not YYYY-MM-DD or not a
// real Gregorian calendar date.
type InvalidDateError struct {
	Value  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date_of_birth must be YYYY-MM-DD and valid: %s", e.Reason)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// UnknownSystemError reports a system identifier with no stored configuration.
type UnknownSystemError struct {
	SystemID string
}

func (e *UnknownSystemError) Error() string {
	return fmt.Sprintf("unknown system: %s", e.SystemID)
}

func (e *UnknownSystemError) Is(target error) bool {
	return target == ErrUnknownSystem
}

// MalformedRuleSetError reports a stored configuration that is missing required
// fields or carries invalid values.
type MalformedRuleSetError struct {
	SystemID string
	Reason   string
	Err      error
}

func (e *MalformedRuleSetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed rule-set %q: %s: %v", e.SystemID, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed rule-set %q: %s", e.SystemID, e.Reason)
}

func (e *MalformedRuleSetError) Unwrap() error {
	return e.Err
}

func (e *MalformedRuleSetError) Is(target error) bool {
	return target == ErrMalformedRuleSet
}
