package handler

import (
	"fmt"
	"strings"

	"numerus/internal/numerology/service"
	dErrors "numerus/pkg/domain-errors"
)

const (
	maxFullNameLength = 256
	minTargetYear     = 1
	maxTargetYear     = 9999
)

// AnalyzeRequest is the JSON body of POST /v1/analyze and of each batch entry.
type AnalyzeRequest struct {
	FullName    *string `json:"full_name"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      *string `json:"gender,omitempty"`
	System      string  `json:"system,omitempty"`
	TargetYear  *int    `json:"target_year,omitempty"`
	Trace       bool    `json:"trace,omitempty"`
}

// Normalize trims the identifier-like fields. The name is left as sent: it is
// echoed verbatim and the engine normalizes it.
func (r *AnalyzeRequest) Normalize() {
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.System = strings.TrimSpace(r.System)
}

func (r *AnalyzeRequest) Validate() error {
	if r.FullName == nil {
		return dErrors.New(dErrors.CodeValidation, "full_name is required")
	}
	if len(*r.FullName) > maxFullNameLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("full_name must be at most %d bytes", maxFullNameLength))
	}
	if r.DateOfBirth == "" {
		return dErrors.New(dErrors.CodeValidation, "date_of_birth is required")
	}
	if r.TargetYear != nil && (*r.TargetYear < minTargetYear || *r.TargetYear > maxTargetYear) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("target_year must be between %d and %d", minTargetYear, maxTargetYear))
	}
	return nil
}

func (r *AnalyzeRequest) toService() service.AnalyzeRequest {
	return service.AnalyzeRequest{
		FullName:    *r.FullName,
		DateOfBirth: r.DateOfBirth,
		Gender:      r.Gender,
		System:      r.System,
		TargetYear:  r.TargetYear,
		Trace:       r.Trace,
	}
}

// BatchAnalyzeRequest is the JSON body of POST /v1/analyze/batch. Entries are
// validated one by one so a bad entry only fails itself.
type BatchAnalyzeRequest struct {
	Requests []AnalyzeRequest `json:"requests"`
}

func (r *BatchAnalyzeRequest) Normalize() {
	for i := range r.Requests {
		r.Requests[i].Normalize()
	}
}

// validateSize checks the entry count against the configured maximum.
func (r *BatchAnalyzeRequest) validateSize(maxItems int) error {
	if r.Requests == nil {
		return dErrors.New(dErrors.CodeValidation, "requests is required")
	}
	if len(r.Requests) > maxItems {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("requests may contain at most %d items", maxItems))
	}
	return nil
}
