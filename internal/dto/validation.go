package dto

import (
	"fmt"
	"unicode/utf8"

	"change-ops-api/internal/response"
)

// Field length limits enforced at the form boundary
const (
	TitleMinLen           = 5
	TitleMaxLen           = 200
	LongTextMinLen        = 20
	LongTextMaxLen        = 2000
	AffectedSystemsMinLen = 3
	AffectedSystemsMaxLen = 500
)

// fieldErrors accumulates per-field validation messages
type fieldErrors map[string]string

func (f fieldErrors) requireLength(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		f[field] = fmt.Sprintf("must be between %d and %d characters", min, max)
	}
}

// toError converts accumulated field errors into an AppError, or nil when
// everything validated
func (f fieldErrors) toError() error {
	if len(f) == 0 {
		return nil
	}
	return response.NewFieldValidationError("Request validation failed", f)
}
