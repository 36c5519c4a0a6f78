package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/progressive/errors"
)

// Validator accumulates problems with command-line values so they can be
// reported together rather than one flag at a time.
type Validator struct {
	errors []FieldError
}

// FieldError names a rejected value and why.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

func (v *Validator) add(field, format string, args ...any) {
	v.errors = append(v.errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Validate folds the failed checks into one INVALID_INPUT error, or
// returns nil when every check passed.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.Field + ": " + e.Message
	}
	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Min rejects counts below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.add(field, "must be at least %d", minVal)
	}
	return v
}

// PositiveDuration rejects zero and negative durations, such as a slice
// budget that would never let the loader run.
func (v *Validator) PositiveDuration(field string, value time.Duration) *Validator {
	if value <= 0 {
		v.add(field, "must be positive (got %s)", value)
	}
	return v
}

// OptionalUUID rejects a non-empty value that does not parse as a UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.add(field, "must be a valid UUID")
	}
	return v
}
