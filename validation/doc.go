// Package validation provides input validation for progressive tooling.
//
// It supports struct tag validation (using the go-playground validator) for
// configuration structs, and programmatic validation with error collection
// for command-line input. Both report failures as *errors.AppError with an
// INVALID_INPUT code and per-field details.
//
// # Struct Tag Validation
//
//	type SlicingConfig struct {
//	    Budget time.Duration `mapstructure:"budget" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Min("top", top, 1).PositiveDuration("budget", budget)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
