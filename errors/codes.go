package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Lifecycle errors
const (
	// ErrCodeLoaderFinished indicates an operation on a waiter whose loader
	// has already been consumed.
	ErrCodeLoaderFinished ErrorCode = "LOADER_FINISHED"
	// ErrCodeCancelled indicates a run was abandoned before its loader finished.
	ErrCodeCancelled ErrorCode = "CANCELLED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates the configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// fatalCodes are codes reporting programmer misuse rather than a runtime condition.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeLoaderFinished: true,
}

// IsFatalCode returns true if the code signals caller misuse that must not be
// handled as an ordinary error.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
