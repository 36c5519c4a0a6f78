// Package errors provides the structured error type shared by progressive
// and its tooling. Errors carry a machine-readable code, a human-readable
// message and optional details, and unwrap to their cause.
//
// Misuse of a finished waiter is reported by panicking with an *AppError
// carrying ErrCodeLoaderFinished; recover it and use AsAppError to inspect.
package errors
