package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Fatal {
		t.Error("NOT_FOUND should not be fatal")
	}
}

func TestAppError_New_Fatal(t *testing.T) {
	err := New(ErrCodeLoaderFinished, "done")
	if !err.Fatal {
		t.Error("LOADER_FINISHED should be fatal")
	}
}

func TestAppError_LoaderFinished_Success(t *testing.T) {
	err := LoaderFinished("Query")
	if err.Code != ErrCodeLoaderFinished {
		t.Errorf("expected LOADER_FINISHED, got %s", err.Code)
	}
	if !err.Fatal {
		t.Error("expected LoaderFinished to be fatal")
	}
	if err.Details["operation"] != "Query" {
		t.Errorf("expected operation=Query, got %v", err.Details["operation"])
	}
	if !strings.Contains(err.Error(), "Query called after the loader was done") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("file", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no id detail for empty id")
	}
	if err.Details["resource"] != "file" {
		t.Errorf("expected resource=file, got %v", err.Details["resource"])
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("budget", "must be positive")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "budget" {
		t.Errorf("expected field=budget, got %v", err.Details["field"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InvalidConfig(nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("item", "1").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["resource"] != "item" {
		t.Error("expected original details to be preserved")
	}

	err.WithDetails(map[string]any{"another": "detail"})
	if err.Details["another"] != "detail" {
		t.Error("expected another=detail to be merged")
	}
	if err.Details["extra"] != "info" {
		t.Error("expected extra=info to be preserved after second merge")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	if Internal(cause).Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if NotFound("x", "").Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		fatal bool
	}{
		{"LoaderFinished", LoaderFinished("Loader"), ErrCodeLoaderFinished, true},
		{"Cancelled", Cancelled(3), ErrCodeCancelled, false},
		{"InvalidInput", InvalidInput("f", "bad"), ErrCodeInvalidInput, false},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, false},
		{"InvalidConfig", InvalidConfig(nil), ErrCodeInvalidConfig, false},
		{"NotFound", NotFound("file", "a.txt"), ErrCodeNotFound, false},
		{"Internal", Internal(nil), ErrCodeInternal, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Fatal != tc.fatal {
				t.Errorf("expected fatal=%v, got %v", tc.fatal, tc.err.Fatal)
			}
		})
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to return true for wrapped AppError")
	}
	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", LoaderFinished("Query"))
	if !HasCode(err, ErrCodeLoaderFinished) {
		t.Error("expected HasCode to find LOADER_FINISHED")
	}
	if HasCode(err, ErrCodeInternal) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode false for plain error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := NotFound("item", "1")
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}

func TestFromPanic(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if FromPanic(nil) != nil {
			t.Error("expected nil")
		}
	})

	t.Run("app error", func(t *testing.T) {
		orig := LoaderFinished("Query")
		if FromPanic(orig) != orig {
			t.Error("expected the original AppError")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		got := FromPanic(stderrors.New("boom"))
		if got.Code != ErrCodeInternal {
			t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
		}
	})

	t.Run("string", func(t *testing.T) {
		got := FromPanic("boom")
		if got.Code != ErrCodeInternal || !strings.Contains(got.Error(), "boom") {
			t.Errorf("unexpected %v", got)
		}
	})
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = NotFound("test", "1")
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Error("stderrors.As should work with AppError")
	}
}
