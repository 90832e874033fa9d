package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorCode represents the classification of a host operation failure
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotFound
	ErrCodePermission
	ErrCodeBusy
	ErrCodeValidation
	ErrCodeTimeout
	ErrCodeCancelled
	ErrCodeInternal
)

// String returns a string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodePermission:
		return "PERMISSION"
	case ErrCodeBusy:
		return "BUSY"
	case ErrCodeValidation:
		return "VALIDATION"
	case ErrCodeTimeout:
		return "TIMEOUT"
	case ErrCodeCancelled:
		return "CANCELLED"
	case ErrCodeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// OperationError represents a host-side failure with classification and context
type OperationError struct {
	Op        string            // operation name
	Err       error             // underlying error
	Code      ErrorCode         // error classification
	Context   map[string]string // additional context information
	Timestamp time.Time         // when the error occurred
}

func (e *OperationError) Error() string {
	if e == nil {
		return "operation error"
	}

	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	if e.Code != ErrCodeUnknown {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code.String()))
	}

	// Context keys are sorted for deterministic output
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
	}

	contextStr := ""
	if len(parts) > 0 {
		contextStr = fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}

	if e.Err != nil {
		return e.Err.Error() + contextStr
	}
	return "operation error" + contextStr
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another OperationError by code, otherwise defers to the wrapped error
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e.Code == t.Code
	}
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// GetCode returns the error code as a string (for logging interface compatibility)
func (e *OperationError) GetCode() string {
	if e == nil {
		return ErrCodeUnknown.String()
	}
	return e.Code.String()
}

// GetContext returns the error context (for logging interface compatibility)
func (e *OperationError) GetContext() map[string]string {
	if e == nil || e.Context == nil {
		return make(map[string]string)
	}
	return e.Context
}

// GetTimestamp returns the error timestamp (for logging interface compatibility)
func (e *OperationError) GetTimestamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.Timestamp
}

// WithContext adds context information to the error by mutating the receiver.
// Not safe once the error has been handed to other goroutines.
func (e *OperationError) WithContext(key, value string) *OperationError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// NewOperationError creates a new operation error
func NewOperationError(op string, err error, code ErrorCode) *OperationError {
	return &OperationError{
		Op:        op,
		Err:       err,
		Code:      code,
		Context:   make(map[string]string),
		Timestamp: time.Now(),
	}
}

// NewOperationErrorWithContext creates a new operation error with a copy of the given context
func NewOperationErrorWithContext(op string, err error, code ErrorCode, context map[string]string) *OperationError {
	opErr := NewOperationError(op, err, code)
	if context != nil {
		opErr.Context = make(map[string]string, len(context))
		for k, v := range context {
			opErr.Context[k] = v
		}
	}
	return opErr
}

func hasCode(err error, code ErrorCode) bool {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a "not found" error
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound) || ClassifyError(err) == ErrCodeNotFound
}

// IsPermission checks if the error is a permission error
func IsPermission(err error) bool {
	return hasCode(err, ErrCodePermission) || ClassifyError(err) == ErrCodePermission
}

// IsBusy checks if the error is a busy/locked error
func IsBusy(err error) bool {
	return hasCode(err, ErrCodeBusy) || ClassifyError(err) == ErrCodeBusy
}

// IsInternal checks if the error is an internal/API misuse error
func IsInternal(err error) bool {
	return hasCode(err, ErrCodeInternal)
}
