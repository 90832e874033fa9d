package errors

import (
	"context"
	"errors"
	"io/fs"
	"strings"
)

// ClassifyError maps a host operation failure onto an ErrorCode.
// OperationErrors keep their own code; OS errors are matched by sentinel, then errno, then message.
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	var opErr *OperationError
	if errors.As(err, &opErr) && opErr.Code != ErrCodeUnknown {
		return opErr.Code
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrCodePermission
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		return ErrCodeCancelled
	}

	if code := classifyErrno(err); code != ErrCodeUnknown {
		return code
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "no such file"), strings.Contains(errStr, "cannot find the file"):
		return ErrCodeNotFound
	case strings.Contains(errStr, "permission denied"), strings.Contains(errStr, "access is denied"):
		return ErrCodePermission
	case strings.Contains(errStr, "is a directory"):
		return ErrCodeValidation
	}

	return ErrCodeUnknown
}
