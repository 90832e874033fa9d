//go:build windows

package errors

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

// classifyErrno inspects the Win32 error code carried by *fs.PathError and friends
func classifyErrno(err error) ErrorCode {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ErrCodeUnknown
	}

	switch errno {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND, windows.ERROR_INVALID_DRIVE:
		return ErrCodeNotFound
	case windows.ERROR_ACCESS_DENIED:
		return ErrCodePermission
	case windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION:
		return ErrCodeBusy
	case windows.ERROR_INVALID_NAME, windows.ERROR_FILENAME_EXCED_RANGE, windows.ERROR_DIRECTORY:
		return ErrCodeValidation
	case windows.ERROR_OPERATION_ABORTED:
		return ErrCodeCancelled
	default:
		return ErrCodeUnknown
	}
}
