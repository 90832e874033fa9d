//go:build unix

package errors

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// classifyErrno inspects the errno carried by *fs.PathError and friends
func classifyErrno(err error) ErrorCode {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ErrCodeUnknown
	}

	switch errno {
	case unix.ENOENT, unix.ENOTDIR:
		return ErrCodeNotFound
	case unix.EACCES, unix.EPERM:
		return ErrCodePermission
	case unix.EBUSY, unix.ETXTBSY, unix.EAGAIN:
		return ErrCodeBusy
	case unix.EISDIR, unix.ENAMETOOLONG, unix.ELOOP:
		return ErrCodeValidation
	case unix.ETIMEDOUT:
		return ErrCodeTimeout
	case unix.EINTR:
		return ErrCodeCancelled
	default:
		return ErrCodeUnknown
	}
}
