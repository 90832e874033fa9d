//go:build !unix && !windows

package errors

func classifyErrno(err error) ErrorCode {
	return ErrCodeUnknown
}
