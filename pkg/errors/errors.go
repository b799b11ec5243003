package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeConnectivity ErrorCode = "CONNECTIVITY_ERROR"
	ErrCodeWrite        ErrorCode = "WRITE_ERROR"
	ErrCodeRead         ErrorCode = "READ_ERROR"
	ErrCodeConfig       ErrorCode = "CONFIG_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Connectivity reports that the store could not be reached.
func Connectivity(message string, err error) *AppError {
	return Wrap(ErrCodeConnectivity, message, err)
}

// Write reports that the store rejected or failed a write.
func Write(message string, err error) *AppError {
	return Wrap(ErrCodeWrite, message, err)
}

// Read reports that the store rejected or failed a read.
func Read(message string, err error) *AppError {
	return Wrap(ErrCodeRead, message, err)
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsConnectivity checks if error is a connectivity failure
func IsConnectivity(err error) bool {
	return CodeOf(err) == ErrCodeConnectivity
}

// IsWrite checks if error is a write failure
func IsWrite(err error) bool {
	return CodeOf(err) == ErrCodeWrite
}

// IsRead checks if error is a read failure
func IsRead(err error) bool {
	return CodeOf(err) == ErrCodeRead
}
