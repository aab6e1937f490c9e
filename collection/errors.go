package collection

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrNotFound            ErrorCode = "NOT_FOUND"
	ErrExhausted           ErrorCode = "EXHAUSTED"
	ErrPaymentMismatch     ErrorCode = "PAYMENT_MISMATCH"
	ErrInsufficientCustody ErrorCode = "INSUFFICIENT_CUSTODY"
	ErrTransferRejected    ErrorCode = "TRANSFER_REJECTED"
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"
)

// CodedError is a stable rejection with a machine-readable code. Every
// operation either commits all of its state changes or fails with one of
// these and commits none.
type CodedError struct {
	Code    ErrorCode
	Message string
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, format string, args ...any) *CodedError {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Code returns the error code carried by err, or "" for uncoded errors.
func Code(err error) ErrorCode {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
