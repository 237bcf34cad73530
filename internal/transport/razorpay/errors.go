package razorpay

import (
	"errors"
	"fmt"
)

var ErrMissingCredentials = errors.New("razorpay credentials are not configured")

type StatusCodeError struct {
	Code int
}

func NewStatusCodeError(code int) *StatusCodeError {
	return &StatusCodeError{Code: code}
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}
