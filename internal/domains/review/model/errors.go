package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeReviewNotFound  = "REV001"
	ErrCodeReplyNotFound   = "REV002"
	ErrCodeListingNotFound = "REV003"
	ErrCodeDuplicateReport = "REV004"
	ErrCodeForbidden       = "REV005"
	ErrCodeValidation      = "REV006"
	ErrCodeUnauthorized    = "REV007"
)

// Errors
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReplyNotFound   = errors.New("reply not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrDuplicateReport = errors.New("target already reported by this user")
	ErrForbidden       = errors.New("not the author of this content")
	ErrUnauthorized    = errors.New("unauthorized to perform this action")
)

// ReviewError custom error type
type ReviewError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewReviewNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReviewNotFound,
		Message: "Review not found",
		Err:     ErrReviewNotFound,
	}
}

func NewReplyNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReplyNotFound,
		Message: "Reply not found",
		Err:     ErrReplyNotFound,
	}
}

func NewListingNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeListingNotFound,
		Message: "Listing not found",
		Err:     ErrListingNotFound,
	}
}

func NewDuplicateReportError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeDuplicateReport,
		Message: "You have already reported this content",
		Err:     ErrDuplicateReport,
	}
}

func NewForbiddenError(message string) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeForbidden,
		Message: message,
		Err:     ErrForbidden,
	}
}

func NewValidationError(err error) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}
