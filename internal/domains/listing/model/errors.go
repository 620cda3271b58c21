package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeListingNotFound = "LST001"
	ErrCodeDuplicateSlug   = "LST002"
	ErrCodeValidation      = "LST003"
)

// Errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrDuplicateSlug   = errors.New("listing slug already exists")
)

// ListingError custom error type
type ListingError struct {
	Code    string
	Message string
	Err     error
}

func (e *ListingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewListingNotFoundError() *ListingError {
	return &ListingError{
		Code:    ErrCodeListingNotFound,
		Message: "Listing not found",
		Err:     ErrListingNotFound,
	}
}

func NewDuplicateSlugError() *ListingError {
	return &ListingError{
		Code:    ErrCodeDuplicateSlug,
		Message: "A listing with this title already exists",
		Err:     ErrDuplicateSlug,
	}
}

func NewValidationError(err error) *ListingError {
	return &ListingError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}
