package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrNotFound            = errors.New("not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleLength         = errors.New("title must be between 5 and 255 characters")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionLength   = errors.New("description must be at least 10 characters")
	ErrInvalidPage         = errors.New("page must be an integer greater than or equal to 1")
	ErrInvalidLimit        = errors.New("limit must be an integer greater than or equal to 1")
)
