package book

import "errors"

// Validation errors. A book failing any of these is never stored.
var (
	ErrTitleRequired  = errors.New("title is required")
	ErrAuthorRequired = errors.New("author is required")
	ErrInvalidGenre   = errors.New("invalid genre")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrInvalidRating  = errors.New("rating must be 1-5")
	ErrInvalidDate    = errors.New("invalid date_added")
)
