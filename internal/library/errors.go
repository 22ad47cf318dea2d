package library

import "errors"

// Error variables for library operations.
var (
	ErrOutOfRange        = errors.New("position out of range")
	ErrNotFound          = errors.New("book not found")
	ErrAmbiguousID       = errors.New("ambiguous id prefix")
	ErrIDTooShort        = errors.New("id prefix too short")
	ErrInvalidRef        = errors.New("invalid book reference")
	ErrMalformedDocument = errors.New("malformed library document")
	ErrNoChanges         = errors.New("no fields to update")

	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrLibraryFileEmpty   = errors.New("library-file cannot be empty")

	ErrLockTimeout = errors.New("lock timeout")
)
