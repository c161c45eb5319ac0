package uploadto

import "errors"

var (
	// ErrInvalidFilename means the file name has no extension.
	ErrInvalidFilename = errors.New("invalid upload file name")
	// ErrExtensionNotAllowed means the file extension is blacklisted.
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
	// ErrTemplate means the file name template could not be rendered.
	ErrTemplate    = errors.New("invalid file name template")
	ErrNilInstance = errors.New("upload target instance is nil")
	// ErrInvalidOptions means Options hold a value no path can be built with.
	ErrInvalidOptions = errors.New("invalid upload_to options")
)
