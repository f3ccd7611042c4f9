package source

import "errors"

var (
	// ErrNotFound means the file path does not resolve to a readable file.
	ErrNotFound = errors.New("name file not found")
	// ErrMissingInput means no file path, content or stdin was supplied.
	ErrMissingInput = errors.New("missing input: need a file path or content")
	// ErrTooLarge means the name input exceeds the configured size limit.
	ErrTooLarge = errors.New("name input too large")
)
