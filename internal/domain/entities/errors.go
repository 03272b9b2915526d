package entities

import "errors"

// ErrFileNotFound marks a referenced input path that does not exist
var ErrFileNotFound = errors.New("file not found")

// NotFoundError carries the path that was missing; it matches ErrFileNotFound
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return ErrFileNotFound.Error() + ": " + e.Path
}

// Unwrap lets errors.Is match ErrFileNotFound
func (e *NotFoundError) Unwrap() error {
	return ErrFileNotFound
}

// FileNotFound returns a NotFoundError for path
func FileNotFound(path string) error {
	return &NotFoundError{Path: path}
}
