// Package cli holds what the gzstamp and pathfix commands share: the error
// taxonomy, its mapping onto process exit codes and logger bootstrap.
package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/ochairo/stampkit/internal/domain/entities"
)

// Process exit codes
const (
	ExitOK    = 0
	ExitUsage = 1
	ExitFatal = 1
)

// UsageError reports missing or malformed command-line arguments
type UsageError struct {
	Usage string // full usage line, e.g. "gzstamp <prog file path>"
	Msg   string
}

func (e *UsageError) Error() string {
	if e.Msg == "" {
		return "Usage: " + e.Usage
	}
	return e.Msg
}

// FileNotFoundError reports a referenced input that does not exist. Each tool
// picks its own exit code for it.
type FileNotFoundError struct {
	Path string
	Code int
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("File %s not found", e.Path)
}

// NewUsageError creates a usage error for the given usage line
func NewUsageError(usage, msg string) error {
	return &UsageError{Usage: usage, Msg: msg}
}

// Classify converts a domain error into the CLI taxonomy: not-found errors
// become FileNotFoundError with code, usage errors pass through and anything
// else becomes a fatal error carrying a stack trace.
func Classify(err error, notFoundCode int) error {
	if err == nil {
		return nil
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return err
	}

	var notFound *FileNotFoundError
	if errors.As(err, &notFound) {
		return err
	}

	var missing *entities.NotFoundError
	if errors.As(err, &missing) {
		return &FileNotFoundError{Path: missing.Path, Code: notFoundCode}
	}

	return errors.WithStack(err)
}

// Report prints err in the form its class calls for and returns the exit code.
// Fatal errors are printed with their stack trace.
func Report(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		if usageErr.Msg != "" {
			fmt.Fprintf(stderr, "Error: %s\n", usageErr.Msg)
		}
		fmt.Fprintf(stdout, "Usage: %s\n", usageErr.Usage)
		return ExitUsage
	}

	var notFound *FileNotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintln(stdout, notFound.Error())
		return notFound.Code
	}

	fmt.Fprintf(stderr, "Fatal: %+v\n", err)
	return ExitFatal
}
