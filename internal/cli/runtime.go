package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ochairo/stampkit/internal/domain/interfaces"
	"github.com/ochairo/stampkit/internal/external-adapters/logging"
)

// NewLogger builds the diagnostic logger for a command. Diagnostics go to
// stderr so stdout stays reserved for the step lines build scripts parse.
// jsonLines switches from console text to one JSON object per line.
func NewLogger(stderr io.Writer, program string, verbose, jsonLines bool) interfaces.Logger {
	return logging.New(stderr, logging.Options{Verbose: verbose, JSON: jsonLines, Program: program})
}

// ProgramName is the name the binary was invoked as, for usage lines
func ProgramName(fallback string) string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return fallback
	}
	return filepath.Base(os.Args[0])
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
