package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExactArgs rejects any positional argument count other than n with a UsageError
func ExactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return NewUsageError(usage, argCountMsg(n, len(args)))
		}
		return nil
	}
}

// MaximumArgs rejects more than n positional arguments with a UsageError
func MaximumArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > n {
			return NewUsageError(usage, fmt.Sprintf("accepts at most %d arg(s), received %d", n, len(args)))
		}
		return nil
	}
}

func argCountMsg(want, got int) string {
	if got < want {
		// too few arguments print only the usage line
		return ""
	}
	return fmt.Sprintf("accepts %d arg(s), received %d", want, got)
}
