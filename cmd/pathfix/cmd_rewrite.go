package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ochairo/stampkit/internal/cli"
	"github.com/ochairo/stampkit/internal/domain-adapters/gateways"
	"github.com/ochairo/stampkit/internal/domain/entities"
	ifservices "github.com/ochairo/stampkit/internal/domain/interfaces/services"
	"github.com/ochairo/stampkit/internal/domain/services"
)

// exitFileNotFound is returned when the target file does not exist
const exitFileNotFound = 1

type rewriteFlags struct {
	normalizePaths bool
	platform       string
	verbose        bool
	logJSON        bool
}

func newRootCmd(name string, stdout, stderr io.Writer) *cobra.Command {
	flags := &rewriteFlags{}
	usage := name + " " + usageArgs

	cmd := &cobra.Command{
		Use:   usage,
		Short: "Replace every match of a pattern in a file with a literal string",
		Long: `Reads <file>, replaces every match of the regular expression <from string>
with <to string> taken literally, and writes the result back in place.
With --normalize-paths the backslashes of <to string> become forward slashes
first, and on Windows a leading drive such as C:\ becomes /c/.
Flags go before <file>; the two strings are taken verbatim even when they
start with a dash.`,
		Example: fmt.Sprintf(`  %[1]s config.toml '/old/prefix' '/new/prefix'
  %[1]s --normalize-paths linker.cfg '@STDLIB@' 'C:\tools\stdlib'`, name),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cli.ExactArgs(3, usage),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.NewLogger(stderr, name, flags.verbose, flags.logJSON)
			var svc ifservices.Rewriter = services.NewRewriteService(
				gateways.NewRegexRewriter(0),
				gateways.NewSlashNormalizer(),
				logger,
			)

			result, err := svc.Rewrite(cmd.Context(), entities.RewriteRequest{
				FilePath:       args[0],
				Pattern:        args[1],
				Replacement:    args[2],
				NormalizePaths: flags.normalizePaths,
				Platform:       flags.platform,
			})
			if err != nil {
				return cli.Classify(err, exitFileNotFound)
			}

			fmt.Fprintf(stdout, "Replaced %d occurrence(s) in %s\n", result.Replacements, result.FilePath)
			return nil
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.NewUsageError(usage, err.Error())
	})

	f := cmd.Flags()
	f.BoolVar(&flags.normalizePaths, "normalize-paths", false, "Turn backslashes in <to string> into forward slashes before replacing")
	f.StringVar(&flags.platform, "platform", runtime.GOOS, "Platform whose path rules --normalize-paths applies (windows or win32 maps drive letters)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	f.BoolVar(&flags.logJSON, "log-json", false, "Write diagnostics as JSON lines")
	// everything after <file> is text, even when it starts with a dash
	f.SetInterspersed(false)

	return cmd
}
