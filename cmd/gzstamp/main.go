// Package main provides gzstamp, which compresses a built program into a
// version-stamped gzip artifact and records the version in a JSON manifest.
package main

import (
	"context"
	"io"
	"os"

	"github.com/ochairo/stampkit/internal/cli"
)

const usageArgs = "<prog file path>"

func main() {
	ctx, cancel := cli.SignalContext()
	code := run(ctx, cli.ProgramName("gzstamp"), os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(name, stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return cli.Report(err, stdout, stderr)
}
