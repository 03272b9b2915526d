// Package main provides pathfix, which replaces every match of a pattern in a
// text file with a literal string, optionally normalizing path separators in
// the replacement first.
package main

import (
	"context"
	"io"
	"os"

	"github.com/ochairo/stampkit/internal/cli"
)

const usageArgs = "<file> <from string> <to string>"

func main() {
	ctx, cancel := cli.SignalContext()
	code := run(ctx, cli.ProgramName("pathfix"), os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(name, stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return cli.Report(root.ExecuteContext(ctx), stdout, stderr)
}
