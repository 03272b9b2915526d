package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ochairo/stampkit/internal/cli"
	"github.com/ochairo/stampkit/internal/domain/entities"
	"github.com/ochairo/stampkit/internal/external-adapters/json"
	"github.com/ochairo/stampkit/internal/external-adapters/yaml"
)

func newHistoryCmd(name string, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "history [program]",
		Short: "List the versions recorded in the manifest",
		Args:  cli.MaximumArgs(1, name+" history [program]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, err := manifestPathFor(cmd)
			if err != nil {
				return err
			}

			manifest, err := json.NewManifestStore(manifestPath).Load(cmd.Context())
			if err != nil {
				return cli.Classify(err, exitProgramNotFound)
			}

			programs := manifest.Programs()
			if len(args) == 1 {
				if _, ok := manifest[args[0]]; !ok {
					return cli.Classify(fmt.Errorf("program %s is not recorded in %s", args[0], manifestPath), exitProgramNotFound)
				}
				programs = []string{args[0]}
			}

			if len(programs) == 0 {
				fmt.Fprintf(stdout, "No versions recorded in %s\n", manifestPath)
				return nil
			}

			printHistory(stdout, manifest, programs)
			return nil
		},
	}
}

func printHistory(w io.Writer, manifest entities.Manifest, programs []string) {
	for _, program := range programs {
		fmt.Fprintf(w, "📦 %s", program)
		if latest, ok := manifest.Latest(program); ok {
			fmt.Fprintf(w, " (latest %s)", latest)
		}
		fmt.Fprintln(w)
		for _, v := range manifest[program] {
			fmt.Fprintf(w, "  - %s\n", v)
		}
	}
}

// manifestPathFor reads --manifest, falling back to the config file when the
// flag was not given
func manifestPathFor(cmd *cobra.Command) (string, error) {
	flags := cmd.Flags()
	manifestPath, err := flags.GetString("manifest")
	if err != nil {
		return "", err
	}
	if flags.Changed("manifest") {
		return manifestPath, nil
	}

	configPath, err := flags.GetString("config")
	if err != nil || configPath == "" {
		return manifestPath, err
	}

	cfg, err := yaml.NewConfigParser().ParseFile(configPath, entities.DefaultStampConfig())
	if err != nil {
		return "", cli.Classify(err, exitProgramNotFound)
	}
	return cfg.ManifestPath, nil
}
