package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ochairo/stampkit/internal/cli"
	"github.com/ochairo/stampkit/internal/domain-adapters/gateways"
	ifgateways "github.com/ochairo/stampkit/internal/domain/interfaces/gateways"
	"github.com/ochairo/stampkit/internal/domain/services"
	"github.com/ochairo/stampkit/internal/external-adapters/gpg"
)

func newVerifyCmd(name string, stdout io.Writer) *cobra.Command {
	var keyPath string

	cmd := &cobra.Command{
		Use:   "verify <artifact.gz>",
		Short: "Check an artifact's gzip stream, checksum files and signature",
		Long: `Decodes the artifact end to end, compares it with any .sha256/.sha512 files
next to it and, when --key is given, verifies the detached .asc signature.`,
		Args: cli.ExactArgs(1, name+" verify [--key <public key>] <artifact.gz>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			logger := cli.NewLogger(cmd.ErrOrStderr(), name, verbose, logJSON)

			compressor, err := gateways.NewGzipCompressor(0, logger)
			if err != nil {
				return cli.Classify(err, exitProgramNotFound)
			}
			checksums, err := checksumGateways()
			if err != nil {
				return cli.Classify(err, exitProgramNotFound)
			}

			var signer ifgateways.Signer
			if keyPath != "" {
				s := gpg.NewSigner()
				if err := s.ImportKeyFromFile(keyPath); err != nil {
					return cli.Classify(fmt.Errorf("failed to load verification key: %w", err), exitProgramNotFound)
				}
				signer = s
			}

			svc := services.NewArtifactsService(checksums, signer, compressor, logger)
			report, err := svc.Verify(cmd.Context(), args[0])
			if err != nil {
				return cli.Classify(err, exitProgramNotFound)
			}

			fmt.Fprintf(stdout, "✅ gzip stream OK (%d bytes)\n", report.DecodedBytes)
			if len(report.ChecksumsChecked) > 0 {
				fmt.Fprintf(stdout, "✅ checksums match: %s\n", strings.Join(report.ChecksumsChecked, ", "))
			}
			if report.SignatureChecked {
				fmt.Fprintln(stdout, "✅ signature verified")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyPath, "key", "", "Armored OpenPGP public key to verify the .asc signature with")
	return cmd
}
