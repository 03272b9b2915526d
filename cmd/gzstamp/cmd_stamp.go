package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ochairo/stampkit/internal/cli"
	"github.com/ochairo/stampkit/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/stampkit/internal/domain-orchestrators"
	"github.com/ochairo/stampkit/internal/domain/entities"
	"github.com/ochairo/stampkit/internal/domain/interfaces"
	ifgateways "github.com/ochairo/stampkit/internal/domain/interfaces/gateways"
	ifservices "github.com/ochairo/stampkit/internal/domain/interfaces/services"
	"github.com/ochairo/stampkit/internal/domain/services"
	"github.com/ochairo/stampkit/internal/external-adapters/gpg"
	"github.com/ochairo/stampkit/internal/external-adapters/json"
	"github.com/ochairo/stampkit/internal/external-adapters/yaml"
)

// Exit code for a program path that does not exist
const exitProgramNotFound = 2

// stampFlags holds the raw command-line values before they are merged with
// the optional config file
type stampFlags struct {
	configPath     string
	manifest       string
	outputDir      string
	platform       string
	versionFlag    string
	versionTimeout time.Duration
	level          int
	checksum       bool
	signKey        string
	passphraseFile string
	verbose        bool
	logJSON        bool
}

func newRootCmd(name string, stdout, stderr io.Writer) *cobra.Command {
	flags := &stampFlags{}
	usage := name + " " + usageArgs

	cmd := &cobra.Command{
		Use:   usage,
		Short: "Compress a program into a version-stamped gzip artifact",
		Long: `Runs the program with --version, takes the first N.N.N token from its output,
writes <name>_<N_N_N>_<platform>.gz and appends the version to the manifest
(tvm_linker.json by default) unless it is already recorded.`,
		Example: fmt.Sprintf(`  %[1]s target/release/tvm_linker
  %[1]s --output-dir dist --checksum ./tvm_linker
  %[1]s --sign-key release.key.asc ./tvm_linker`, name),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cli.ExactArgs(1, usage),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			logger := cli.NewLogger(stderr, name, flags.verbose, flags.logJSON)

			stamper, err := newStamper(cfg, logger, stdout)
			if err != nil {
				return cli.Classify(err, exitProgramNotFound)
			}

			_, err = stamper.Stamp(cmd.Context(), args[0])
			return cli.Classify(err, exitProgramNotFound)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.NewUsageError(usage, err.Error())
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML file with default settings")
	pf.StringVar(&flags.manifest, "manifest", entities.DefaultManifestFile, "Version manifest file")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	pf.BoolVar(&flags.logJSON, "log-json", false, "Write diagnostics as JSON lines")

	f := cmd.Flags()
	f.StringVar(&flags.outputDir, "output-dir", ".", "Directory for the compressed artifact")
	f.StringVar(&flags.platform, "platform", entities.PlatformIdentifier(runtime.GOOS), "Platform identifier used in the artifact name")
	f.StringVar(&flags.versionFlag, "version-flag", entities.DefaultVersionFlag, "Argument that makes the program print its version")
	f.DurationVar(&flags.versionTimeout, "version-timeout", entities.DefaultVersionTimeout, "Time limit for the version probe")
	f.IntVar(&flags.level, "compression-level", entities.DefaultCompressionLevel, "gzip compression level (1-9)")
	f.BoolVar(&flags.checksum, "checksum", false, "Write .sha256 and .sha512 files next to the artifact")
	f.StringVar(&flags.signKey, "sign-key", "", "Armored OpenPGP private key used to write a detached .asc signature")
	f.StringVar(&flags.passphraseFile, "sign-passphrase-file", "", "File holding the passphrase of an encrypted --sign-key")

	cmd.AddCommand(newHistoryCmd(name, stdout), newVerifyCmd(name, stdout))

	return cmd
}

// resolve merges defaults, the config file and explicitly set flags, in that order
func (f *stampFlags) resolve(cmd *cobra.Command) (entities.StampConfig, error) {
	cfg := entities.DefaultStampConfig()
	cfg.Platform = entities.PlatformIdentifier(runtime.GOOS)

	if f.configPath != "" {
		parsed, err := yaml.NewConfigParser().ParseFile(f.configPath, cfg)
		if err != nil {
			return cfg, cli.Classify(err, exitProgramNotFound)
		}
		cfg = parsed
	}

	changed := cmd.Flags().Changed
	if changed("manifest") {
		cfg.ManifestPath = f.manifest
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("platform") {
		cfg.Platform = f.platform
	}
	if changed("version-flag") {
		cfg.VersionFlag = f.versionFlag
	}
	if changed("version-timeout") {
		cfg.VersionTimeout = f.versionTimeout
	}
	if changed("compression-level") {
		if f.level < 1 || f.level > 9 {
			return cfg, cli.NewUsageError(cmd.Use, fmt.Sprintf("--compression-level must be between 1 and 9, got %d", f.level))
		}
		cfg.CompressionLevel = f.level
	}
	if changed("checksum") {
		cfg.Checksum = f.checksum
	}
	if changed("sign-key") {
		cfg.SignKeyPath = f.signKey
	}

	if f.passphraseFile != "" {
		data, err := os.ReadFile(f.passphraseFile)
		if err != nil {
			return cfg, cli.Classify(fmt.Errorf("failed to read passphrase file: %w", err), exitProgramNotFound)
		}
		cfg.SignPassphrase = []byte(strings.TrimRight(string(data), "\r\n"))
	}

	return cfg, nil
}

// newStamper wires the gateways and services a stamping run needs
func newStamper(cfg entities.StampConfig, logger interfaces.Logger, stdout io.Writer) (ifservices.Stamper, error) {
	probe := gateways.NewVersionProbe(cfg.VersionFlag, cfg.VersionPattern, cfg.VersionTimeout, logger)

	compressor, err := gateways.NewGzipCompressor(cfg.CompressionLevel, logger)
	if err != nil {
		return nil, err
	}

	var artifacts *services.ArtifactsService
	if cfg.Checksum || cfg.SignKeyPath != "" {
		var signer ifgateways.Signer
		if cfg.SignKeyPath != "" {
			s := gpg.NewSigner()
			if err := s.ImportPrivateKeyFromFile(cfg.SignKeyPath, cfg.SignPassphrase); err != nil {
				return nil, fmt.Errorf("failed to load signing key: %w", err)
			}
			signer = s
		}

		checksums, err := checksumGateways()
		if err != nil {
			return nil, err
		}
		artifacts = services.NewArtifactsService(checksums, signer, compressor, logger)
	}

	return orchestrators.NewStampOrchestrator(
		probe,
		compressor,
		json.NewManifestStore(cfg.ManifestPath),
		artifacts,
		logger,
		orchestrators.StampOrchestratorConfig{
			OutputDir: cfg.OutputDir,
			Platform:  cfg.Platform,
			Checksum:  cfg.Checksum,
			Out:       stdout,
		},
	), nil
}

func checksumGateways() ([]ifgateways.ChecksumGateway, error) {
	algorithms := []string{gateways.SHA256, gateways.SHA512}
	out := make([]ifgateways.ChecksumGateway, 0, len(algorithms))
	for _, algorithm := range algorithms {
		verifier, err := gateways.NewChecksumVerifier(algorithm)
		if err != nil {
			return nil, err
		}
		out = append(out, verifier)
	}
	return out, nil
}
