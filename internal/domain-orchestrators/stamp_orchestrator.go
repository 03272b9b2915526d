// Package orchestrators coordinates workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ochairo/stampkit/internal/domain/entities"
	"github.com/ochairo/stampkit/internal/domain/interfaces"
	"github.com/ochairo/stampkit/internal/domain/interfaces/gateways"
	"github.com/ochairo/stampkit/internal/domain/interfaces/repositories"
	"github.com/ochairo/stampkit/internal/domain/services"
)

// StampOrchestrator coordinates the compress-and-record workflow
type StampOrchestrator struct {
	probe      gateways.VersionProbe
	compressor gateways.Compressor
	manifests  repositories.ManifestRepository
	artifacts  *services.ArtifactsService
	logger     interfaces.Logger
	out        io.Writer
	outputDir  string
	platform   string
	checksum   bool
}

// StampOrchestratorConfig holds configuration for the orchestrator
type StampOrchestratorConfig struct {
	OutputDir string
	Platform  string
	Checksum  bool
	Out       io.Writer // progress lines; defaults to io.Discard
}

// NewStampOrchestrator creates a new stamp orchestrator. artifacts may be nil
// when neither checksums nor signatures are wanted.
func NewStampOrchestrator(
	probe gateways.VersionProbe,
	compressor gateways.Compressor,
	manifests repositories.ManifestRepository,
	artifacts *services.ArtifactsService,
	logger interfaces.Logger,
	config StampOrchestratorConfig,
) *StampOrchestrator {
	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	out := config.Out
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &StampOrchestrator{
		probe:      probe,
		compressor: compressor,
		manifests:  manifests,
		artifacts:  artifacts,
		logger:     logger,
		out:        &syncWriter{w: out},
		outputDir:  outputDir,
		platform:   config.Platform,
		checksum:   config.Checksum,
	}
}

// Stamp compresses the program at programPath into a version-stamped gzip
// artifact and records the version in the manifest.
// Compression and the manifest update run concurrently; both must succeed.
func (o *StampOrchestrator) Stamp(ctx context.Context, programPath string) (*entities.StampResult, error) {
	startTime := time.Now()

	// Step 1: Resolve and check the program
	absPath, err := filepath.Abs(programPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", programPath, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, entities.FileNotFound(absPath)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", absPath, err)
	}
	name := entities.ProgramName(absPath)

	// Step 2: Ask the program for its version
	probeStart := time.Now()
	version, err := o.probe.ProbeVersion(ctx, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect version of %s: %w", name, err)
	}
	fmt.Fprintf(o.out, "Version: %s\n", version)

	artifact := &entities.Artifact{
		Name:     name,
		Version:  version,
		Platform: o.platform,
		Type:     "gzip",
	}
	artifact.Path = filepath.Join(o.outputDir, artifact.FileName())

	result := &entities.StampResult{
		Artifact:      artifact,
		ManifestPath:  o.manifests.Path(),
		ProbeDuration: time.Since(probeStart),
	}

	// Step 3: Compress and record the version side by side
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := o.compressor.CompressFile(egCtx, absPath, artifact.Path); err != nil {
			return fmt.Errorf("compression failed: %w", err)
		}
		fmt.Fprintf(o.out, "File %s was successfully produced\n", artifact.Path)
		return nil
	})

	eg.Go(func() error {
		updated, err := o.recordVersion(egCtx, name, version)
		if err != nil {
			return fmt.Errorf("manifest update failed: %w", err)
		}
		result.ManifestUpdated = updated
		if updated {
			fmt.Fprintf(o.out, "%s was updated\n", o.manifests.Path())
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return result, err
	}

	// Step 4: Checksums and signature over the finished artifact
	if o.artifacts != nil {
		sidecars, err := o.publishSidecars(artifact)
		result.Sidecars = sidecars
		if err != nil {
			return result, err
		}
	}

	result.TotalDuration = time.Since(startTime)
	o.logger.Info("artifact stamped",
		interfaces.F("artifact", artifact.Path),
		interfaces.F("version", version.String()),
		interfaces.F("manifest_updated", result.ManifestUpdated),
		interfaces.F("duration", result.TotalDuration))

	return result, nil
}

// recordVersion appends version to the program's manifest entry. Nothing is
// written when the version is already recorded.
func (o *StampOrchestrator) recordVersion(ctx context.Context, program string, version *entities.Version) (bool, error) {
	manifest, err := o.manifests.Load(ctx)
	if err != nil {
		return false, err
	}

	if !manifest.Add(program, version.String()) {
		o.logger.Debug("version already recorded",
			interfaces.F("program", program),
			interfaces.F("version", version.String()))
		return false, nil
	}

	if err := o.manifests.Save(ctx, manifest); err != nil {
		return false, err
	}

	return true, nil
}

func (o *StampOrchestrator) publishSidecars(artifact *entities.Artifact) ([]*entities.Artifact, error) {
	var sidecars []*entities.Artifact

	if o.checksum {
		sums, err := o.artifacts.GenerateChecksums(artifact)
		sidecars = append(sidecars, sums...)
		if err != nil {
			return sidecars, err
		}
	}

	if o.artifacts.CanSign() {
		sig, err := o.artifacts.Sign(artifact)
		if err != nil {
			return sidecars, fmt.Errorf("signing failed: %w", err)
		}
		sidecars = append(sidecars, sig)
	}

	for _, s := range sidecars {
		fmt.Fprintf(o.out, "  - %s\n", filepath.Base(s.Path))
	}

	return sidecars, nil
}

// syncWriter serializes progress lines written from the concurrent steps
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
