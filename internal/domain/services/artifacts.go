// Package services implements domain operations on artifacts and text files.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/stampkit/internal/domain/entities"
	"github.com/ochairo/stampkit/internal/domain/interfaces"
	"github.com/ochairo/stampkit/internal/domain/interfaces/gateways"
)

// SignatureExtension is appended to an artifact path to name its detached signature
const SignatureExtension = ".asc"

// ArtifactsService generates and verifies the files that accompany a
// compressed artifact: checksum sidecars and a detached signature
type ArtifactsService struct {
	checksums []gateways.ChecksumGateway
	signer    gateways.Signer
	tester    gateways.ArchiveTester
	logger    interfaces.Logger
}

// NewArtifactsService creates a new artifacts service. signer may be nil when
// signing is not configured.
func NewArtifactsService(
	checksums []gateways.ChecksumGateway,
	signer gateways.Signer,
	tester gateways.ArchiveTester,
	logger interfaces.Logger,
) *ArtifactsService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ArtifactsService{
		checksums: checksums,
		signer:    signer,
		tester:    tester,
		logger:    logger,
	}
}

// GenerateChecksums writes one `<artifact>.<algorithm>` sidecar per configured
// algorithm, in sha256sum format
func (s *ArtifactsService) GenerateChecksums(artifact *entities.Artifact) ([]*entities.Artifact, error) {
	sidecars := make([]*entities.Artifact, 0, len(s.checksums))

	for _, checksum := range s.checksums {
		sum, err := checksum.CalculateChecksum(artifact.Path)
		if err != nil {
			return sidecars, fmt.Errorf("failed to generate %s: %w", checksum.Algorithm(), err)
		}

		checksumPath := artifact.Path + "." + checksum.Algorithm()
		content := fmt.Sprintf("%s  %s\n", sum, filepath.Base(artifact.Path))

		//nolint:gosec // G306: checksums are published next to the artifact
		if err := os.WriteFile(checksumPath, []byte(content), 0644); err != nil {
			return sidecars, fmt.Errorf("failed to write %s file: %w", checksum.Algorithm(), err)
		}

		s.logger.Debug("checksum written", interfaces.F("path", checksumPath), interfaces.F("sum", sum))
		sidecars = append(sidecars, sidecarOf(artifact, checksumPath, "checksum"))
	}

	return sidecars, nil
}

// Sign writes a detached signature next to the artifact
func (s *ArtifactsService) Sign(artifact *entities.Artifact) (*entities.Artifact, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("signing is not configured")
	}

	sigPath := artifact.Path + SignatureExtension
	if err := s.signer.SignFile(artifact.Path, sigPath); err != nil {
		return nil, err
	}

	s.logger.Debug("signature written", interfaces.F("path", sigPath))
	return sidecarOf(artifact, sigPath, "signature"), nil
}

// CanSign reports whether a signer is configured
func (s *ArtifactsService) CanSign() bool {
	return s.signer != nil
}

// VerificationReport lists what Verify checked
type VerificationReport struct {
	DecodedBytes     int64
	ChecksumsChecked []string
	SignatureChecked bool
}

// Verify checks an artifact: the gzip stream decodes, every checksum sidecar
// present on disk matches, and, when a signer is configured, the detached
// signature verifies. A configured signer with no signature file is an error.
func (s *ArtifactsService) Verify(ctx context.Context, path string) (*VerificationReport, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, entities.FileNotFound(path)
		}
		return nil, fmt.Errorf("failed to stat artifact: %w", err)
	}

	report := &VerificationReport{}

	if s.tester != nil {
		n, err := s.tester.TestArchive(ctx, path)
		if err != nil {
			return report, err
		}
		report.DecodedBytes = n
	}

	for _, checksum := range s.checksums {
		sidecar := path + "." + checksum.Algorithm()
		//nolint:gosec // G304: sidecar path is derived from the artifact path
		data, err := os.ReadFile(sidecar)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return report, fmt.Errorf("failed to read %s: %w", sidecar, err)
		}

		expected, err := parseChecksumLine(string(data))
		if err != nil {
			return report, fmt.Errorf("invalid %s: %w", sidecar, err)
		}
		if err := checksum.VerifyChecksum(ctx, path, expected); err != nil {
			return report, err
		}
		report.ChecksumsChecked = append(report.ChecksumsChecked, checksum.Algorithm())
	}

	if s.signer != nil {
		if err := s.signer.VerifySignatureFromFile(path, path+SignatureExtension); err != nil {
			return report, err
		}
		report.SignatureChecked = true
	}

	return report, nil
}

func sidecarOf(artifact *entities.Artifact, path, kind string) *entities.Artifact {
	return &entities.Artifact{
		Name:     artifact.Name,
		Version:  artifact.Version,
		Platform: artifact.Platform,
		Path:     path,
		Type:     kind,
	}
}

func parseChecksumLine(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty checksum file")
	}
	return fields[0], nil
}
