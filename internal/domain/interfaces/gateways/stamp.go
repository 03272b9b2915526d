// Package gateways defines the contracts for infrastructure the domain
// services drive: subprocesses, compression, hashing and signing.
package gateways

import (
	"context"

	"github.com/ochairo/stampkit/internal/domain/entities"
)

// VersionProbe discovers the version of an executable by running it
type VersionProbe interface {
	ProbeVersion(ctx context.Context, programPath string) (*entities.Version, error)
}

// Compressor streams a source file into a compressed destination
type Compressor interface {
	CompressFile(ctx context.Context, srcPath, dstPath string) error
}

// ArchiveTester decodes a compressed artifact end to end, checking its integrity
type ArchiveTester interface {
	TestArchive(ctx context.Context, path string) (int64, error)
}

// ChecksumGateway computes file digests
type ChecksumGateway interface {
	Algorithm() string
	CalculateChecksum(filePath string) (string, error)
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error
}

// Signer produces and checks detached signatures over artifacts
type Signer interface {
	SignFile(filePath, sigPath string) error
	VerifySignatureFromFile(filePath, sigPath string) error
}
