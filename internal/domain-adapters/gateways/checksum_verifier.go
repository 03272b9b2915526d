package gateways

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Supported checksum algorithms
const (
	SHA256 = "sha256"
	SHA512 = "sha512"
)

// checksumVerifier implements checksum calculation and verification using pure Go
type checksumVerifier struct {
	algorithm string
	newHash   func() hash.Hash
}

// NewChecksumVerifier creates a checksum verifier for the named algorithm
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier(algorithm string) (*checksumVerifier, error) {
	switch strings.ToLower(algorithm) {
	case SHA256, "":
		return &checksumVerifier{algorithm: SHA256, newHash: sha256.New}, nil
	case SHA512:
		return &checksumVerifier{algorithm: SHA512, newHash: sha512.New}, nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}

// Algorithm returns the algorithm name, which doubles as the sidecar extension
func (v *checksumVerifier) Algorithm() string {
	return v.algorithm
}

// VerifyChecksum verifies a file's checksum against a hex digest
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	actualSum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actualSum, strings.TrimSpace(expectedSum)) {
		return fmt.Errorf("%s checksum mismatch: expected %s, got %s", v.algorithm, expectedSum, actualSum)
	}

	return nil
}

// CalculateChecksum calculates the hex digest of a file
func (v *checksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := v.newHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
