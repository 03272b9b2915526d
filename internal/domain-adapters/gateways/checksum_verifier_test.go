package gateways

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestVerifyChecksum tests checksum verification for both algorithms
func TestVerifyChecksum(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "tvm_linker_0_21_0_linux.gz")

	content := []byte("Hello, World! This is a test file for checksum verification.")
	if err := os.WriteFile(testFile, content, 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	for _, algorithm := range []string{SHA256, SHA512} {
		t.Run(algorithm, func(t *testing.T) {
			verifier, err := NewChecksumVerifier(algorithm)
			if err != nil {
				t.Fatalf("NewChecksumVerifier(%q) error = %v", algorithm, err)
			}

			actualSum, err := verifier.CalculateChecksum(testFile)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}

			if err := verifier.VerifyChecksum(context.Background(), testFile, actualSum); err != nil {
				t.Errorf("VerifyChecksum() with valid checksum error = %v", err)
			}

			// upper-case hex with a trailing newline, as read from a sidecar
			upper := []byte(actualSum)
			for i, c := range upper {
				if c >= 'a' && c <= 'f' {
					upper[i] = c - 'a' + 'A'
				}
			}
			if err := verifier.VerifyChecksum(context.Background(), testFile, string(upper)+"\n"); err != nil {
				t.Errorf("VerifyChecksum() should ignore case and whitespace, got %v", err)
			}

			if err := verifier.VerifyChecksum(context.Background(), testFile, "0000"); err == nil {
				t.Error("VerifyChecksum() with invalid checksum should return error")
			}

			if err := verifier.VerifyChecksum(context.Background(), "/nonexistent/file.gz", actualSum); err == nil {
				t.Error("VerifyChecksum() with non-existent file should return error")
			}
		})
	}
}

// TestCalculateChecksum checks digests against known values
func TestCalculateChecksum(t *testing.T) {
	tests := []struct {
		name         string
		algorithm    string
		content      []byte
		wantChecksum string
	}{
		{
			name:         "sha256 empty file",
			algorithm:    SHA256,
			content:      []byte(""),
			wantChecksum: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:         "sha256 simple content",
			algorithm:    SHA256,
			content:      []byte("Hello, World!"),
			wantChecksum: "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f",
		},
		{
			name:         "sha512 empty file",
			algorithm:    SHA512,
			content:      []byte(""),
			wantChecksum: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		},
		{
			name:         "sha512 simple content",
			algorithm:    SHA512,
			content:      []byte("Hello, World!"),
			wantChecksum: "374d794a95cdcfd8b35993185fef9ba368f160d8daf432d08ba9f1ed1e5abe6cc69291e0fa2fe0006a52570ef18c19def4e617c33ce52ef0a6e5fbe318cb0387",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "test.bin")
			if err := os.WriteFile(testFile, tt.content, 0600); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			verifier, err := NewChecksumVerifier(tt.algorithm)
			if err != nil {
				t.Fatalf("NewChecksumVerifier() error = %v", err)
			}

			got, err := verifier.CalculateChecksum(testFile)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if got != tt.wantChecksum {
				t.Errorf("CalculateChecksum() = %s, want %s", got, tt.wantChecksum)
			}
		})
	}
}

func TestNewChecksumVerifier(t *testing.T) {
	v, err := NewChecksumVerifier("")
	if err != nil {
		t.Fatalf("NewChecksumVerifier(\"\") error = %v", err)
	}
	if v.Algorithm() != SHA256 {
		t.Errorf("default algorithm = %s, want %s", v.Algorithm(), SHA256)
	}

	v, err = NewChecksumVerifier("SHA512")
	if err != nil {
		t.Fatalf("NewChecksumVerifier(\"SHA512\") error = %v", err)
	}
	if v.Algorithm() != SHA512 {
		t.Errorf("algorithm = %s, want %s", v.Algorithm(), SHA512)
	}

	if _, err := NewChecksumVerifier("md5"); err == nil {
		t.Error("NewChecksumVerifier(\"md5\") should return error")
	}
}
