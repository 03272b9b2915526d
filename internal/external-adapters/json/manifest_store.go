// Package json provides the JSON-file backed version manifest.
package json

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/stampkit/internal/domain/entities"
)

// ManifestStore implements repositories.ManifestRepository on a single JSON file
type ManifestStore struct {
	path string
}

// NewManifestStore creates a manifest store backed by path
func NewManifestStore(path string) *ManifestStore {
	return &ManifestStore{path: path}
}

// Path returns the manifest file location
func (s *ManifestStore) Path() string {
	return s.path
}

// Load reads the manifest. A missing file yields an empty manifest.
func (s *ManifestStore) Load(_ context.Context) (entities.Manifest, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entities.NewManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat manifest: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("manifest %s is not a regular file", s.path)
	}

	//nolint:gosec // G304: manifest path is chosen by the invoking pipeline
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m entities.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", s.path, err)
	}
	if m == nil {
		m = entities.NewManifest()
	}

	return m, nil
}

// Save writes the whole manifest. The new content goes to a temporary file in
// the same directory which then replaces the manifest, so readers never see a
// half-written file.
func (s *ManifestStore) Save(_ context.Context, m entities.Manifest) (err error) {
	data, err := encode(m)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary manifest: %w", err)
	}
	defer func() {
		if err != nil {
			//nolint:errcheck // Best effort cleanup of the temporary file
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		//nolint:errcheck // Write error takes precedence
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		//nolint:errcheck // Sync error takes precedence
		tmp.Close()
		return fmt.Errorf("failed to sync manifest: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close manifest: %w", err)
	}
	//nolint:gosec // G302: manifest is a shared build record, not a secret
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set manifest permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace manifest: %w", err)
	}

	return nil
}

// encode renders m as compact JSON with `<`, `>` and `&` left as they are.
// Program names come out in sorted order.
func encode(m entities.Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
