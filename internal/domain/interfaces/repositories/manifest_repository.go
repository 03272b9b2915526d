// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/stampkit/internal/domain/entities"
)

// ManifestRepository defines the interface for the version manifest store
type ManifestRepository interface {
	// Load reads the manifest, returning an empty one when none exists yet
	Load(ctx context.Context) (entities.Manifest, error)

	// Save replaces the stored manifest with m
	Save(ctx context.Context, m entities.Manifest) error

	// Path returns where the manifest lives
	Path() string
}
