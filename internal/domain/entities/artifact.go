// Package entities defines core domain models and data structures.
package entities

import (
	"strings"
	"time"
)

// Artifact represents a compressed, version-stamped build output
type Artifact struct {
	Name     string // program base name, without extension
	Version  *Version
	Platform string
	Path     string
	Type     string // "gzip", "checksum", "signature"
}

// FileName returns the artifact file name: <name>_<ver_with_underscores>_<platform>.gz
func (a *Artifact) FileName() string {
	return ArtifactFileName(a.Name, a.Version, a.Platform)
}

// ArtifactFileName builds the versioned, platform-named gzip file name
func ArtifactFileName(name string, version *Version, platform string) string {
	return strings.Join([]string{name, version.Underscored(), platform}, "_") + ".gz"
}

// StampResult describes everything a compression run produced
type StampResult struct {
	Artifact        *Artifact
	ManifestPath    string
	ManifestUpdated bool
	Sidecars        []*Artifact // checksum and signature files, in creation order
	ProbeDuration   time.Duration
	TotalDuration   time.Duration
}
