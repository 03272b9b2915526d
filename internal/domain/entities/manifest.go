package entities

import "sort"

// Manifest maps program base names to the versions already packaged, in the
// order they were recorded
type Manifest map[string][]string

// NewManifest creates an empty manifest
func NewManifest() Manifest {
	return make(Manifest)
}

// Ensure makes sure program has an entry, creating an empty one if needed
func (m Manifest) Ensure(program string) {
	if _, ok := m[program]; !ok {
		m[program] = []string{}
	}
}

// Has reports whether version is recorded for program
func (m Manifest) Has(program, version string) bool {
	for _, v := range m[program] {
		if v == version {
			return true
		}
	}
	return false
}

// Add appends version to program's history unless already present.
// It returns true when the manifest changed.
func (m Manifest) Add(program, version string) bool {
	m.Ensure(program)
	if m.Has(program, version) {
		return false
	}
	m[program] = append(m[program], version)
	return true
}

// Programs returns the recorded program names, sorted
func (m Manifest) Programs() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Latest returns the highest recorded version for program by semantic
// ordering. Tokens that do not parse are ignored.
func (m Manifest) Latest(program string) (*Version, bool) {
	var latest *Version
	for _, raw := range m[program] {
		v, err := ParseVersion(raw)
		if err != nil {
			continue
		}
		if latest == nil || latest.LessThan(v) {
			latest = v
		}
	}
	return latest, latest != nil
}
