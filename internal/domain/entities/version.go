package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
)

// DefaultVersionPattern matches a dotted numeric triple such as 1.22.3
const DefaultVersionPattern = `\d+\.\d+\.\d+`

// Version is a version token discovered in program output.
// The raw token is kept verbatim; the parsed form is used only for ordering.
type Version struct {
	raw    string
	parsed *semver.Version
}

// ParseVersion parses a token that must be valid semver, for ordering
func ParseVersion(token string) (*Version, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("empty version token")
	}

	parsed, err := semver.NewVersion(token)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", token, err)
	}

	return &Version{raw: token, parsed: parsed}, nil
}

// NewVersionToken wraps a token that matched the version pattern. The token is
// accepted as is; when it is not valid semver it simply has no ordering.
func NewVersionToken(token string) (*Version, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("empty version token")
	}

	v := &Version{raw: token}
	if parsed, err := semver.NewVersion(token); err == nil {
		v.parsed = parsed
	}
	return v, nil
}

// ExtractVersion returns the first match of pattern in output as a Version
func ExtractVersion(output, pattern string) (*Version, error) {
	if pattern == "" {
		pattern = DefaultVersionPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid version pattern: %w", err)
	}

	match := re.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version matching %s found in output %q", pattern, strings.TrimSpace(output))
	}

	return NewVersionToken(match)
}

// String returns the raw token
func (v *Version) String() string {
	return v.raw
}

// Underscored returns the token with every dot replaced by an underscore
func (v *Version) Underscored() string {
	return strings.ReplaceAll(v.raw, ".", "_")
}

// LessThan reports whether v orders before other. Tokens without a semver
// form order before those with one, and among themselves by raw text.
func (v *Version) LessThan(other *Version) bool {
	switch {
	case v.parsed != nil && other.parsed != nil:
		return v.parsed.LessThan(other.parsed)
	case v.parsed == nil && other.parsed == nil:
		return v.raw < other.raw
	default:
		return v.parsed == nil
	}
}
