package gateways

import (
	"strings"
	"unicode"
)

// PlatformWindows is the runtime.GOOS value that enables drive-letter rewriting
const PlatformWindows = "windows"

// SlashNormalizer converts Windows-style paths into forward-slash paths
type SlashNormalizer struct{}

// NewSlashNormalizer creates a new path normalizer
func NewSlashNormalizer() *SlashNormalizer {
	return &SlashNormalizer{}
}

// Normalize rewrites value for embedding in cross-platform text.
// On windows a leading `X:\` becomes `/x/`; on every platform each remaining
// backslash becomes a forward slash.
func (n *SlashNormalizer) Normalize(value, platform string) string {
	if isWindows(platform) {
		value = rewriteDriveLetter(value)
	}
	return strings.ReplaceAll(value, `\`, "/")
}

func isWindows(platform string) bool {
	switch strings.ToLower(platform) {
	case PlatformWindows, "win32":
		return true
	}
	return false
}

func rewriteDriveLetter(value string) string {
	if len(value) < 3 || value[1] != ':' || value[2] != '\\' {
		return value
	}
	letter := rune(value[0])
	if letter > unicode.MaxASCII || !unicode.IsLetter(letter) {
		return value
	}
	return "/" + string(unicode.ToLower(letter)) + "/" + value[3:]
}
