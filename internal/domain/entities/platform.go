package entities

import (
	"path/filepath"
	"strings"
)

// PlatformIdentifier maps a runtime.GOOS value to the platform name used in
// artifact file names. Windows keeps the historical "win32" name so download
// scripts that predate this tool still find their artifacts.
func PlatformIdentifier(goos string) string {
	if goos == "windows" {
		return "win32"
	}
	return goos
}

// ProgramName returns the base name of path without its final extension
func ProgramName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return base
	}
	return name
}
