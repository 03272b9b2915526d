package entities

import "time"

// Defaults used when neither flags nor a config file set a value
const (
	DefaultManifestFile     = "tvm_linker.json"
	DefaultVersionFlag      = "--version"
	DefaultCompressionLevel = 9
	DefaultVersionTimeout   = time.Minute
)

// StampConfig holds the settings of a compression run
type StampConfig struct {
	ManifestPath     string
	OutputDir        string
	Platform         string
	VersionFlag      string
	VersionPattern   string
	VersionTimeout   time.Duration
	CompressionLevel int
	Checksum         bool
	SignKeyPath      string
	SignPassphrase   []byte
}

// DefaultStampConfig returns the settings that reproduce the plain tool behavior
func DefaultStampConfig() StampConfig {
	return StampConfig{
		ManifestPath:     DefaultManifestFile,
		OutputDir:        ".",
		VersionFlag:      DefaultVersionFlag,
		VersionPattern:   DefaultVersionPattern,
		VersionTimeout:   DefaultVersionTimeout,
		CompressionLevel: DefaultCompressionLevel,
	}
}
