// Package yaml provides YAML-based parsing of the gzstamp defaults file.
package yaml

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/ochairo/stampkit/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure. Pointer fields distinguish
// "unset" from zero values so only keys present in the file override defaults.
type yamlConfig struct {
	Manifest         *string `yaml:"manifest"`
	OutputDir        *string `yaml:"output_dir"`
	Platform         *string `yaml:"platform"`
	VersionFlag      *string `yaml:"version_flag"`
	VersionPattern   *string `yaml:"version_pattern"`
	VersionTimeout   *string `yaml:"version_timeout"`
	CompressionLevel *int    `yaml:"compression_level"`
	Checksum         *bool   `yaml:"checksum"`
	SignKey          *string `yaml:"sign_key"`
}

// ConfigParser parses YAML defaults files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML defaults file and applies it on top of base
func (p *ConfigParser) ParseFile(filePath string, base entities.StampConfig) (entities.StampConfig, error) {
	//nolint:gosec // G304: filePath is the config file named on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return base, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data, base)
}

// Parse parses YAML bytes and applies them on top of base
func (p *ConfigParser) Parse(data []byte, base entities.StampConfig) (entities.StampConfig, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return base, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := base
	setString(&cfg.ManifestPath, raw.Manifest)
	setString(&cfg.OutputDir, raw.OutputDir)
	setString(&cfg.Platform, raw.Platform)
	setString(&cfg.VersionFlag, raw.VersionFlag)
	setString(&cfg.SignKeyPath, raw.SignKey)

	if raw.VersionPattern != nil {
		if _, err := regexp.Compile(*raw.VersionPattern); err != nil {
			return base, fmt.Errorf("invalid version_pattern: %w", err)
		}
		cfg.VersionPattern = *raw.VersionPattern
	}

	if raw.VersionTimeout != nil {
		d, err := time.ParseDuration(*raw.VersionTimeout)
		if err != nil {
			return base, fmt.Errorf("invalid version_timeout: %w", err)
		}
		if d <= 0 {
			return base, fmt.Errorf("version_timeout must be positive, got %s", d)
		}
		cfg.VersionTimeout = d
	}

	if raw.CompressionLevel != nil {
		if *raw.CompressionLevel < 1 || *raw.CompressionLevel > 9 {
			return base, fmt.Errorf("compression_level must be between 1 and 9, got %d", *raw.CompressionLevel)
		}
		cfg.CompressionLevel = *raw.CompressionLevel
	}

	if raw.Checksum != nil {
		cfg.Checksum = *raw.Checksum
	}

	return cfg, nil
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}
