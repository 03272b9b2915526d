package yaml

import (
	"testing"

	"github.com/ochairo/stampkit/internal/domain/entities"
)

// FuzzConfigParser checks the parser never panics on malformed input.
//
// Run with: go test -fuzz=FuzzConfigParser -fuzztime=30s
func FuzzConfigParser(f *testing.F) {
	f.Add([]byte(`manifest: tvm_linker.json
output_dir: dist
compression_level: 9
checksum: true
`))
	f.Add([]byte(`version_timeout: 10s`))
	f.Add([]byte(`version_pattern: '\d+'`))
	f.Add([]byte(`{`))
	f.Add([]byte(``))

	parser := NewConfigParser()
	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, err := parser.Parse(data, entities.DefaultStampConfig())
		if err != nil {
			return
		}
		if cfg.CompressionLevel < 1 || cfg.CompressionLevel > 9 {
			t.Errorf("accepted compression level %d", cfg.CompressionLevel)
		}
		if cfg.VersionTimeout <= 0 {
			t.Errorf("accepted non-positive timeout %s", cfg.VersionTimeout)
		}
	})
}
