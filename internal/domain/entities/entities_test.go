package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		pattern string
		want    string
		wantErr bool
	}{
		{"plain", "tvm_linker 0.1.2\n", "", "0.1.2", false},
		{"first match wins", "tool 1.22.333 (built with 4.5.6)", "", "1.22.333", false},
		{"embedded in longer token", "v10.0.1-rc1", "", "10.0.1", false},
		{"quad keeps first three", "1.2.3.4", "", "1.2.3", false},
		{"segment wider than int64", "tool 99999999999999999999.1.1", "", "99999999999999999999.1.1", false},
		{"custom pattern", "release 2024.01", `\d+\.\d+`, "2024.01", false},
		{"no version", "usage: tool [flags]", "", "", true},
		{"two segments only", "version 1.2", "", "", true},
		{"empty output", "", "", "", true},
		{"bad pattern", "1.2.3", "(", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ExtractVersion(tt.output, tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestVersion_Underscored(t *testing.T) {
	v, err := ParseVersion("0.11.246")
	require.NoError(t, err)
	assert.Equal(t, "0_11_246", v.Underscored())
}

func TestVersion_OversizedToken(t *testing.T) {
	huge, err := ExtractVersion("tool 99999999999999999999.1.1\n", "")
	require.NoError(t, err)
	assert.Equal(t, "99999999999999999999_1_1", huge.Underscored())

	_, err = ParseVersion(huge.String())
	assert.Error(t, err, "ordering still needs a semver token")

	small, err := ParseVersion("1.0.0")
	require.NoError(t, err)
	assert.True(t, huge.LessThan(small))
	assert.False(t, small.LessThan(huge))

	m := Manifest{"tool": {"1.0.0", huge.String()}}
	latest, ok := m.Latest("tool")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", latest.String())
}

func TestVersion_LessThan(t *testing.T) {
	older, err := ParseVersion("0.9.12")
	require.NoError(t, err)
	newer, err := ParseVersion("0.10.0")
	require.NoError(t, err)

	assert.True(t, older.LessThan(newer))
	assert.False(t, newer.LessThan(older))
}

func TestArtifactFileName(t *testing.T) {
	v, err := ParseVersion("1.2.3")
	require.NoError(t, err)

	a := &Artifact{Name: "tvm_linker", Version: v, Platform: "linux"}
	assert.Equal(t, "tvm_linker_1_2_3_linux.gz", a.FileName())
}

func TestManifest_Add(t *testing.T) {
	m := NewManifest()

	assert.True(t, m.Add("tvm_linker", "0.1.0"))
	assert.True(t, m.Add("tvm_linker", "0.2.0"))
	assert.False(t, m.Add("tvm_linker", "0.1.0"), "duplicate version must not be appended")
	assert.True(t, m.Add("tonos-cli", "0.1.0"))

	assert.Equal(t, []string{"0.1.0", "0.2.0"}, m["tvm_linker"])
	assert.Equal(t, []string{"0.1.0"}, m["tonos-cli"])
	assert.Equal(t, []string{"tonos-cli", "tvm_linker"}, m.Programs())
}

func TestManifest_Ensure(t *testing.T) {
	m := Manifest{"existing": {"1.0.0"}}

	m.Ensure("existing")
	m.Ensure("fresh")

	assert.Equal(t, []string{"1.0.0"}, m["existing"])
	assert.NotNil(t, m["fresh"])
	assert.Empty(t, m["fresh"])
}

func TestManifest_Latest(t *testing.T) {
	m := Manifest{"prog": {"0.9.0", "0.10.2", "0.10.1", "garbage"}}

	latest, ok := m.Latest("prog")
	require.True(t, ok)
	assert.Equal(t, "0.10.2", latest.String())

	_, ok = m.Latest("missing")
	assert.False(t, ok)
}

func TestPlatformIdentifier(t *testing.T) {
	assert.Equal(t, "linux", PlatformIdentifier("linux"))
	assert.Equal(t, "darwin", PlatformIdentifier("darwin"))
	assert.Equal(t, "win32", PlatformIdentifier("windows"))
}

func TestProgramName(t *testing.T) {
	assert.Equal(t, "tvm_linker", ProgramName("/opt/bin/tvm_linker"))
	assert.Equal(t, "tvm_linker", ProgramName(`target/release/tvm_linker.exe`))
	assert.Equal(t, "tonos-cli", ProgramName("tonos-cli"))
	assert.Equal(t, ".hidden", ProgramName("dir/.hidden"))
}

func TestFileNotFound(t *testing.T) {
	err := FileNotFound("/tmp/nope")
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Contains(t, err.Error(), "/tmp/nope")
}
