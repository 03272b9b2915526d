package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/stampkit/internal/domain/entities"
)

func TestClassify(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil, 2))
	})

	t.Run("usage passes through", func(t *testing.T) {
		in := NewUsageError("gzstamp <prog file path>", "")
		assert.Same(t, in, Classify(in, 2))
	})

	t.Run("wrapped not found", func(t *testing.T) {
		err := Classify(fmt.Errorf("stamping: %w", entities.FileNotFound("/tmp/prog")), 2)

		var notFound *FileNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "/tmp/prog", notFound.Path)
		assert.Equal(t, 2, notFound.Code)
	})

	t.Run("anything else is fatal with a stack", func(t *testing.T) {
		err := Classify(fmt.Errorf("version extraction failed"), 2)
		assert.Contains(t, fmt.Sprintf("%+v", err), "TestClassify")
	})
}

func TestReport(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:     "success",
			err:      nil,
			wantCode: ExitOK,
		},
		{
			name:       "usage",
			err:        NewUsageError("pathfix <file> <from string> <to string>", ""),
			wantCode:   ExitUsage,
			wantStdout: "Usage: pathfix <file> <from string> <to string>\n",
		},
		{
			name:       "usage with message",
			err:        NewUsageError("gzstamp <prog file path>", "accepts 1 arg(s), received 0"),
			wantCode:   ExitUsage,
			wantStdout: "Usage: gzstamp <prog file path>\n",
			wantStderr: "Error: accepts 1 arg(s), received 0\n",
		},
		{
			name:       "not found",
			err:        &FileNotFoundError{Path: "/work/tvm_linker", Code: 2},
			wantCode:   2,
			wantStdout: "File /work/tvm_linker not found\n",
		},
		{
			name:       "fatal",
			err:        errors.New("invalid pattern"),
			wantCode:   ExitFatal,
			wantStderr: "Fatal: invalid pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Report(tt.err, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			if tt.wantStderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}
