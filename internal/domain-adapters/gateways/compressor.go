package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/ochairo/stampkit/internal/domain/interfaces"
)

// GzipCompressor compresses single files into gzip streams
type GzipCompressor struct {
	level  int
	logger interfaces.Logger
}

// NewGzipCompressor creates a compressor writing at the given gzip level.
// Level 0 selects gzip.BestCompression.
func NewGzipCompressor(level int, logger interfaces.Logger) (*GzipCompressor, error) {
	if level == 0 {
		level = gzip.BestCompression
	}
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		return nil, fmt.Errorf("invalid gzip level %d", level)
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &GzipCompressor{level: level, logger: logger}, nil
}

// CompressFile streams srcPath through gzip into dstPath. An existing file at
// dstPath is removed first. The call returns only after the gzip stream and the
// destination file are closed, so the output is complete on success.
func (c *GzipCompressor) CompressFile(ctx context.Context, srcPath, dstPath string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	//nolint:gosec // G304: srcPath is the program the user asked to compress
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer src.Close()

	if err := os.Remove(dstPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove previous artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	//nolint:gosec // G304: dstPath is constructed for artifact output
	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close artifact file: %w", closeErr)
		}
	}()

	gzipWriter, err := gzip.NewWriterLevel(dst, c.level)
	if err != nil {
		return fmt.Errorf("failed to create gzip writer: %w", err)
	}

	written, err := io.Copy(gzipWriter, &contextReader{ctx: ctx, r: src})
	if err != nil {
		//nolint:errcheck // The copy error is the one worth reporting
		gzipWriter.Close()
		return fmt.Errorf("failed to compress %s: %w", filepath.Base(srcPath), err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}

	c.logger.Debug("compressed file",
		interfaces.F("src", srcPath),
		interfaces.F("dst", dstPath),
		interfaces.F("bytes_in", written),
		interfaces.F("level", c.level))

	return nil
}

// contextReader stops a copy once its context is cancelled
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

// TestArchive decompresses path to nowhere and returns the decoded size.
// Reading to EOF makes the gzip reader check the trailer CRC and length.
func (c *GzipCompressor) TestArchive(ctx context.Context, path string) (int64, error) {
	//nolint:gosec // G304: path is the artifact under verification
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	gzipReader, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("failed to read gzip header: %w", err)
	}
	//nolint:errcheck // Defer close
	defer gzipReader.Close()

	n, err := io.Copy(io.Discard, &contextReader{ctx: ctx, r: gzipReader})
	if err != nil {
		return n, fmt.Errorf("corrupt gzip stream: %w", err)
	}

	return n, nil
}
