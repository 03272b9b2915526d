package gateways

import (
	"bytes"
	stdgzip "compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestGzipCompressor_CompressFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "tvm_linker")
	content := bytes.Repeat([]byte("\x7fELF binary payload "), 4096)
	if err := os.WriteFile(src, content, 0755); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	c, err := NewGzipCompressor(0, nil)
	if err != nil {
		t.Fatalf("NewGzipCompressor() error = %v", err)
	}

	dst := filepath.Join(tmpDir, "out", "tvm_linker_0_21_0_linux.gz")
	if err := c.CompressFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CompressFile() error = %v", err)
	}

	// decoded with the standard library to check the stream is plain gzip
	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("Failed to open artifact: %v", err)
	}
	defer f.Close()
	zr, err := stdgzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	got, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("decompressed %d bytes, want %d identical bytes", len(got), len(content))
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() >= int64(len(content)) {
		t.Errorf("artifact size %d not smaller than source %d", info.Size(), len(content))
	}
}

func TestGzipCompressor_OverwritesExisting(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "prog")
	dst := filepath.Join(tmpDir, "prog_1_0_0_linux.gz")

	if err := os.WriteFile(src, []byte("new build"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("stale artifact that is not gzip"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := NewGzipCompressor(9, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.CompressFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CompressFile() error = %v", err)
	}

	n, err := c.TestArchive(context.Background(), dst)
	if err != nil {
		t.Fatalf("TestArchive() error = %v", err)
	}
	if n != int64(len("new build")) {
		t.Errorf("TestArchive() = %d bytes, want %d", n, len("new build"))
	}
}

func TestGzipCompressor_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	dst := filepath.Join(tmpDir, "x.gz")

	c, err := NewGzipCompressor(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.CompressFile(context.Background(), filepath.Join(tmpDir, "missing"), dst); err == nil {
		t.Error("CompressFile() with missing source should return error")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("CompressFile() should not create output when source is missing")
	}
}

func TestGzipCompressor_Cancelled(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "prog")
	if err := os.WriteFile(src, []byte("data"), 0755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := NewGzipCompressor(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.CompressFile(ctx, src, filepath.Join(tmpDir, "prog.gz")); err == nil {
		t.Error("CompressFile() with cancelled context should return error")
	}
}

func TestNewGzipCompressor_InvalidLevel(t *testing.T) {
	if _, err := NewGzipCompressor(12, nil); err == nil {
		t.Error("NewGzipCompressor(12) should return error")
	}
}

func TestGzipCompressor_TestArchiveCorrupt(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "prog")
	dst := filepath.Join(tmpDir, "prog.gz")
	if err := os.WriteFile(src, bytes.Repeat([]byte("abc"), 1000), 0755); err != nil {
		t.Fatal(err)
	}

	c, err := NewGzipCompressor(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.CompressFile(context.Background(), src, dst); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	// flip a bit in the CRC32 trailer
	data[len(data)-8] ^= 0xff
	if err := os.WriteFile(dst, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := c.TestArchive(context.Background(), dst); err == nil {
		t.Error("TestArchive() with bad CRC should return error")
	}

	if err := os.WriteFile(dst, []byte("not gzip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.TestArchive(context.Background(), dst); err == nil {
		t.Error("TestArchive() with bad header should return error")
	}
}
