package logging

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// smallWriter returns a writer that rotates after maxBytes.
func smallWriter(t *testing.T, maxBytes int64, cfg RotationConfig) (*RotatingWriter, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", FileName)
	w, err := NewRotatingWriter(path, cfg)
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	w.maxBytes = maxBytes
	t.Cleanup(func() { w.Close() })
	return w, path
}

func fileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestRotatingWriter_NoRotationBelowLimit(t *testing.T) {
	w, path := smallWriter(t, 100, RotationConfig{MaxBackups: 2})

	w.Write([]byte("first\n"))
	w.Write([]byte("second\n"))

	if got := fileContent(t, path); got != "first\nsecond\n" {
		t.Errorf("log = %q", got)
	}
	if w.Size() != int64(len("first\nsecond\n")) {
		t.Errorf("Size() = %d", w.Size())
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("no backup expected below the limit")
	}
}

func TestRotatingWriter_RotatesAndKeepsBackups(t *testing.T) {
	w, path := smallWriter(t, 10, RotationConfig{MaxBackups: 2})

	for _, line := range []string{"aaaaaaaa\n", "bbbbbbbb\n", "cccccccc\n", "dddddddd\n"} {
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if got := fileContent(t, path); got != "dddddddd\n" {
		t.Errorf("current = %q", got)
	}
	if got := fileContent(t, path+".1"); got != "cccccccc\n" {
		t.Errorf("backup 1 = %q", got)
	}
	if got := fileContent(t, path+".2"); got != "bbbbbbbb\n" {
		t.Errorf("backup 2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("only two backups should be kept")
	}
}

func TestRotatingWriter_NoBackups(t *testing.T) {
	w, path := smallWriter(t, 10, RotationConfig{})

	w.Write([]byte("aaaaaaaa\n"))
	w.Write([]byte("bbbbbbbb\n"))

	if got := fileContent(t, path); got != "bbbbbbbb\n" {
		t.Errorf("current = %q", got)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("no backups should be kept")
	}
}

func TestRotatingWriter_OversizedEntry(t *testing.T) {
	w, path := smallWriter(t, 4, RotationConfig{MaxBackups: 1})

	// A single entry larger than the limit goes into an empty file as is.
	w.Write([]byte("a long entry\n"))
	if got := fileContent(t, path); got != "a long entry\n" {
		t.Errorf("current = %q", got)
	}
}

func TestRotatingWriter_Compress(t *testing.T) {
	w, path := smallWriter(t, 10, RotationConfig{MaxBackups: 2, Compress: true})

	w.Write([]byte("aaaaaaaa\n"))
	w.Write([]byte("bbbbbbbb\n"))
	w.Write([]byte("cccccccc\n"))

	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("uncompressed backup should be replaced by its .gz")
	}
	for n, want := range map[string]string{".1.gz": "bbbbbbbb\n", ".2.gz": "aaaaaaaa\n"} {
		f, err := os.Open(path + n)
		if err != nil {
			t.Fatalf("opening %s: %v", n, err)
		}
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			t.Fatalf("gzip reader for %s: %v", n, err)
		}
		data, _ := io.ReadAll(zr)
		f.Close()
		if string(data) != want {
			t.Errorf("%s = %q, want %q", n, data, want)
		}
	}
}

func TestRotatingWriter_Close(t *testing.T) {
	w, _ := smallWriter(t, 0, DefaultRotation())

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Error("Write() after Close() should fail")
	}
}

func TestNewLogger_Rotation(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelInfo, RotationConfig{MaxBackups: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()
	logger.file.maxBytes = 1

	logger.Info("one")
	logger.Info("two")

	if got := fileContent(t, filepath.Join(dir, FileName)); !strings.Contains(got, `"msg":"two"`) {
		t.Errorf("current = %q", got)
	}
	if got := fileContent(t, filepath.Join(dir, FileName+".1")); !strings.Contains(got, `"msg":"one"`) {
		t.Errorf("backup = %q", got)
	}
}
