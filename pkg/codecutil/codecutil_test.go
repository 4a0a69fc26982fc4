// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codecutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const content = "mk -v build main.c\n# comment\nmk --tags a b build x\n"

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error: %v", path, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll(%s) error: %v", path, err)
	}
	return string(b)
}

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "argv.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := readAll(t, path); got != content {
		t.Errorf("Open plain = %q, want %q", got, content)
	}
}

// writeZstd writes data to path as a single zstd frame.
func writeZstd(t *testing.T, path, data string) {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter error: %v", err)
	}
	defer enc.Close()
	if err := os.WriteFile(path, enc.EncodeAll([]byte(data), nil), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenZstd(t *testing.T) {
	packed := filepath.Join(t.TempDir(), "argv.txt.zst")
	writeZstd(t, packed, content)
	if got := readAll(t, packed); got != content {
		t.Errorf("Open zstd = %q, want %q", got, content)
	}
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "argv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if got := readAll(t, path); got != content {
		t.Errorf("Open gzip = %q, want %q", got, content)
	}
}

func TestOpenShortAndEmpty(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{"empty": "", "short": "a"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if got := readAll(t, path); got != data {
			t.Errorf("Open(%s) = %q, want %q", name, got, data)
		}
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); !os.IsNotExist(err) {
		t.Errorf("Open(missing) error = %v, want not exist", err)
	}
}
