package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mediapair/internal/mediafiles"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x42}, int(size)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MediaHandles writes one small file per name into dir and returns their
// handles in the same order. Subtitle names get a minimal SubRip body.
func MediaHandles(t testing.TB, dir string, names ...string) []mediafiles.Handle {
	t.Helper()

	handles := make([]mediafiles.Handle, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if mediafiles.KindOf(name) == mediafiles.KindSubtitle {
			WriteText(t, path, "1\n00:00:01,000 --> 00:00:02,000\n"+name+"\n")
		} else {
			WriteFile(t, path, 1024)
		}
		h, err := mediafiles.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		handles = append(handles, h)
	}
	return handles
}
