package mediafiles_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediapair/internal/logging"
	"mediapair/internal/mediafiles"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func names(handles []mediafiles.Handle) []string {
	out := make([]string, len(handles))
	for i, h := range handles {
		out[i] = h.Name
	}
	return out
}

func TestKindOf(t *testing.T) {
	cases := map[string]mediafiles.Kind{
		"episode.mkv":    mediafiles.KindVideo,
		"episode.SRT":    mediafiles.KindSubtitle,
		"episode.ssa":    mediafiles.KindSubtitle,
		"episode.Ass":    mediafiles.KindSubtitle,
		"episode.srt.7z": mediafiles.KindVideo,
		"noext":          mediafiles.KindVideo,
	}
	for name, want := range cases {
		if got := mediafiles.KindOf(name); got != want {
			t.Fatalf("KindOf(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestClassifyPreservesOrder(t *testing.T) {
	handles := []mediafiles.Handle{
		{Name: "b.mp4"}, {Name: "b.srt"}, {Name: "a.mp4"}, {Name: "a.ASS"},
	}
	videos, subtitles := mediafiles.Classify(handles)
	if got := names(videos); len(got) != 2 || got[0] != "b.mp4" || got[1] != "a.mp4" {
		t.Fatalf("videos = %v", got)
	}
	if got := names(subtitles); len(got) != 2 || got[0] != "b.srt" || got[1] != "a.ASS" {
		t.Fatalf("subtitles = %v", got)
	}
}

func TestPickWalksDirectoriesAndSkipsHidden(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "s01", "e02.mkv"), "video")
	writeFile(t, filepath.Join(root, "s01", "e01.mkv"), "video")
	writeFile(t, filepath.Join(root, "s01", "e01.srt"), "1\n")
	writeFile(t, filepath.Join(root, ".trash", "old.mkv"), "video")
	writeFile(t, filepath.Join(root, ".DS_Store"), "")
	single := filepath.Join(t.TempDir(), "movie.mp4")
	writeFile(t, single, "movie")

	handles, err := mediafiles.Pick(root, single, filepath.Join(root, "s01", "e01.mkv"))
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	got := names(handles)
	want := []string{"e01.mkv", "e01.srt", "e02.mkv", "movie.mp4"}
	if len(got) != len(want) {
		t.Fatalf("Pick = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Pick = %v, want %v", got, want)
		}
	}
	if handles[0].Size != int64(len("video")) {
		t.Fatalf("unexpected size %d", handles[0].Size)
	}
}

func TestPickErrors(t *testing.T) {
	if _, err := mediafiles.Pick(filepath.Join(t.TempDir(), "missing.mkv")); err == nil {
		t.Fatal("expected error for missing path")
	}
	if _, err := mediafiles.Pick(t.TempDir()); !errors.Is(err, mediafiles.ErrNoMedia) {
		t.Fatalf("expected ErrNoMedia, got %v", err)
	}
}

func TestStatNormalizesName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafe\u0301.srt")
	writeFile(t, path, "1\n")
	h, err := mediafiles.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if h.Name != "caf\u00e9.srt" {
		t.Fatalf("name not NFC normalized: %q", h.Name)
	}
	if h.Kind() != mediafiles.KindSubtitle {
		t.Fatalf("kind = %s", h.Kind())
	}
	if _, err := mediafiles.Stat(filepath.Dir(path)); err == nil {
		t.Fatal("Stat should reject directories")
	}
}

func TestDropWatcherEmitsDebouncedBatch(t *testing.T) {
	dir := t.TempDir()
	dw, err := mediafiles.NewDropWatcher(dir, 50*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("NewDropWatcher failed: %v", err)
	}
	defer dw.Close()

	writeFile(t, filepath.Join(dir, "b.mkv"), "video")
	writeFile(t, filepath.Join(dir, "b.srt"), "1\n")
	writeFile(t, filepath.Join(dir, ".partial"), "")

	seen := map[string]bool{}
	deadline := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case batch := <-dw.Batches():
			for _, h := range batch {
				seen[h.Name] = true
			}
		case <-deadline:
			t.Fatalf("timed out waiting for batches, saw %v", seen)
		}
	}
	if !seen["b.mkv"] || !seen["b.srt"] || seen[".partial"] {
		t.Fatalf("unexpected files %v", seen)
	}

	scanned, err := dw.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(scanned) != 2 {
		t.Fatalf("Scan = %v", names(scanned))
	}
}

func TestDropWatcherCloseIsIdempotent(t *testing.T) {
	dw, err := mediafiles.NewDropWatcher(t.TempDir(), 0, nil)
	if err != nil {
		t.Fatalf("NewDropWatcher failed: %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	dw.Close()
	if _, ok := <-dw.Batches(); ok {
		t.Fatal("batches channel should be closed")
	}
}
