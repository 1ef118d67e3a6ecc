package library_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"mediapair/internal/library"
	"mediapair/internal/logging"
	"mediapair/internal/mediafiles"
	"mediapair/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if store.Path() != cfg.DatabasePath() {
		t.Fatalf("unexpected db path %q", store.Path())
	}
	pairs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("expected empty library, got %d pairs", len(pairs))
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	store.Close()

	db, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := library.Open(cfg); !errors.Is(err, library.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestPersistPairsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	store.SetLogger(logging.NewNop())
	media := t.TempDir()

	videos := testsupport.MediaHandles(t, media, "e01.mkv", "e02.mkv")
	subtitles := testsupport.MediaHandles(t, media, "e01.srt", "e02.srt", "extra.srt")

	if err := store.PersistPairs(context.Background(), videos, subtitles, false); err != nil {
		t.Fatalf("PersistPairs failed: %v", err)
	}

	pairs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	for i, p := range pairs {
		if p.Name != videos[i].Name || p.SubtitleName != subtitles[i].Name {
			t.Fatalf("pair %d = %s/%s", i, p.Name, p.SubtitleName)
		}
		if p.Position != i || p.Cached() {
			t.Fatalf("pair %d unexpected position/cache: %+v", i, p)
		}
		if !strings.Contains(p.Subtitle, subtitles[i].Name) {
			t.Fatalf("subtitle text not stored: %q", p.Subtitle)
		}
		if p.CreatedAt.IsZero() || p.SourcePath() != videos[i].Path {
			t.Fatalf("pair %d missing metadata: %+v", i, p)
		}
	}
	if pairs[0].CommitID == "" || pairs[0].CommitID != pairs[1].CommitID {
		t.Fatal("pairs of one commit should share a commit id")
	}

	got, err := store.Get(context.Background(), "e02.mkv")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SubtitleName != "e02.srt" {
		t.Fatalf("unexpected subtitle %q", got.SubtitleName)
	}
}

func TestPersistPairsWithoutSubtitles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	videos := testsupport.MediaHandles(t, t.TempDir(), "movie.mp4")

	if err := store.PersistPairs(context.Background(), videos, nil, false); err != nil {
		t.Fatalf("PersistPairs failed: %v", err)
	}
	p, err := store.Get(context.Background(), "movie.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.HasSubtitle() {
		t.Fatalf("unexpected subtitle %q", p.SubtitleName)
	}
}

func TestPersistPairsRequiresVideos(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	subtitles := testsupport.MediaHandles(t, t.TempDir(), "a.srt")

	err := store.PersistPairs(context.Background(), nil, subtitles, false)
	if err != mediafiles.ErrNoMedia {
		t.Fatalf("expected bare ErrNoMedia, got %v", err)
	}
}

func TestPersistPairsFailsForMissingSubtitleAndWritesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	media := t.TempDir()
	videos := testsupport.MediaHandles(t, media, "a.mp4")
	subtitles := testsupport.MediaHandles(t, media, "a.srt")
	if err := os.Remove(subtitles[0].Path); err != nil {
		t.Fatalf("remove subtitle: %v", err)
	}

	if err := store.PersistPairs(context.Background(), videos, subtitles, false); err == nil {
		t.Fatal("expected error for unreadable subtitle")
	}
	existing, err := store.CheckExisting(context.Background(), []string{"a.mp4"})
	if err != nil {
		t.Fatalf("CheckExisting failed: %v", err)
	}
	if len(existing) != 0 {
		t.Fatalf("failed commit wrote pairs: %v", existing)
	}
}

func TestCheckExistingPreservesInputOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	videos := testsupport.MediaHandles(t, t.TempDir(), "a.mp4", "b.mp4")
	if err := store.PersistPairs(context.Background(), videos, nil, false); err != nil {
		t.Fatalf("PersistPairs failed: %v", err)
	}

	existing, err := store.CheckExisting(context.Background(), []string{"c.mp4", "b.mp4", "a.mp4", "b.mp4"})
	if err != nil {
		t.Fatalf("CheckExisting failed: %v", err)
	}
	if len(existing) != 2 || existing[0] != "b.mp4" || existing[1] != "a.mp4" {
		t.Fatalf("unexpected collisions %v", existing)
	}
	if none, _ := store.CheckExisting(context.Background(), nil); len(none) != 0 {
		t.Fatalf("expected no collisions for empty input, got %v", none)
	}
}

func TestPersistPairsOverwritesExistingName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	first := t.TempDir()
	second := t.TempDir()

	if err := store.PersistPairs(context.Background(), testsupport.MediaHandles(t, first, "a.mp4"), nil, true); err != nil {
		t.Fatalf("first PersistPairs failed: %v", err)
	}
	before, _ := store.Get(context.Background(), "a.mp4")

	videos := testsupport.MediaHandles(t, second, "a.mp4")
	subtitles := testsupport.MediaHandles(t, second, "a.srt")
	if err := store.PersistPairs(context.Background(), videos, subtitles, false); err != nil {
		t.Fatalf("second PersistPairs failed: %v", err)
	}

	after, err := store.Get(context.Background(), "a.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if after.ID != before.ID {
		t.Fatal("overwrite should keep the pair id")
	}
	if after.VideoPath != videos[0].Path || after.SubtitleName != "a.srt" || after.Cached() {
		t.Fatalf("pair not overwritten: %+v", after)
	}
	if _, err := os.Stat(before.CachePath); !os.IsNotExist(err) {
		t.Fatalf("replaced cache file should be removed, stat err=%v", err)
	}
	pairs, _ := store.List(context.Background())
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
}

func TestPersistPairsKeepCacheCopiesVideo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	videos := testsupport.MediaHandles(t, t.TempDir(), "Clip.MP4")

	if err := store.PersistPairs(context.Background(), videos, nil, true); err != nil {
		t.Fatalf("PersistPairs failed: %v", err)
	}
	p, err := store.Get(context.Background(), "Clip.MP4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !p.Cached() || filepath.Dir(p.CachePath) != cfg.Library.CacheDir || filepath.Ext(p.CachePath) != ".mp4" {
		t.Fatalf("unexpected cache path %q", p.CachePath)
	}
	info, err := os.Stat(p.CachePath)
	if err != nil {
		t.Fatalf("stat cache file: %v", err)
	}
	if info.Size() != videos[0].Size {
		t.Fatalf("cache size %d, want %d", info.Size(), videos[0].Size)
	}
	if p.SourcePath() != p.CachePath {
		t.Fatal("cached pair should play from the cache")
	}
}

func TestOnListChangedFiresOnceAfterWrite(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	changed, cancel := store.OnListChanged()
	defer cancel()
	dropped, cancelDropped := store.OnListChanged()
	cancelDropped()

	select {
	case <-changed:
		t.Fatal("signal fired before any write")
	default:
	}

	if err := store.PersistPairs(context.Background(), testsupport.MediaHandles(t, t.TempDir(), "a.mp4"), nil, false); err != nil {
		t.Fatalf("PersistPairs failed: %v", err)
	}
	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("list-changed signal did not fire")
	}
	select {
	case <-dropped:
		t.Fatal("cancelled subscription should not fire")
	default:
	}

	next, cancelNext := store.OnListChanged()
	defer cancelNext()
	select {
	case <-next:
		t.Fatal("new subscription must wait for the next write")
	default:
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	if err := store.PersistPairs(context.Background(), testsupport.MediaHandles(t, t.TempDir(), "a.mp4"), nil, true); err != nil {
		t.Fatalf("PersistPairs failed: %v", err)
	}
	p, _ := store.Get(context.Background(), "a.mp4")
	changed, cancel := store.OnListChanged()
	defer cancel()

	if err := store.Remove(context.Background(), "a.mp4"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := store.Get(context.Background(), "a.mp4"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := os.Stat(p.CachePath); !os.IsNotExist(err) {
		t.Fatal("cache file should be removed with the pair")
	}
	select {
	case <-changed:
	default:
		t.Fatal("Remove should signal a list change")
	}
	if err := store.Remove(context.Background(), "a.mp4"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestPersistPairsFailsFastWhenCommitLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	other := flock.New(cfg.CommitLockPath())
	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("lock from second holder: ok=%v err=%v", ok, err)
	}
	defer other.Unlock()

	err = store.PersistPairs(context.Background(), testsupport.MediaHandles(t, t.TempDir(), "a.mp4"), nil, false)
	if !errors.Is(err, library.ErrCommitBusy) {
		t.Fatalf("expected ErrCommitBusy, got %v", err)
	}
}
