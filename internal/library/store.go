package library

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"mediapair/internal/config"
	"mediapair/internal/logging"
)

// Store manages pair persistence backed by SQLite.
type Store struct {
	db       *sql.DB
	path     string
	cache    *mediaCache
	lockPath string
	fileLock *flock.Flock
	commitMu sync.Mutex
	logger   *slog.Logger

	waitMu     sync.Mutex
	waiters    map[uint64]chan struct{}
	nextWaiter uint64
}

// Open initializes or connects to the library database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:       db,
		path:     dbPath,
		cache:    newMediaCache(cfg.Library.CacheDir, cfg.MinFreeBytes()),
		lockPath: cfg.CommitLockPath(),
		fileLock: flock.New(cfg.CommitLockPath()),
		logger:   logging.NewComponentLogger(nil, "library"),
		waiters:  make(map[uint64]chan struct{}),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// SetLogger replaces the store's logging destination.
func (s *Store) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "library")
}

// Path is the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OnListChanged returns a channel that is closed after the next successful
// write, and a cancel function that drops the subscription.
func (s *Store) OnListChanged() (<-chan struct{}, func()) {
	s.waitMu.Lock()
	defer s.waitMu.Unlock()

	id := s.nextWaiter
	s.nextWaiter++
	ch := make(chan struct{})
	s.waiters[id] = ch

	cancel := func() {
		s.waitMu.Lock()
		delete(s.waiters, id)
		s.waitMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notifyListChanged() {
	s.waitMu.Lock()
	waiters := s.waiters
	s.waiters = make(map[uint64]chan struct{})
	s.waitMu.Unlock()

	for _, ch := range waiters {
		close(ch)
	}
}

// acquireCommitLock serializes writers within this process and across
// processes sharing the data directory.
func (s *Store) acquireCommitLock() (func(), error) {
	if !s.commitMu.TryLock() {
		return nil, ErrCommitBusy
	}
	ok, err := s.fileLock.TryLock()
	if err != nil {
		s.commitMu.Unlock()
		return nil, fmt.Errorf("acquire commit lock %s: %w", s.lockPath, err)
	}
	if !ok {
		s.commitMu.Unlock()
		return nil, ErrCommitBusy
	}
	return func() {
		if err := s.fileLock.Unlock(); err != nil {
			s.logger.Warn("failed to release commit lock",
				logging.Error(err),
				logging.String("lock", s.lockPath),
			)
		}
		s.commitMu.Unlock()
	}, nil
}
