package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"mediapair/internal/logging"
	"mediapair/internal/mediafiles"
)

const pairColumns = "id, name, video_path, video_size, cache_path, subtitle_name, subtitle_text, commit_id, position, created_at, updated_at"

func scanPair(scanner interface{ Scan(dest ...any) error }) (*Pair, error) {
	var (
		p            Pair
		cachePath    sql.NullString
		subtitleName sql.NullString
		subtitleText sql.NullString
		createdRaw   string
		updatedRaw   string
	)
	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.VideoPath,
		&p.VideoSize,
		&cachePath,
		&subtitleName,
		&subtitleText,
		&p.CommitID,
		&p.Position,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	p.CachePath = cachePath.String
	p.SubtitleName = subtitleName.String
	p.Subtitle = subtitleText.String
	if created, err := parseTimeString(createdRaw); err == nil {
		p.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		p.UpdatedAt = updated
	}
	return &p, nil
}

// CheckExisting returns the subset of names already stored, in input order.
func (s *Store) CheckExisting(ctx context.Context, names []string) ([]string, error) {
	ctx = ensureContext(ctx)
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM pairs WHERE name IN ("+makePlaceholders(len(names))+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("check existing: %w", err)
	}
	defer rows.Close()

	stored := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		stored[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("check existing: %w", err)
	}

	var existing []string
	for _, name := range names {
		if _, ok := stored[name]; ok {
			existing = append(existing, name)
			delete(stored, name)
		}
	}
	return existing, nil
}

// PersistPairs stores videos paired positionally with subtitles. Pairs whose
// video name is already stored are overwritten. Subtitles without a video are
// dropped. When keepCache is set every video is copied into the cache
// directory first. Nothing is written when any step fails.
func (s *Store) PersistPairs(ctx context.Context, videos, subtitles []mediafiles.Handle, keepCache bool) error {
	ctx = ensureContext(ctx)
	logger := logging.WithContext(ctx, s.logger)
	if len(videos) == 0 {
		return mediafiles.ErrNoMedia
	}

	release, err := s.acquireCommitLock()
	if err != nil {
		return err
	}
	defer release()

	commitID, ok := logging.CommitIDFromContext(ctx)
	if !ok {
		commitID = uuid.NewString()
	}
	if extra := len(subtitles) - len(videos); extra > 0 {
		logging.Warn(logger, "pair_unmatched", "subtitles without a matching video were dropped",
			logging.Int("dropped", extra),
			logging.Impact("extra subtitles are not saved"),
			logging.Hint("add the missing videos or remove the extra subtitles"),
		)
	}

	pairs := make([]Pair, len(videos))
	for i, video := range videos {
		pairs[i] = Pair{
			ID:        uuid.NewString(),
			Name:      video.Name,
			VideoPath: video.Path,
			VideoSize: video.Size,
			CommitID:  commitID,
			Position:  i,
		}
		if i < len(subtitles) {
			text, err := readSubtitle(subtitles[i].Path)
			if err != nil {
				return fmt.Errorf("read subtitle %q: %w", subtitles[i].Name, err)
			}
			pairs[i].SubtitleName = subtitles[i].Name
			pairs[i].Subtitle = text
		}
	}

	var cached []string
	if keepCache {
		cached, err = s.cache.store(pairs)
		if err != nil {
			return fmt.Errorf("cache videos: %w", err)
		}
	}

	var replaced []string
	err = retryOnBusy(ctx, func() error {
		var txErr error
		replaced, txErr = s.writePairs(ctx, pairs)
		return txErr
	})
	if err != nil {
		s.cache.discard(cached)
		return fmt.Errorf("write pairs: %w", err)
	}
	s.cache.discard(replaced)

	logger.Info("pairs committed",
		logging.CommitID(commitID),
		logging.Int("pairs", len(pairs)),
		logging.Int("cached", len(cached)),
		logging.Int("replaced_cache_files", len(replaced)),
		logging.Event("pairs_committed"),
	)
	s.notifyListChanged()
	return nil
}

// writePairs upserts pairs in one transaction and returns cache files that
// belonged to overwritten pairs.
func (s *Store) writePairs(ctx context.Context, pairs []Pair) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := formatTime(time.Now())
	var replaced []string
	for _, p := range pairs {
		var previous sql.NullString
		err := tx.QueryRowContext(ctx, "SELECT cache_path FROM pairs WHERE name = ?", p.Name).Scan(&previous)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return nil, fmt.Errorf("lookup %q: %w", p.Name, err)
		case previous.Valid && previous.String != "" && previous.String != p.CachePath:
			replaced = append(replaced, previous.String)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pairs (`+pairColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(name) DO UPDATE SET
                video_path = excluded.video_path,
                video_size = excluded.video_size,
                cache_path = excluded.cache_path,
                subtitle_name = excluded.subtitle_name,
                subtitle_text = excluded.subtitle_text,
                commit_id = excluded.commit_id,
                position = excluded.position,
                updated_at = excluded.updated_at`,
			p.ID,
			p.Name,
			p.VideoPath,
			p.VideoSize,
			nullableString(p.CachePath),
			nullableString(p.SubtitleName),
			nullableString(p.Subtitle),
			p.CommitID,
			p.Position,
			now,
			now,
		); err != nil {
			return nil, fmt.Errorf("upsert %q: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return replaced, nil
}

// readSubtitle returns the subtitle as UTF-8. Files that are not valid UTF-8
// are decoded as Windows-1252, the usual encoding of legacy .srt files.
func readSubtitle(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	data = trimBOM(data)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode subtitle: %w", err)
	}
	return string(decoded), nil
}

func trimBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// List returns every stored pair, grouped by commit in commit order.
func (s *Store) List(ctx context.Context) ([]*Pair, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+pairColumns+" FROM pairs ORDER BY created_at, commit_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	defer rows.Close()

	var pairs []*Pair
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	return pairs, nil
}

// Get returns the pair stored under name.
func (s *Store) Get(ctx context.Context, name string) (*Pair, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+pairColumns+" FROM pairs WHERE name = ?", name)
	p, err := scanPair(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get pair: %w", err)
	}
	return p, nil
}

// Remove deletes the pair stored under name along with its cached video.
func (s *Store) Remove(ctx context.Context, name string) error {
	ctx = ensureContext(ctx)
	release, err := s.acquireCommitLock()
	if err != nil {
		return err
	}
	defer release()

	p, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	err = retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, "DELETE FROM pairs WHERE name = ?", name)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("remove pair: %w", err)
	}
	if p.Cached() {
		s.cache.discard([]string{p.CachePath})
	}
	s.logger.Info("pair removed",
		logging.String("name", name),
		logging.Event("pair_removed"),
	)
	s.notifyListChanged()
	return nil
}
