package library

import "time"

// Pair is a stored video with its optional subtitle.
type Pair struct {
	ID           string
	Name         string
	VideoPath    string
	VideoSize    int64
	CachePath    string
	SubtitleName string
	Subtitle     string
	CommitID     string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Cached reports whether the video was copied into the cache.
func (p Pair) Cached() bool {
	return p.CachePath != ""
}

// HasSubtitle reports whether a subtitle was paired with the video.
func (p Pair) HasSubtitle() bool {
	return p.SubtitleName != ""
}

// SourcePath is the file to play: the cached copy when present.
func (p Pair) SourcePath() string {
	if p.CachePath != "" {
		return p.CachePath
	}
	return p.VideoPath
}
