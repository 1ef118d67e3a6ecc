package mediafiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// ErrNoMedia reports that acquisition produced no usable files.
var ErrNoMedia = errors.New("no media files found")

// Kind is the list a file belongs to.
type Kind int

const (
	KindVideo Kind = iota
	KindSubtitle
)

func (k Kind) String() string {
	if k == KindSubtitle {
		return "subtitle"
	}
	return "video"
}

var subtitleExtensions = map[string]struct{}{
	".srt": {},
	".ssa": {},
	".ass": {},
}

// KindOf classifies a file name by extension, ignoring case.
func KindOf(name string) Kind {
	if _, ok := subtitleExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return KindSubtitle
	}
	return KindVideo
}

// Handle references a file on disk.
type Handle struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Kind classifies the handle.
func (h Handle) Kind() Kind {
	return KindOf(h.Name)
}

// NormalizeName returns the NFC form of the base name of path.
func NormalizeName(path string) string {
	return norm.NFC.String(filepath.Base(path))
}

// Stat builds a Handle for a regular file.
func Stat(path string) (Handle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Handle{}, fmt.Errorf("resolve %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Handle{}, fmt.Errorf("stat %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Handle{}, fmt.Errorf("stat %q: not a regular file", path)
	}
	return fromInfo(abs, info), nil
}

func fromInfo(path string, info os.FileInfo) Handle {
	return Handle{
		Path:    path,
		Name:    NormalizeName(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// Classify splits handles into videos and subtitles, preserving order.
func Classify(handles []Handle) (videos, subtitles []Handle) {
	for _, h := range handles {
		if h.Kind() == KindSubtitle {
			subtitles = append(subtitles, h)
		} else {
			videos = append(videos, h)
		}
	}
	return videos, subtitles
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
