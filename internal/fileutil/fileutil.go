// Package fileutil holds small file helpers shared by the library cache.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrShortCopy reports that fewer bytes reached the destination than the
// source held when the copy started.
var ErrShortCopy = errors.New("short copy")

// CopyNew copies src into dst, which must not exist yet. A failed copy
// leaves no file at dst.
func CopyNew(src, dst string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(dst)
		}
	}()

	n, err = io.Copy(out, in)
	if err != nil {
		return n, err
	}
	if n != info.Size() {
		return n, fmt.Errorf("%w: source %d bytes, copied %d", ErrShortCopy, info.Size(), n)
	}
	if err = out.Sync(); err != nil {
		return n, err
	}
	return n, out.Close()
}
