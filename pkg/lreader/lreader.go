// Package lreader provides a reader that enforces an upper bound on the
// amount of data read from an underlying io.Reader. Unlike io.LimitReader,
// which silently truncates, reads past the limit fail with ErrLimit so an
// oversized upload is rejected rather than stored incomplete.
package lreader

import (
	"errors"
	"io"
)

// ErrLimit is returned once more than the configured number of bytes has
// been read from the underlying reader.
var ErrLimit = errors.New("read limit exceeded")

type lreader struct {
	r      io.Reader // underlying reader
	remain int64     // remaining bytes before the limit is exceeded
}

// New returns a reader that yields at most limit bytes from r. A read that
// would consume byte limit+1 fails with ErrLimit.
func New(r io.Reader, limit int64) io.Reader {
	return &lreader{
		r:      r,
		remain: limit,
	}
}

// Read reads up to len(p) bytes into p from the underlying reader. It never
// requests more than remain+1 bytes, so the first byte past the limit is
// detected on the read that produces it and reported as ErrLimit.
func (l *lreader) Read(p []byte) (int, error) {
	if l.remain < 0 {
		return 0, ErrLimit
	}

	if int64(len(p)) > l.remain+1 {
		p = p[:l.remain+1]
	}

	n, err := l.r.Read(p)
	l.remain -= int64(n)

	if l.remain < 0 {
		return n, ErrLimit
	}

	return n, err
}
