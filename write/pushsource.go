package write

import (
	"io"

	"github.com/nazgaron/gzflate/gzip"
)

// pushSource adapts a push-driven byte feed (Write/Close calls) to the
// zio.BufferedSource contract gzip.Reader needs, so the pull-shaped gzip
// decoder can be driven from a write-style API. When it has no buffered
// bytes and has not been told Close, it reports gzip.ErrWouldBlock rather
// than blocking -- exactly the suspension signal the header parser and
// multi-member driver are built to tolerate (spec.md §5).
type pushSource struct {
	buf []byte
	eof bool
}

// feed appends newly pushed bytes.
func (s *pushSource) feed(p []byte) {
	s.buf = append(s.buf, p...)
}

// close marks that no more bytes will ever be fed.
func (s *pushSource) close() {
	s.eof = true
}

func (s *pushSource) Read(p []byte) (int, error) {
	if len(s.buf) == 0 {
		if s.eof {
			return 0, io.EOF
		}
		return 0, gzip.ErrWouldBlock
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *pushSource) Buffered() int { return len(s.buf) }

func (s *pushSource) Peek(n int) ([]byte, error) {
	if len(s.buf) == 0 {
		if s.eof {
			return nil, io.EOF
		}
		return nil, gzip.ErrWouldBlock
	}
	if n > len(s.buf) {
		n = len(s.buf)
	}
	return s.buf[:n], nil
}

func (s *pushSource) Discard(n int) (int, error) {
	if n > len(s.buf) {
		n = len(s.buf)
	}
	s.buf = s.buf[n:]
	return n, nil
}
