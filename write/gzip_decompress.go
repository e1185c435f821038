package write

import (
	"errors"
	"io"

	"github.com/nazgaron/gzflate/gzip"
)

// GzipDecompressWriter decompresses a gzip stream pushed to it via Write,
// draining decompressed bytes to dst as soon as they are available. It
// drives the pull-shaped gzip.Reader from a pushSource, resuming the
// suspendable header parser and body reader across calls exactly as a
// non-blocking source would (spec.md §5).
type GzipDecompressWriter struct {
	src     *pushSource
	r       *gzip.Reader
	dst     io.Writer
	scratch []byte
	closed  bool
}

// NewGzipDecompressWriter decompresses a single gzip member pushed to it,
// writing decompressed bytes to dst.
func NewGzipDecompressWriter(dst io.Writer) *GzipDecompressWriter {
	src := &pushSource{}
	return &GzipDecompressWriter{src: src, r: gzip.NewReader(src), dst: dst, scratch: make([]byte, 32*1024)}
}

// NewGzipMultiDecompressWriter is NewGzipDecompressWriter but transparently
// concatenates every gzip member pushed to it.
func NewGzipMultiDecompressWriter(dst io.Writer) *GzipDecompressWriter {
	src := &pushSource{}
	return &GzipDecompressWriter{src: src, r: gzip.NewMultiReader(src), dst: dst, scratch: make([]byte, 32*1024)}
}

func (w *GzipDecompressWriter) Write(p []byte) (int, error) {
	w.src.feed(p)
	if err := w.drain(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close signals that no more compressed bytes are coming and drains
// whatever the decoder can still produce. A truncated member surfaces as
// io.ErrUnexpectedEOF, matching gzip.Reader's own trailer handling.
func (w *GzipDecompressWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.src.close()
	return w.drain()
}

// drain pulls everything the decoder can produce right now, stopping at
// ErrWouldBlock (more compressed input needed) or io.EOF (stream
// finished), and propagates any other error.
func (w *GzipDecompressWriter) drain() error {
	for {
		n, err := w.r.Read(w.scratch)
		if n > 0 {
			if _, werr := w.dst.Write(w.scratch[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, gzip.ErrWouldBlock) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if n == 0 {
			return nil
		}
	}
}
