package gzip

import (
	"encoding/binary"
	"io"

	"github.com/nazgaron/gzflate/crc32x"
	"github.com/nazgaron/gzflate/internal/zio"
	"github.com/nazgaron/gzflate/level"
	"github.com/nazgaron/gzflate/mem"
)

// Writer is a push-style gzip encoder: each Write call compresses and
// CRCs its argument, draining compressed bytes (header first, on the very
// first call) to dst. Close drains the DEFLATE compressor to completion
// and appends the 8-byte trailer, per spec.md §4.4.1.
type Writer struct {
	dst        io.Writer
	header     []byte
	headerSent bool
	headerInfo Header

	crc  crc32x.Crc
	body *zio.Writer[*mem.Compress]

	closed bool
}

// NewWriter constructs a gzip encoder at the given level with a default
// (empty) header.
func NewWriter(dst io.Writer, lvl level.Level) (*Writer, error) {
	return NewWriterBuilder(dst, lvl, NewBuilder())
}

// NewWriterBuilder constructs a gzip encoder whose header carries the
// optional fields accumulated on b.
func NewWriterBuilder(dst io.Writer, lvl level.Level, b *Builder) (*Writer, error) {
	enc, err := mem.NewCompress(mem.Deflate, lvl, nil)
	if err != nil {
		return nil, err
	}
	return &Writer{
		dst:        dst,
		header:     b.encode(lvl.Int(), level.Best.Int(), level.Fastest.Int()),
		headerInfo: b.header(),
		body:       zio.NewWriter[*mem.Compress](dst, enc),
	}, nil
}

// Header returns the header this Writer emits (or emitted) ahead of its
// compressed body.
func (w *Writer) Header() Header { return w.headerInfo }

func (w *Writer) Write(p []byte) (int, error) {
	if err := w.emitHeader(); err != nil {
		return 0, err
	}
	n, err := w.body.Write(p)
	if n > 0 {
		w.crc.Update(p[:n])
	}
	return n, err
}

// Flush forces the current body compression to a byte boundary and drains
// it to dst, without affecting the trailer that Close will still append.
func (w *Writer) Flush() error {
	if err := w.emitHeader(); err != nil {
		return err
	}
	return w.body.Flush()
}

// Close drains the compressor to completion and appends the CRC-32 and
// mod-2^32 length trailer. It is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.emitHeader(); err != nil {
		return err
	}
	if err := w.body.Close(); err != nil {
		return err
	}
	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], w.crc.Sum32())
	binary.LittleEndian.PutUint32(trailer[4:8], w.crc.Amount())
	_, err := w.dst.Write(trailer[:])
	return err
}

func (w *Writer) emitHeader() error {
	if w.headerSent {
		return nil
	}
	if _, err := w.dst.Write(w.header); err != nil {
		return err
	}
	w.headerSent = true
	return nil
}
