package zio

import (
	"errors"
	"io"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/mem"
)

const defaultScratch = 32 * 1024

// Writer adapts a Coder to io.WriteCloser, pushing bytes into the codec
// and draining its output to an underlying sink as it goes.
type Writer[C Coder] struct {
	dst      io.Writer
	coder    C
	scratch  []byte
	finished bool
}

// NewWriter constructs a write-driven adapter with a default-sized scratch
// buffer. Use NewWriterSize to control it.
func NewWriter[C Coder](dst io.Writer, coder C) *Writer[C] {
	return NewWriterSize(dst, coder, defaultScratch)
}

// NewWriterSize is like NewWriter but lets the caller size the internal
// scratch buffer the codec writes compressed/decompressed output into
// before it is drained to dst.
func NewWriterSize(dst io.Writer, coder C, scratchSize int) *Writer[C] {
	if scratchSize <= 0 {
		scratchSize = defaultScratch
	}
	return &Writer[C]{dst: dst, coder: coder, scratch: make([]byte, 0, scratchSize)}
}

// Coder returns the underlying codec handle.
func (w *Writer[C]) Coder() C { return w.coder }

func (w *Writer[C]) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if err := w.drain(); err != nil {
			return total, err
		}
		room := w.scratch[len(w.scratch):cap(w.scratch)]
		consumed, produced, _, err := w.coder.Step(p, room, codec.None)
		if err != nil {
			return total, mapErr(err)
		}
		w.scratch = w.scratch[:len(w.scratch)+produced]
		p = p[consumed:]
		total += consumed

		if consumed == 0 && produced == 0 {
			// The engine made no progress at all against non-empty
			// input; drain what little scratch room existed and
			// retry rather than report a misleading short write.
			if err := w.drain(); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// Flush forces the codec to emit an output boundary and drains it to the
// sink, without resetting the compression window.
func (w *Writer[C]) Flush() error {
	flush := codec.Sync
	for {
		if err := w.drain(); err != nil {
			return err
		}
		room := w.scratch[len(w.scratch):cap(w.scratch)]
		_, produced, _, err := w.coder.Step(nil, room, flush)
		if err != nil {
			return mapErr(err)
		}
		w.scratch = w.scratch[:len(w.scratch)+produced]
		if produced == 0 {
			return w.drain()
		}
		// The boundary has been requested once; later passes only collect
		// output it left staged, since each further Sync emits a new marker.
		flush = codec.None
	}
}

// Close drives the codec to StreamEnd and drains the remainder to the
// sink. It is idempotent; calling Close more than once is a no-op.
//
// A decompress-direction coder commonly reaches StreamEnd on its own
// during a prior Write (the compressed stream's logical end and the last
// byte the caller pushed coincide), in which case the coder reports
// ErrFinished here instead of a fresh StreamEnd -- that is success, not a
// failure to finish, so it is swallowed rather than propagated.
func (w *Writer[C]) Close() error {
	if w.finished {
		return nil
	}
	w.finished = true
	for {
		if err := w.drain(); err != nil {
			return err
		}
		room := w.scratch[len(w.scratch):cap(w.scratch)]
		_, produced, status, err := w.coder.Step(nil, room, codec.Finish)
		if err != nil {
			if errors.Is(err, mem.ErrFinished) {
				return w.drain()
			}
			return mapErr(err)
		}
		w.scratch = w.scratch[:len(w.scratch)+produced]
		if status == codec.StreamEnd {
			return w.drain()
		}
		if produced < len(room) {
			// A full pass that didn't fill the scratch buffer is the
			// unambiguous end-of-stream signal when a codec doesn't
			// report StreamEnd precisely.
			return w.drain()
		}
	}
}

func (w *Writer[C]) drain() error {
	if len(w.scratch) == 0 {
		return nil
	}
	_, err := w.dst.Write(w.scratch)
	w.scratch = w.scratch[:0]
	return err
}
