// Package engine adapts the external DEFLATE engine -- out of scope per
// spec.md §1/§6, consumed here only through klauspost/compress's
// stdlib-compatible flate and zlib packages -- to the narrow
// Init/Step/Reset/End contract spec.md §6 describes: a handle that accepts
// bounded input/output byte slices and a flush directive, and reports back
// one of Ok/BufError/StreamEnd.
//
// Two directions are implemented. Compressor pushes into klauspost's
// flate.Writer/zlib.Writer, staging the engine's output in an internal
// buffer so Step can hand back exactly as much as the caller's output
// slice can hold. Decompressor has no equivalent bounded pull primitive in
// klauspost/compress (nor in the stdlib it mirrors) -- flate.Reader and
// zlib.Reader are built for a blocking underlying io.Reader, not a
// resumable in-memory buffer -- so it keeps every byte it has ever been
// given and re-derives its position on each Step by replaying from the
// start and discarding the prefix already delivered. This trades
// decompression throughput (O(n^2) across many small Step calls) for a
// genuinely resumable, goroutine-free implementation; see DESIGN.md.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/level"
)

// Framing selects which external engine backs a handle: raw DEFLATE
// (RFC 1951) or zlib (RFC 1950, 2-byte header + Adler-32 trailer). This is
// the "window_bits sign bit" distinction from spec.md §6, made into a
// proper enum since Go has no bit-packed window_bits parameter to reuse.
type Framing int

const (
	Raw Framing = iota
	Zlib
)

// ErrFinished is returned by Step once a handle has reported StreamEnd;
// spec.md §4.2 requires further calls to be errors.
var ErrFinished = errors.New("engine: stream already finished")

// ErrCorrupt wraps the external engine's decode errors for callers that
// want a stable sentinel to match against, independent of klauspost's
// own error text.
var ErrCorrupt = errors.New("engine: corrupt compressed stream")

// ErrNeedDictionary reports that decompression cannot continue without the
// preset dictionary identified by the zlib header's Adler-32 id (only
// meaningful for Framing == Zlib; raw DEFLATE carries no such signal).
type ErrNeedDictionary struct{ Adler32 uint32 }

func (e *ErrNeedDictionary) Error() string {
	return fmt.Sprintf("engine: preset dictionary required (adler32 %#08x)", e.Adler32)
}

func (e *ErrNeedDictionary) Is(target error) bool {
	_, ok := target.(*ErrNeedDictionary)
	return ok
}

// flusher is the subset of klauspost's *flate.Writer / *zlib.Writer this
// package drives.
type flusher interface {
	io.Writer
	Flush() error
	Close() error
}
