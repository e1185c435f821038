package engine

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/level"
)

// Compressor is the compress-direction engine handle (spec.md §4.2's
// Compress object).
type Compressor struct {
	framing Framing
	lvl     level.Level
	dict    []byte

	staged bytes.Buffer
	w      flusher

	closed            bool // Close has been called; no further input accepted
	finished          bool // StreamEnd has been reported; no further Step calls accepted
	totalIn, totalOut uint64
}

// NewCompressor constructs a handle for the given framing and level. dict
// may be nil; if non-nil it is used as a preset dictionary (raw DEFLATE and
// zlib both support this at construction time).
func NewCompressor(framing Framing, lvl level.Level, dict []byte) (*Compressor, error) {
	c := &Compressor{framing: framing, lvl: lvl, dict: dict}
	if err := c.open(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Compressor) open() error {
	c.staged.Reset()
	w, err := newFlateOrZlibWriter(c.framing, &c.staged, c.lvl, c.dict)
	if err != nil {
		return err
	}
	c.w = w
	c.closed = false
	c.finished = false
	return nil
}

func newFlateOrZlibWriter(framing Framing, dst *bytes.Buffer, lvl level.Level, dict []byte) (flusher, error) {
	switch framing {
	case Zlib:
		if dict != nil {
			return zlib.NewWriterLevelDict(dst, lvl.Int(), dict)
		}
		return zlib.NewWriterLevel(dst, lvl.Int())
	default:
		if dict != nil {
			return flate.NewWriterDict(dst, lvl.Int(), dict)
		}
		return flate.NewWriter(dst, lvl.Int())
	}
}

// Step consumes all of input (compressors never need to hold input back --
// the underlying Writer's Write contract is all-or-error) and fills as
// much of output as the staged buffer can provide after applying flush.
func (c *Compressor) Step(input, output []byte, flush codec.Flush) (consumed, produced int, status codec.Status, err error) {
	if c.finished {
		return 0, 0, codec.StreamEnd, ErrFinished
	}
	if c.closed && len(input) > 0 {
		return 0, 0, codec.Ok, fmt.Errorf("engine: Step called with input after Finish: %w", ErrFinished)
	}

	if len(input) > 0 {
		n, werr := c.w.Write(input)
		c.totalIn += uint64(n)
		consumed = n
		if werr != nil {
			return consumed, 0, codec.Ok, werr
		}
	}

	switch {
	case flush == codec.Finish && !c.closed:
		if err := c.w.Close(); err != nil {
			return consumed, 0, codec.Ok, err
		}
		c.closed = true
	case flush == codec.Finish || flush == codec.None:
		// Either already closed (just draining staged output) or
		// accumulating freely with no forced boundary.
	default:
		// Partial/Sync/Full/Block all collapse onto the one flush
		// klauspost's flate.Writer/zlib.Writer exposes.
		if err := c.w.Flush(); err != nil {
			return consumed, 0, codec.Ok, err
		}
	}

	produced = copy(output, c.staged.Bytes())
	c.staged.Next(produced)
	c.totalOut += uint64(produced)

	switch {
	case c.closed && c.staged.Len() == 0:
		c.finished = true
		status = codec.StreamEnd
	case produced > 0 || consumed > 0:
		status = codec.Ok
	default:
		status = codec.BufError
	}
	return consumed, produced, status, nil
}

// Reset returns the handle to its post-construction state: counters
// zeroed, format/level/dictionary configuration preserved.
func (c *Compressor) Reset() error {
	c.totalIn, c.totalOut = 0, 0
	return c.open()
}

// SetDictionary installs (or replaces) the preset dictionary. Because
// klauspost's writers only accept a dictionary at construction, this
// reopens the underlying writer, which is only safe to call before any
// input has been written -- matching spec.md §4.2's "optional, caller
// provides bytes after construction" as the one supported case.
func (c *Compressor) SetDictionary(dict []byte) error {
	c.dict = dict
	return c.Reset()
}

// TotalIn and TotalOut are monotone 64-bit counters spanning every call
// since construction or the last Reset.
func (c *Compressor) TotalIn() uint64  { return c.totalIn }
func (c *Compressor) TotalOut() uint64 { return c.totalOut }

// SetLevel changes the compression level; klauspost's flate.Writer exposes
// this without a full reset, zlib.Writer does not, so for zlib framing
// this reopens the handle (discarding any buffered-but-unread output --
// callers should only change level between logical streams).
func (c *Compressor) SetLevel(lvl level.Level) error {
	c.lvl = lvl
	if c.framing == Raw {
		if fw, ok := c.w.(*flate.Writer); ok {
			return fw.Reset2(&c.staged, lvl.Int())
		}
	}
	return c.open()
}
