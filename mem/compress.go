package mem

import (
	"errors"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/internal/engine"
	"github.com/nazgaron/gzflate/level"
)

// Compress is a memory compression handle: construct once, call Compress
// repeatedly with bounded input/output slices, observe progress through
// TotalIn/TotalOut.
type Compress struct {
	format Format
	level  level.Level
	eng    *engine.Compressor
}

// NewCompress constructs a handle in the given format and level. dict, if
// non-nil, is used as a preset dictionary for every subsequent call.
func NewCompress(format Format, lvl level.Level, dict []byte) (*Compress, error) {
	eng, err := engine.NewCompressor(format.framing(), lvl, dict)
	if err != nil {
		return nil, err
	}
	return &Compress{format: format, level: lvl, eng: eng}, nil
}

// Compress consumes as much of input and fills as much of output as the
// engine permits in this call. It never reallocates input or output; the
// handle itself stages engine output in an internal buffer that grows as
// needed, so a call can allocate.
func (c *Compress) Compress(input, output []byte, flush codec.Flush) (consumed, produced int, status codec.Status, err error) {
	consumed, produced, status, err = c.eng.Step(input, output, flush)
	if errors.Is(err, engine.ErrFinished) {
		err = ErrFinished
	}
	return consumed, produced, status, err
}

// Step satisfies the zio.Coder constraint so *Compress can back a generic
// stream adapter without that package needing to know its method name.
func (c *Compress) Step(input, output []byte, flush codec.Flush) (int, int, codec.Status, error) {
	return c.Compress(input, output, flush)
}

// CompressVector compresses into the unused capacity of dst
// (dst[len(dst):cap(dst)]) and returns dst with its length grown by the
// number of bytes produced. The caller must reserve capacity beforehand;
// CompressVector never reallocates -- if cap(dst) == len(dst), nothing can
// be produced and status is BufError.
func (c *Compress) CompressVector(input []byte, dst []byte, flush codec.Flush) (out []byte, consumed int, status codec.Status, err error) {
	room := dst[len(dst):cap(dst)]
	consumed, produced, status, err := c.Compress(input, room, flush)
	return dst[:len(dst)+produced], consumed, status, err
}

// Reset returns the handle to its post-construction state: counters
// zeroed, format/level/dictionary configuration preserved.
func (c *Compress) Reset() error {
	return c.eng.Reset()
}

// SetDictionary installs a preset dictionary, replacing any previous one.
// Must be called before any input has been fed to the handle.
func (c *Compress) SetDictionary(dict []byte) error {
	return c.eng.SetDictionary(dict)
}

// SetLevel changes the compression level used for subsequently produced
// output.
func (c *Compress) SetLevel(lvl level.Level) error {
	c.level = lvl
	return c.eng.SetLevel(lvl)
}

// TotalIn is the number of uncompressed bytes consumed since construction
// or the last Reset, as a 64-bit count surviving any 32-bit wraparound
// internal to the engine.
func (c *Compress) TotalIn() uint64 { return c.eng.TotalIn() }

// TotalOut is the number of compressed bytes produced since construction
// or the last Reset.
func (c *Compress) TotalOut() uint64 { return c.eng.TotalOut() }

// Format reports the handle's wire framing.
func (c *Compress) Format() Format { return c.format }

// Level reports the handle's current compression level.
func (c *Compress) Level() level.Level { return c.level }
