package mem

import (
	"errors"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/internal/engine"
)

// Decompress is a memory decompression handle, the mirror image of
// Compress: construct once, call Decompress repeatedly with bounded
// input/output slices.
type Decompress struct {
	format Format
	eng    *engine.Decompressor
}

// NewDecompress constructs a handle for the given wire format. dict, if
// non-nil, is offered proactively as the preset dictionary; it can also be
// supplied reactively via SetDictionary after a *NeedDictionaryError.
func NewDecompress(format Format, dict []byte) *Decompress {
	return &Decompress{format: format, eng: engine.NewDecompressor(format.framing(), dict)}
}

// Decompress consumes as much of input and fills as much of output as the
// engine permits in this call.
func (d *Decompress) Decompress(input, output []byte, flush codec.Flush) (consumed, produced int, status codec.Status, err error) {
	consumed, produced, status, err = d.eng.Step(input, output, flush)
	switch {
	case errors.Is(err, engine.ErrFinished):
		err = ErrFinished
	case errors.Is(err, engine.ErrCorrupt):
		err = errors.Join(ErrCorrupt, err)
	default:
		var nd *engine.ErrNeedDictionary
		if errors.As(err, &nd) {
			err = &NeedDictionaryError{Adler32: nd.Adler32}
		}
	}
	return consumed, produced, status, err
}

// Step satisfies the zio.Coder constraint so *Decompress can back a
// generic stream adapter without that package needing to know its method
// name.
func (d *Decompress) Step(input, output []byte, flush codec.Flush) (int, int, codec.Status, error) {
	return d.Decompress(input, output, flush)
}

// DecompressVector decompresses into the unused capacity of dst and
// returns dst with its length grown by the number of bytes produced.
func (d *Decompress) DecompressVector(input []byte, dst []byte, flush codec.Flush) (out []byte, consumed int, status codec.Status, err error) {
	room := dst[len(dst):cap(dst)]
	consumed, produced, status, err := d.Decompress(input, room, flush)
	return dst[:len(dst)+produced], consumed, status, err
}

// Reset returns the handle to its post-construction state.
func (d *Decompress) Reset() {
	d.eng.Reset()
}

// SetDictionary installs the dictionary a *NeedDictionaryError asked for
// and resumes decoding.
func (d *Decompress) SetDictionary(dict []byte) {
	d.eng.SetDictionary(dict)
}

// TotalIn is the number of compressed bytes consumed since construction or
// the last Reset.
func (d *Decompress) TotalIn() uint64 { return d.eng.TotalIn() }

// TotalOut is the number of decompressed bytes produced since construction
// or the last Reset.
func (d *Decompress) TotalOut() uint64 { return d.eng.TotalOut() }

// Format reports the handle's wire framing.
func (d *Decompress) Format() Format { return d.format }
