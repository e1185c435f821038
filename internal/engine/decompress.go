package engine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/nazgaron/gzflate/codec"
)

// Decompressor is the decompress-direction engine handle. See the package
// doc comment for why it is built on checkpoint-replay rather than driving
// klauspost's Reader directly.
type Decompressor struct {
	framing Framing
	dict    []byte

	all []byte // every input byte ever fed to this handle

	used      uint64 // bytes of all positionally consumed by the replayed reader so far
	delivered uint64 // how many decompressed bytes have been handed back (also the replay skip-count)
	totalIn   uint64
	finished  bool
}

// NewDecompressor constructs a handle for the given framing. dict is the
// preset dictionary to offer proactively; it is also accepted reactively
// through SetDictionary after a NeedDictionary error.
func NewDecompressor(framing Framing, dict []byte) *Decompressor {
	return &Decompressor{framing: framing, dict: dict}
}

// Step feeds input (appended to the handle's full history) and attempts to
// fill output by replaying the whole history from the start through a
// freshly constructed reader, discarding the bytes already delivered.
//
// consumed is computed from how far the replayed reader's position actually
// advanced through d.all, not simply len(input): a caller may hand it a
// view that spans past the logical end of this stream (a gzip trailer, or a
// concatenated next member), and those trailing bytes must be reported back
// as unconsumed so an upstream buffered source does not discard them along
// with the genuinely-used bytes.
func (d *Decompressor) Step(input, output []byte, flush codec.Flush) (consumed, produced int, status codec.Status, err error) {
	if d.finished {
		return 0, 0, codec.StreamEnd, ErrFinished
	}

	if len(input) > 0 {
		d.all = append(d.all, input...)
		d.totalIn += uint64(len(input))
	}

	r, src, err := d.open()
	if err != nil {
		if errors.Is(err, zlib.ErrDictionary) {
			nd := &ErrNeedDictionary{}
			if len(d.all) >= 6 {
				// DICTID follows the 2-byte zlib header, big-endian.
				nd.Adler32 = binary.BigEndian.Uint32(d.all[2:6])
			}
			return 0, 0, codec.Ok, nd
		}
		return 0, 0, codec.Ok, err
	}
	defer r.Close()

	if err := discard(r, d.delivered); err != nil && !errors.Is(err, io.EOF) {
		return d.accountUsed(src), 0, codec.Ok, translateErr(err)
	}

	n, rerr := io.ReadFull(r, output)
	produced = n
	d.delivered += uint64(n)

	switch {
	case rerr == nil:
		status = codec.Ok
	case errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF):
		// Either the logical stream ended (genuine EOF on a complete
		// stream) or we simply ran out of buffered input -- both look
		// the same from io.ReadFull's perspective, so we distinguish
		// by trying to read one further byte: a true end-of-stream
		// keeps returning EOF once the underlying flate/zlib reader
		// has seen its own terminating block, without touching src
		// any further.
		if d.atStreamEnd(r) {
			d.finished = true
			status = codec.StreamEnd
		} else {
			status = codec.BufError
		}
	default:
		return d.accountUsed(src), produced, codec.Ok, translateErr(rerr)
	}

	return d.accountUsed(src), produced, status, nil
}

// accountUsed computes how many more bytes of d.all the replayed reader has
// positionally consumed since the last Step call (via src's remaining
// length, which only decreases as the flate/zlib reader pulls bytes from
// it) and folds that delta into d.used, returning the delta as this call's
// consumed count.
func (d *Decompressor) accountUsed(src *bytes.Reader) int {
	usedNow := uint64(len(d.all)) - uint64(src.Len())
	delta := usedNow - d.used
	d.used = usedNow
	return int(delta)
}

// open reconstructs a reader over the handle's full input history. The
// returned *bytes.Reader is the direct source flate/zlib read from -- both
// klauspost packages use it without an extra buffering layer because
// *bytes.Reader already satisfies their internal Reader interface (Read +
// ReadByte), so its remaining length is an exact account of how many bytes
// of d.all have been positionally consumed.
func (d *Decompressor) open() (io.ReadCloser, *bytes.Reader, error) {
	src := bytes.NewReader(d.all)
	switch d.framing {
	case Zlib:
		var (
			rc  io.ReadCloser
			err error
		)
		if d.dict != nil {
			rc, err = zlib.NewReaderDict(src, d.dict)
		} else {
			rc, err = zlib.NewReader(src)
		}
		return rc, src, err
	default:
		if d.dict != nil {
			return flate.NewReaderDict(src, d.dict), src, nil
		}
		return flate.NewReader(src), src, nil
	}
}

// atStreamEnd probes whether r has genuinely reached the end of its logical
// stream (as opposed to merely exhausting the bytes fed so far) by
// attempting to read one more byte; a true end keeps reporting io.EOF even
// though more bytes may still be appended later by the caller for a
// different reason (trailing garbage, concatenated members handled by a
// higher layer).
func (d *Decompressor) atStreamEnd(r io.ReadCloser) bool {
	var probe [1]byte
	_, err := io.ReadFull(r, probe[:])
	return errors.Is(err, io.EOF)
}

func discard(r io.Reader, n uint64) error {
	_, err := io.CopyN(io.Discard, r, int64(n))
	return err
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, zlib.ErrDictionary) {
		return &ErrNeedDictionary{}
	}
	if errors.Is(err, zlib.ErrHeader) || errors.Is(err, zlib.ErrChecksum) {
		return errors.Join(ErrCorrupt, err)
	}
	var fce flate.CorruptInputError
	if errors.As(err, &fce) {
		return errors.Join(ErrCorrupt, err)
	}
	return err
}

// Reset returns the handle to its post-construction state, preserving
// framing and dictionary configuration.
func (d *Decompressor) Reset() {
	d.all = nil
	d.used = 0
	d.delivered = 0
	d.totalIn = 0
	d.finished = false
}

// SetDictionary installs the dictionary a *NeedDictionaryError asked for,
// and resumes from the same replay position.
func (d *Decompressor) SetDictionary(dict []byte) {
	d.dict = dict
}

// TotalIn is the number of compressed bytes fed to the handle so far.
func (d *Decompressor) TotalIn() uint64 { return d.totalIn }

// TotalOut is the number of decompressed bytes delivered so far.
func (d *Decompressor) TotalOut() uint64 { return d.delivered }
