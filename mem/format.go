// Package mem implements the memory codec: compress/decompress calls that
// consume as much of a caller-supplied input slice and fill as much of a
// caller-supplied output slice as the engine permits in a single call,
// without reallocating those slices. The handles do allocate internally:
// Compress stages engine output in a growing buffer, and Decompress keeps
// every input byte it has been given and rebuilds its reader on each call.
// It is the foundation every streaming adapter in this repository is built
// on.
package mem

import "github.com/nazgaron/gzflate/internal/engine"

// Format selects the wire framing a Compress/Decompress handle speaks.
type Format int

const (
	// Deflate is raw DEFLATE (RFC 1951): no header, no trailer, no
	// checksum. This is the body format gzip framing wraps.
	Deflate Format = iota

	// Zlib is the zlib format (RFC 1950): a 2-byte header identifying
	// the method and window size, followed by a DEFLATE stream and an
	// Adler-32 trailer.
	Zlib
)

func (f Format) String() string {
	switch f {
	case Deflate:
		return "deflate"
	case Zlib:
		return "zlib"
	default:
		return "invalid"
	}
}

func (f Format) framing() engine.Framing {
	if f == Zlib {
		return engine.Zlib
	}
	return engine.Raw
}
