// Package gzip implements the gzip framing protocol (RFC 1952) described in
// spec.md §4.4: header parsing (including a suspendable parser for
// non-blocking sources), trailer generation and validation, and
// multi-member streams. It is built on crc32x for the trailer checksum and
// on mem for the underlying raw DEFLATE body.
package gzip

import (
	"fmt"
	"time"
)

// Flag bits occupying the low 5 bits of the header's flag byte (spec.md
// §3's "flags occupy only the low 5 bits"). FHCRC is accepted by the
// parser but never produced by Writer, matching spec.md §4.4.2.
const (
	flagFHCRC    = 1 << 1
	flagFEXTRA   = 1 << 2
	flagFNAME    = 1 << 3
	flagFCOMMENT = 1 << 4
)

const (
	magic1  = 0x1f
	magic2  = 0x8b
	methodDeflate = 8
)

// Header carries the metadata a gzip member's header stores, per spec.md
// §3's gzip-header tuple. The zero value describes a header with every
// optional field absent, mtime 0, and OS 255 ("unknown") -- matching
// Builder's defaults.
type Header struct {
	extra            []byte
	filename         []byte
	comment          []byte
	mtime            uint32
	operatingSystem  uint8
	hasOS            bool
}

// Extra returns the header's FEXTRA field, or nil if absent.
func (h *Header) Extra() []byte { return h.extra }

// Filename returns the header's FNAME field (without its zero terminator),
// or nil if absent.
func (h *Header) Filename() []byte { return h.filename }

// Comment returns the header's FCOMMENT field (without its zero
// terminator), or nil if absent.
func (h *Header) Comment() []byte { return h.comment }

// Mtime is the Unix modification time recorded in the header, or 0 if no
// timestamp is available.
func (h *Header) Mtime() uint32 { return h.mtime }

// ModTime returns Mtime as a time.Time, and false if Mtime is 0 ("no time
// stamp is available" per spec.md §3's glossary on mtime).
func (h *Header) ModTime() (time.Time, bool) {
	if h.mtime == 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(h.mtime), 0).UTC(), true
}

// OperatingSystem is the header's OS byte; 255 means unknown.
func (h *Header) OperatingSystem() uint8 {
	if !h.hasOS {
		return 255
	}
	return h.operatingSystem
}

// Builder collects optional gzip header fields and produces the concrete
// header byte sequence an Encoder emits, per spec.md §4.5 component 5 and
// §6's "Configuration options (gzip builder)". The zero value is a usable
// builder with every field absent.
type Builder struct {
	extra           []byte
	filename        []byte
	comment         []byte
	mtime           uint32
	operatingSystem uint8
	hasOS           bool
}

// NewBuilder returns an empty Builder. Using the zero value directly also
// works; NewBuilder exists for symmetry with the rest of the API.
func NewBuilder() *Builder { return &Builder{} }

// Extra sets the FEXTRA field. A nil or empty slice clears it.
func (b *Builder) Extra(extra []byte) *Builder {
	if len(extra) == 0 {
		extra = nil
	}
	b.extra = extra
	return b
}

// Filename sets the FNAME field. It panics if name contains a zero byte,
// matching flate2-rs's GzBuilder::filename (spec.md §6: "panics on embedded
// zero").
func (b *Builder) Filename(name []byte) *Builder {
	if containsZero(name) {
		panic(fmt.Errorf("%w: filename", ErrFieldZeroByte))
	}
	b.filename = name
	return b
}

// Comment sets the FCOMMENT field. It panics if comment contains a zero
// byte.
func (b *Builder) Comment(comment []byte) *Builder {
	if containsZero(comment) {
		panic(fmt.Errorf("%w: comment", ErrFieldZeroByte))
	}
	b.comment = comment
	return b
}

// Mtime sets the header's modification time.
func (b *Builder) Mtime(mtime uint32) *Builder {
	b.mtime = mtime
	return b
}

// OperatingSystem sets the header's OS byte. Default is 255 ("unknown").
func (b *Builder) OperatingSystem(os uint8) *Builder {
	b.operatingSystem = os
	b.hasOS = true
	return b
}

func containsZero(b []byte) bool {
	for _, c := range b {
		if c == 0 {
			return true
		}
	}
	return false
}

// xflByte computes byte 8 of the header (spec.md §4.4.2): 2 if level is at
// least best, 4 if level is at most fastest, 0 otherwise. spec.md §9 notes
// these thresholds are informational and tied to the level scale in use.
func xflByte(lvl, best, fastest int) byte {
	switch {
	case lvl >= best:
		return 2
	case lvl <= fastest:
		return 4
	default:
		return 0
	}
}

// encode renders b into the wire byte sequence an Encoder emits ahead of
// its compressed body, per spec.md §4.4.2.
func (b *Builder) encode(lvl, best, fastest int) []byte {
	flg := byte(0)
	if b.extra != nil {
		flg |= flagFEXTRA
	}
	if b.filename != nil {
		flg |= flagFNAME
	}
	if b.comment != nil {
		flg |= flagFCOMMENT
	}

	out := make([]byte, 10, 10+len(b.extra)+len(b.filename)+len(b.comment)+2)
	out[0] = magic1
	out[1] = magic2
	out[2] = methodDeflate
	out[3] = flg
	out[4] = byte(b.mtime)
	out[5] = byte(b.mtime >> 8)
	out[6] = byte(b.mtime >> 16)
	out[7] = byte(b.mtime >> 24)
	out[8] = xflByte(lvl, best, fastest)
	if b.hasOS {
		out[9] = b.operatingSystem
	} else {
		out[9] = 255
	}

	if b.extra != nil {
		out = append(out, byte(len(b.extra)), byte(len(b.extra)>>8))
		out = append(out, b.extra...)
	}
	if b.filename != nil {
		out = append(out, b.filename...)
		out = append(out, 0)
	}
	if b.comment != nil {
		out = append(out, b.comment...)
		out = append(out, 0)
	}
	return out
}

// header returns the Header an Encoder built from b will report back to a
// decoder, mirroring the fields encode() wrote onto the wire.
func (b *Builder) header() Header {
	return Header{
		extra:           b.extra,
		filename:        b.filename,
		comment:         b.comment,
		mtime:           b.mtime,
		operatingSystem: b.operatingSystem,
		hasOS:           b.hasOS,
	}
}
