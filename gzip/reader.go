package gzip

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/nazgaron/gzflate/crc32x"
	"github.com/nazgaron/gzflate/internal/zio"
	"github.com/nazgaron/gzflate/mem"
)

// readerState drives Reader's Read loop, mirroring flate2-rs's GzState
// (spec.md §4.4.4): Header while a member's header is being parsed, Body
// while its DEFLATE payload is being decompressed and CRC'd, Finished while
// its 8-byte trailer is being read and validated, Err while a terminal
// error waits to be returned by Read, End once the stream (or, for a multi-member
// reader, the underlying source) is exhausted.
type readerState int

const (
	rsHeader readerState = iota
	rsBody
	rsFinished
	rsErr
	rsEnd
)

// Reader decompresses a gzip stream read from a BufferedSource. By default
// it decodes a single member and then reports io.EOF, leaving any trailing
// bytes in src untouched; use NewMultiReader to instead walk every
// concatenated member, per spec.md §4.4.5.
type Reader struct {
	src   zio.BufferedSource
	multi bool

	state  readerState
	parser *HeaderParser
	header Header

	body *zio.Reader[*mem.Decompress]
	crc  *crc32x.Reader

	trailerBuf [8]byte
	trailerPos int

	pendingErr error
	lastHeader *Header
}

// NewReader constructs a single-member gzip decoder. It reads nothing from
// src; the header is parsed by the first Read, and Header reports no header
// until then.
func NewReader(src zio.BufferedSource) *Reader {
	return &Reader{src: src, parser: NewHeaderParser()}
}

// NewMultiReader constructs a gzip decoder that transparently concatenates
// every member in the stream, per RFC 1952 §2.2 (and matching gzip(1)'s own
// handling of `cat a.gz b.gz | gunzip`).
func NewMultiReader(src zio.BufferedSource) *Reader {
	return &Reader{src: src, multi: true, parser: NewHeaderParser()}
}

// Header returns the current (or, once the reader has reached End, the
// last) member's header, and whether one is available yet.
func (r *Reader) Header() (*Header, bool) {
	switch r.state {
	case rsBody, rsFinished:
		return &r.header, true
	case rsEnd:
		if r.lastHeader != nil {
			return r.lastHeader, true
		}
	}
	return nil, false
}

func (r *Reader) Read(p []byte) (int, error) {
	for {
		switch r.state {
		case rsHeader:
			done, err := r.parser.Parse(r.src)
			if err != nil {
				if errors.Is(err, ErrWouldBlock) {
					return 0, err
				}
				if errors.Is(err, io.EOF) {
					// The source ended inside the member header.
					err = errors.Join(ErrHeader, io.ErrUnexpectedEOF)
				}
				r.pendingErr = err
				r.state = rsErr
				continue
			}
			if !done {
				// Parse only ever returns done==true or a non-nil err.
				return 0, io.ErrUnexpectedEOF
			}
			r.header = r.parser.Header()
			r.startBody()
			r.state = rsBody

		case rsBody:
			if len(p) == 0 {
				return 0, nil
			}
			n, err := r.crc.Read(p)
			if n > 0 {
				return n, nil
			}
			if err != nil && !errors.Is(err, io.EOF) {
				if errors.Is(err, ErrWouldBlock) {
					return 0, err
				}
				r.pendingErr = err
				r.state = rsErr
				continue
			}
			r.state = rsFinished
			r.trailerPos = 0

		case rsFinished:
			if r.trailerPos < 8 {
				n, err := r.src.Read(r.trailerBuf[r.trailerPos:])
				r.trailerPos += n
				if err != nil {
					if errors.Is(err, ErrWouldBlock) {
						return 0, err
					}
					if errors.Is(err, io.EOF) {
						r.pendingErr = io.ErrUnexpectedEOF
						r.state = rsErr
						continue
					}
					r.pendingErr = err
					r.state = rsErr
					continue
				}
				continue
			}

			wantCRC := binary.LittleEndian.Uint32(r.trailerBuf[0:4])
			wantLen := binary.LittleEndian.Uint32(r.trailerBuf[4:8])
			if wantCRC != r.crc.Crc().Sum32() || wantLen != r.crc.Crc().Amount() {
				r.pendingErr = ErrChecksum
				r.state = rsErr
				continue
			}

			if !r.multi {
				r.lastHeader = &r.header
				r.state = rsEnd
				continue
			}

			empty, err := r.sourceExhausted()
			if err != nil {
				if errors.Is(err, ErrWouldBlock) {
					return 0, err
				}
				r.pendingErr = err
				r.state = rsErr
				continue
			}
			if empty {
				r.lastHeader = &r.header
				r.state = rsEnd
				continue
			}
			r.parser = NewHeaderParser()
			r.state = rsHeader

		case rsErr:
			err := r.pendingErr
			r.pendingErr = nil
			if r.body != nil {
				// At least one member header was parsed.
				r.lastHeader = &r.header
			}
			r.state = rsEnd
			return 0, err

		case rsEnd:
			return 0, io.EOF
		}
	}
}

func (r *Reader) startBody() {
	dec := mem.NewDecompress(mem.Deflate, nil)
	r.body = zio.NewReader[*mem.Decompress](r.src, dec)
	r.crc = crc32x.NewReader(r.body)
}

// sourceExhausted reports whether src has no more bytes without consuming
// any, used between members to decide whether the stream has ended or
// another header follows.
func (r *Reader) sourceExhausted() (bool, error) {
	if r.src.Buffered() > 0 {
		return false, nil
	}
	if _, err := r.src.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
