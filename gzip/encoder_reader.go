package gzip

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/nazgaron/gzflate/internal/zio"
	"github.com/nazgaron/gzflate/level"
	"github.com/nazgaron/gzflate/mem"
)

// EncodeReader is a read-driven gzip encoder: it pulls raw bytes from src,
// compresses and CRCs them, and hands back the gzip framing (header, then
// body, then trailer) through Read -- the read-driven mirror of Writer,
// matching flate2-rs's bufread::GzEncoder (spec.md §4.5's "read-driven
// compress" component).
type EncodeReader struct {
	header     []byte
	pos        int // index into header while !eof, then into trailer once eof
	eof        bool
	headerInfo Header

	crcSrc *crcSource
	body   *zio.Reader[*mem.Compress]
	trailer [8]byte
}

// NewEncodeReader constructs a read-driven gzip encoder at the given level
// with a default (empty) header.
func NewEncodeReader(src zio.BufferedSource, lvl level.Level) (*EncodeReader, error) {
	return NewEncodeReaderBuilder(src, lvl, NewBuilder())
}

// NewEncodeReaderBuilder is NewEncodeReader with a caller-supplied header
// Builder.
func NewEncodeReaderBuilder(src zio.BufferedSource, lvl level.Level, b *Builder) (*EncodeReader, error) {
	enc, err := mem.NewCompress(mem.Deflate, lvl, nil)
	if err != nil {
		return nil, err
	}
	cs := newCRCSource(src)
	return &EncodeReader{
		header:     b.encode(lvl.Int(), level.Best.Int(), level.Fastest.Int()),
		headerInfo: b.header(),
		crcSrc:     cs,
		body:       zio.NewReader[*mem.Compress](cs, enc),
	}, nil
}

// Header returns the header this encoder emits ahead of its compressed
// body.
func (e *EncodeReader) Header() Header { return e.headerInfo }

func (e *EncodeReader) Read(into []byte) (int, error) {
	if e.eof {
		return e.readFooter(into)
	}

	amt := 0
	if e.pos < len(e.header) {
		amt = copy(into, e.header[e.pos:])
		e.pos += amt
		if amt == len(into) {
			return amt, nil
		}
		into = into[amt:]
	}

	n, err := e.body.Read(into)
	if err != nil {
		if errors.Is(err, io.EOF) {
			e.eof = true
			e.pos = 0
			fn, ferr := e.readFooter(into)
			return amt + fn, ferr
		}
		return amt + n, err
	}
	return amt + n, nil
}

func (e *EncodeReader) readFooter(into []byte) (int, error) {
	if e.pos == 8 {
		return 0, io.EOF
	}
	binary.LittleEndian.PutUint32(e.trailer[0:4], e.crcSrc.crc.Sum32())
	binary.LittleEndian.PutUint32(e.trailer[4:8], e.crcSrc.crc.Amount())
	n := copy(into, e.trailer[e.pos:])
	e.pos += n
	return n, nil
}
