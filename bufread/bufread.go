// Package bufread is the buffered-read façade (spec.md §4.5): adapters
// that pull bytes from a source the caller already has buffered --
// anything satisfying zio.BufferedSource, e.g. *bufio.Reader -- without
// layering on an extra internal buffer. read/ builds its unbuffered-source
// adapters on top of these by wrapping with bufio.NewReader first.
package bufread

import (
	"io"

	"github.com/nazgaron/gzflate/gzip"
	"github.com/nazgaron/gzflate/internal/zio"
	"github.com/nazgaron/gzflate/level"
	"github.com/nazgaron/gzflate/mem"
)

// NewDeflateReader decompresses a raw DEFLATE (RFC 1951) stream pulled
// from src. dict, if non-nil, is the preset dictionary to offer
// proactively.
func NewDeflateReader(src zio.BufferedSource, dict []byte) io.Reader {
	return zio.NewReader[*mem.Decompress](src, mem.NewDecompress(mem.Deflate, dict))
}

// NewDeflateEncodeReader compresses bytes pulled from src into a raw
// DEFLATE stream at the given level.
func NewDeflateEncodeReader(src zio.BufferedSource, lvl level.Level, dict []byte) (io.Reader, error) {
	c, err := mem.NewCompress(mem.Deflate, lvl, dict)
	if err != nil {
		return nil, err
	}
	return zio.NewReader[*mem.Compress](src, c), nil
}

// NewZlibReader decompresses a zlib (RFC 1950) stream pulled from src.
func NewZlibReader(src zio.BufferedSource, dict []byte) io.Reader {
	return zio.NewReader[*mem.Decompress](src, mem.NewDecompress(mem.Zlib, dict))
}

// NewZlibEncodeReader compresses bytes pulled from src into a zlib stream
// at the given level.
func NewZlibEncodeReader(src zio.BufferedSource, lvl level.Level, dict []byte) (io.Reader, error) {
	c, err := mem.NewCompress(mem.Zlib, lvl, dict)
	if err != nil {
		return nil, err
	}
	return zio.NewReader[*mem.Compress](src, c), nil
}

// NewGzipReader decompresses a single gzip member pulled from src.
func NewGzipReader(src zio.BufferedSource) *gzip.Reader {
	return gzip.NewReader(src)
}

// NewGzipMultiReader decompresses every concatenated gzip member pulled
// from src as one logical stream.
func NewGzipMultiReader(src zio.BufferedSource) *gzip.Reader {
	return gzip.NewMultiReader(src)
}

// NewGzipEncodeReader compresses bytes pulled from src into a gzip stream
// at the given level, with a default (empty) header.
func NewGzipEncodeReader(src zio.BufferedSource, lvl level.Level) (*gzip.EncodeReader, error) {
	return gzip.NewEncodeReader(src, lvl)
}

// NewGzipEncodeReaderBuilder is NewGzipEncodeReader with a caller-supplied
// header builder.
func NewGzipEncodeReaderBuilder(src zio.BufferedSource, lvl level.Level, b *gzip.Builder) (*gzip.EncodeReader, error) {
	return gzip.NewEncodeReaderBuilder(src, lvl, b)
}
