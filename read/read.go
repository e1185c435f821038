// Package read is the read-driven façade (spec.md §4.5): adapters over an
// arbitrary, unbuffered io.Reader. Each adapter wraps its source in a
// bufio.Reader and delegates to bufread, which is built directly on the
// zio.BufferedSource contract.
package read

import (
	"bufio"
	"io"

	"github.com/nazgaron/gzflate/bufread"
	"github.com/nazgaron/gzflate/gzip"
	"github.com/nazgaron/gzflate/level"
)

// NewDeflateReader decompresses a raw DEFLATE stream read from src.
func NewDeflateReader(src io.Reader, dict []byte) io.Reader {
	return bufread.NewDeflateReader(bufio.NewReader(src), dict)
}

// NewDeflateEncodeReader compresses bytes read from src into a raw DEFLATE
// stream at the given level.
func NewDeflateEncodeReader(src io.Reader, lvl level.Level, dict []byte) (io.Reader, error) {
	return bufread.NewDeflateEncodeReader(bufio.NewReader(src), lvl, dict)
}

// NewZlibReader decompresses a zlib stream read from src.
func NewZlibReader(src io.Reader, dict []byte) io.Reader {
	return bufread.NewZlibReader(bufio.NewReader(src), dict)
}

// NewZlibEncodeReader compresses bytes read from src into a zlib stream at
// the given level.
func NewZlibEncodeReader(src io.Reader, lvl level.Level, dict []byte) (io.Reader, error) {
	return bufread.NewZlibEncodeReader(bufio.NewReader(src), lvl, dict)
}

// NewGzipReader decompresses a single gzip member read from src.
func NewGzipReader(src io.Reader) *gzip.Reader {
	return bufread.NewGzipReader(bufio.NewReader(src))
}

// NewGzipMultiReader decompresses every concatenated gzip member read
// from src as one logical stream.
func NewGzipMultiReader(src io.Reader) *gzip.Reader {
	return bufread.NewGzipMultiReader(bufio.NewReader(src))
}

// NewGzipEncodeReader compresses bytes read from src into a gzip stream at
// the given level, with a default (empty) header.
func NewGzipEncodeReader(src io.Reader, lvl level.Level) (*gzip.EncodeReader, error) {
	return bufread.NewGzipEncodeReader(bufio.NewReader(src), lvl)
}

// NewGzipEncodeReaderBuilder is NewGzipEncodeReader with a caller-supplied
// header builder.
func NewGzipEncodeReaderBuilder(src io.Reader, lvl level.Level, b *gzip.Builder) (*gzip.EncodeReader, error) {
	return bufread.NewGzipEncodeReaderBuilder(bufio.NewReader(src), lvl, b)
}
