// Package write is the write-driven façade (spec.md §4.5): adapters that
// push bytes into an arbitrary io.Writer sink. Deflate and zlib, in both
// directions, are direct instantiations of the generic zio.Writer adapter.
// Gzip compression is a direct re-export of gzip.Writer; gzip
// decompression has no generic push equivalent (the core decoder is
// pull-shaped, per spec.md §4.4.4), so this package drives it from a
// pushSource instead -- see gzip_decompress.go.
package write

import (
	"io"

	"github.com/nazgaron/gzflate/gzip"
	"github.com/nazgaron/gzflate/internal/zio"
	"github.com/nazgaron/gzflate/level"
	"github.com/nazgaron/gzflate/mem"
)

// NewDeflateWriter compresses bytes written to it into a raw DEFLATE
// stream pushed to dst. Callers must call Close to flush the compressor
// to completion.
func NewDeflateWriter(dst io.Writer, lvl level.Level, dict []byte) (*zio.Writer[*mem.Compress], error) {
	c, err := mem.NewCompress(mem.Deflate, lvl, dict)
	if err != nil {
		return nil, err
	}
	return zio.NewWriter[*mem.Compress](dst, c), nil
}

// NewDeflateDecompressWriter decompresses a raw DEFLATE stream written to
// it, pushing decompressed bytes to dst.
func NewDeflateDecompressWriter(dst io.Writer, dict []byte) *zio.Writer[*mem.Decompress] {
	return zio.NewWriter[*mem.Decompress](dst, mem.NewDecompress(mem.Deflate, dict))
}

// NewZlibWriter compresses bytes written to it into a zlib stream pushed
// to dst.
func NewZlibWriter(dst io.Writer, lvl level.Level, dict []byte) (*zio.Writer[*mem.Compress], error) {
	c, err := mem.NewCompress(mem.Zlib, lvl, dict)
	if err != nil {
		return nil, err
	}
	return zio.NewWriter[*mem.Compress](dst, c), nil
}

// NewZlibDecompressWriter decompresses a zlib stream written to it,
// pushing decompressed bytes to dst.
func NewZlibDecompressWriter(dst io.Writer, dict []byte) *zio.Writer[*mem.Decompress] {
	return zio.NewWriter[*mem.Decompress](dst, mem.NewDecompress(mem.Zlib, dict))
}

// NewGzipWriter compresses bytes written to it into a gzip stream pushed
// to dst, with a default (empty) header.
func NewGzipWriter(dst io.Writer, lvl level.Level) (*gzip.Writer, error) {
	return gzip.NewWriter(dst, lvl)
}

// NewGzipWriterBuilder is NewGzipWriter with a caller-supplied header
// builder.
func NewGzipWriterBuilder(dst io.Writer, lvl level.Level, b *gzip.Builder) (*gzip.Writer, error) {
	return gzip.NewWriterBuilder(dst, lvl, b)
}
