package gzip

import (
	"github.com/nazgaron/gzflate/crc32x"
	"github.com/nazgaron/gzflate/internal/zio"
)

// crcSource wraps a BufferedSource, hashing every byte as it is Discard-ed
// (i.e. actually consumed, as opposed to merely Peek-ed). EncodeReader uses
// it to compute the CRC-32 of the raw bytes it is compressing, mirroring
// flate2-rs's CrcReader but adapted to the Peek/Discard buffered contract
// zio.Reader requires of its source rather than a plain io.Reader.
type crcSource struct {
	inner zio.BufferedSource
	crc   *crc32x.Crc
	peek  []byte
}

func newCRCSource(inner zio.BufferedSource) *crcSource {
	return &crcSource{inner: inner, crc: crc32x.New()}
}

func (c *crcSource) Read(p []byte) (int, error) {
	n, err := c.inner.Read(p)
	if n > 0 {
		c.crc.Update(p[:n])
	}
	return n, err
}

func (c *crcSource) Buffered() int { return c.inner.Buffered() }

func (c *crcSource) Peek(n int) ([]byte, error) {
	v, err := c.inner.Peek(n)
	c.peek = v
	return v, err
}

func (c *crcSource) Discard(n int) (int, error) {
	if n > 0 && n <= len(c.peek) {
		c.crc.Update(c.peek[:n])
	}
	d, err := c.inner.Discard(n)
	return d, err
}
