// Package crc32x implements the IEEE CRC-32 checksum used by the gzip
// trailer, with a SIMD-accelerated fast path selected at init time.
//
// It mirrors the split found in flate2-rs's crc module: a tabular fallback
// that is always correct (here, the standard library's hash/crc32, treated
// as an external collaborator consumed only through its narrow
// Update(initial, data) contract) and an optional folding implementation
// using carryless multiplication that both must agree with bit-for-bit.
package crc32x

import "hash/crc32"

// Crc is a running CRC-32 (IEEE 802.3 polynomial) accumulator paired with a
// 64-bit byte counter. The zero value is an empty checksum, the same state
// New returns.
type Crc struct {
	sum uint32
	n   uint64
}

// New returns a Crc in its initial (zero-checksum) state.
func New() *Crc {
	return &Crc{}
}

// Write implements io.Writer, feeding p through the checksum. It never
// returns an error.
func (c *Crc) Write(p []byte) (int, error) {
	c.sum = update(c.sum, p)
	c.n += uint64(len(p))
	return len(p), nil
}

// Update is an alias for Write that does not pretend to be an io.Writer,
// matching the vocabulary used elsewhere in this package (spec's
// update(&data)).
func (c *Crc) Update(p []byte) {
	c.sum = update(c.sum, p)
	c.n += uint64(len(p))
}

// Sum32 returns the checksum of all bytes written so far.
func (c *Crc) Sum32() uint32 { return c.sum }

// Amount returns the number of bytes written so far, truncated to 32 bits
// (matching the gzip trailer's mod-2^32 length field).
func (c *Crc) Amount() uint32 { return uint32(c.n) }

// Len returns the full 64-bit byte count, which never wraps in practice for
// any stream this process could hold in memory.
func (c *Crc) Len() uint64 { return c.n }

// Reset zeroes the checksum and byte counter.
func (c *Crc) Reset() {
	c.sum = 0
	c.n = 0
}

// Combine updates c to the checksum of (bytes previously written to c)
// followed by (bytes previously written to other), as if c had consumed
// other's input directly after its own.
func (c *Crc) Combine(other *Crc) {
	c.sum = Combine(c.sum, other.sum, other.n)
	c.n += other.n
}

// Checksum returns the IEEE CRC-32 of data, seeded with initial.
func Checksum(initial uint32, data []byte) uint32 {
	return update(initial, data)
}

// update dispatches to the SIMD folding path when the current hardware
// supports it and data is large enough to be worth the setup cost, falling
// back to the tabular implementation otherwise.
func update(crc uint32, data []byte) uint32 {
	if simdAvailable && len(data) >= simdMinBytes {
		return simdUpdate(crc, data, fallbackUpdate)
	}
	return fallbackUpdate(crc, data)
}

// fallbackUpdate is the external tabular collaborator described in spec.md
// §6: "a pure function (initial, data) -> crc". The standard library owns
// the table and the slicing-by-8 inner loop; this package only calls it.
func fallbackUpdate(initial uint32, data []byte) uint32 {
	return crc32.Update(initial, crc32.IEEETable, data)
}
