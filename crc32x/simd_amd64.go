//go:build amd64

package crc32x

import "golang.org/x/sys/cpu"

// simdMinBytes mirrors flate2-crc's x86.rs: folding has enough fixed setup
// cost (loading four 128-bit lanes before the main loop even starts) that
// below this size the fallback wins outright, so calculate() there defers
// to it directly.
const simdMinBytes = 128

var simdAvailable = cpu.X86.HasPCLMULQDQ && cpu.X86.HasSSE41 && cpu.X86.HasSSE2

// simdUpdate is implemented in simd_amd64.s. It folds 64 bytes at a time
// across four independent 128-bit accumulators, merges them down to one
// 128-bit value, reduces 128->64 bits with a pair of carryless multiplies,
// and finishes with a Barrett reduction 64->32, exactly as described in
// Intel's "Fast CRC Computation for Generic Polynomials Using PCLMULQDQ
// Instruction" and ported from flate2-crc/src/x86.rs. Any tail shorter than
// 128 bytes (the initial fold) or shorter than 16 bytes (the single-fold
// loop) is handed to fallback.
func simdUpdate(crc uint32, data []byte, fallback func(uint32, []byte) uint32) uint32 {
	if len(data) < simdMinBytes {
		return fallback(crc, data)
	}
	return simdFold(crc, data, fallback)
}

// simdFold is the assembly entry point; declared here so Go code can see
// its signature, defined in simd_amd64.s. tail bytes (anything left after
// the last full 16-byte lane) are resolved by calling back into fallback
// from the Go side after the asm routine returns the partially-reduced
// state and the count of bytes it consumed.
func simdFold(crc uint32, data []byte, fallback func(uint32, []byte) uint32) uint32 {
	consumed, partial := crc32SimdCore(crc, data)
	if consumed == len(data) {
		return partial
	}
	return fallback(partial, data[consumed:])
}

// crc32SimdCore is implemented in simd_amd64.s. It returns the number of
// leading bytes of data it folded into the checksum (always a multiple of
// 16, and 0 if data is too short to fold at all) and the CRC-32 of exactly
// that many leading bytes, seeded with crc.
func crc32SimdCore(crc uint32, data []byte) (consumed int, result uint32)
