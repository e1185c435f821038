//go:build !amd64

package crc32x

// No folding implementation is wired up for this architecture; every call
// goes through the tabular fallback. simdMinBytes is irrelevant here since
// simdAvailable is always false, but it is kept so update() in crc32.go
// does not need a build-tagged branch of its own.
const simdMinBytes = 128

var simdAvailable = false

func simdUpdate(crc uint32, data []byte, fallback func(uint32, []byte) uint32) uint32 {
	return fallback(crc, data)
}
