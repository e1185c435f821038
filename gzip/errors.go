package gzip

import "errors"

// Sentinel errors produced by the header parser and trailer validator, per
// spec.md §6/§7. Wrap with fmt.Errorf("%w: ...") where a more specific
// message is useful; callers compare with errors.Is.
var (
	// ErrHeader means the first two bytes were not 0x1f 0x8b or the
	// method byte was not 8 (deflate). Reader also reports it, joined with
	// io.ErrUnexpectedEOF, when the source ends inside a member header.
	ErrHeader = errors.New("gzip: invalid gzip header")

	// ErrChecksum means a validated checksum did not match: either the
	// header's FHCRC field against the running header CRC, or the
	// trailer's CRC-32/length fields against the decompressed stream.
	ErrChecksum = errors.New("gzip: corrupt gzip stream does not have a matching checksum")

	// ErrFieldZeroByte is the error (wrapped) that Builder.Filename and
	// Builder.Comment panic with when the field contains an embedded zero
	// byte, which cannot be encoded in the zero-terminated header field.
	ErrFieldZeroByte = errors.New("gzip: field contains a zero byte")

	// ErrWouldBlock is the sentinel a BufferedSource returns to signal
	// that it has no more bytes available right now without blocking,
	// per spec.md §5's "would-block signals from non-blocking sources
	// are propagated faithfully". The suspendable header parser keeps its
	// progress across any error from the source, and Reader checks
	// errors.Is(err, ErrWouldBlock) to return the signal with its state
	// preserved for a retry instead of failing outright.
	ErrWouldBlock = errors.New("gzip: source would block")
)
