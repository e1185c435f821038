package mem

import "errors"

// Sentinel errors returned by Compress/Decompress. Callers compare with
// errors.Is.
var (
	// ErrFinished means Step was called again after the handle already
	// reported codec.StreamEnd.
	ErrFinished = errors.New("mem: stream already finished")

	// ErrCorrupt means the decompressor found data it could not parse as
	// a valid compressed stream.
	ErrCorrupt = errors.New("mem: corrupt compressed data")
)

// NeedDictionaryError reports that decompression stalled because a preset
// dictionary is required. SetDictionary on the Decompress handle and retry.
type NeedDictionaryError struct {
	// Adler32 identifies which dictionary the stream expects: the
	// DICTID field of the zlib header.
	Adler32 uint32
}

func (e *NeedDictionaryError) Error() string {
	return "mem: preset dictionary required to continue decompression"
}

func (e *NeedDictionaryError) Is(target error) bool {
	_, ok := target.(*NeedDictionaryError)
	return ok
}
