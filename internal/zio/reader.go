package zio

import (
	"errors"
	"io"

	"github.com/nazgaron/gzflate/codec"
)

// Reader adapts a Coder to io.Reader, pulling bytes from a buffered source
// on demand and driving the codec until it can return progress or EOF.
type Reader[C Coder] struct {
	src   BufferedSource
	coder C

	// pending is how many bytes at the front of the source's currently
	// buffered region have already been handed to coder.Step in a prior
	// iteration but not yet Discard-ed. A coder is not obligated to
	// consume everything it is given in one call (a decompressor may be
	// sitting on a gzip trailer, or a member boundary, bundled into the
	// same buffered read), so the next iteration must only offer the
	// genuinely new tail -- re-submitting already-submitted bytes would
	// duplicate them in the coder's internal history.
	pending int

	// done is set once the coder has reported StreamEnd (or the source
	// is exhausted with nothing more to give); every Read call from then
	// on returns io.EOF directly instead of re-entering the coder, which
	// may have any leftover buffered bytes sitting unconsumed ahead of
	// it (trailer bytes a higher layer, e.g. gzip, still needs to read
	// raw) and would otherwise error with "already finished".
	done bool
}

// NewReader constructs a read-driven adapter. coder is driven to
// completion as src is exhausted.
func NewReader[C Coder](src BufferedSource, coder C) *Reader[C] {
	return &Reader[C]{src: src, coder: coder}
}

// Coder returns the underlying codec handle, for callers that need to
// inspect TotalIn/TotalOut or install a dictionary mid-stream.
func (r *Reader[C]) Coder() C { return r.coder }

func (r *Reader[C]) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	for {
		view, atEOF, err := r.fillView()
		if err != nil {
			return 0, err
		}

		flush := codec.None
		if atEOF {
			flush = codec.Finish
		}

		newBytes := view[r.pending:]
		consumed, produced, status, err := r.coder.Step(newBytes, p, flush)
		if err != nil {
			return produced, mapErr(err)
		}
		if consumed > 0 {
			if _, derr := r.src.Discard(consumed); derr != nil {
				return produced, derr
			}
		}
		r.pending = len(view) - consumed

		if produced == 0 && status != codec.StreamEnd && !atEOF && len(p) > 0 {
			// No progress yet, but the source isn't exhausted and the
			// caller has room: loop rather than signal a spurious EOF.
			continue
		}

		if produced == 0 && (atEOF || status == codec.StreamEnd) {
			r.done = true
			return 0, io.EOF
		}
		if status == codec.StreamEnd {
			r.done = true
		}
		return produced, nil
	}
}

// fillView asks the source for a view of everything it currently has
// buffered, forcing at least one fill attempt when the buffer is empty so
// EOF can be distinguished from "nothing buffered yet".
func (r *Reader[C]) fillView() (view []byte, atEOF bool, err error) {
	if r.src.Buffered() == 0 {
		if _, perr := r.src.Peek(1); perr != nil {
			if errors.Is(perr, io.EOF) {
				return nil, true, nil
			}
			return nil, false, perr
		}
	}
	view, err = r.src.Peek(r.src.Buffered())
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, false, err
	}
	return view, false, nil
}
