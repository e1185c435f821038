// Package zio provides the two generic stream adapters every façade
// namespace (read/, write/, bufread/) builds on: a read-driven adapter
// over a buffered byte source, and a write-driven adapter over any byte
// sink. Both are parameterised by codec direction so the same code backs
// compression and decompression.
package zio

import (
	"errors"
	"fmt"
	"io"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/mem"
)

// Coder is the shape common to *mem.Compress and *mem.Decompress: a single
// bounded step consuming input and filling output.
type Coder interface {
	Step(input, output []byte, flush codec.Flush) (consumed, produced int, status codec.Status, err error)
}

// BufferedSource is the minimal view of a buffered reader the read-driven
// adapter needs. *bufio.Reader already satisfies this.
type BufferedSource interface {
	io.Reader
	Buffered() int
	Peek(n int) ([]byte, error)
	Discard(n int) (int, error)
}

// mapErr turns a corrupt-stream error from the codec layer into the
// invalid-input error io.Reader/io.Writer callers expect.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mem.ErrCorrupt) {
		return fmt.Errorf("corrupt deflate stream: %w", err)
	}
	return err
}
