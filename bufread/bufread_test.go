package bufread

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/nazgaron/gzflate/level"
)

func TestDeflateRoundTrip(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("bufread deflate payload "), 300)
	src, err := NewDeflateEncodeReader(bufio.NewReader(bytes.NewReader(data)), level.Default, nil)
	if err != nil {
		t.Fatalf("NewDeflateEncodeReader: %v", err)
	}
	compressed, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll(encode): %v", err)
	}

	r := NewDeflateReader(bufio.NewReader(bytes.NewReader(compressed)), nil)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll(decode): %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("deflate round trip mismatch: got %d bytes want %d", len(got), len(data))
	}
}

func TestZlibRoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte("short zlib payload through bufread")
	src, err := NewZlibEncodeReader(bufio.NewReader(bytes.NewReader(data)), level.Best, nil)
	if err != nil {
		t.Fatalf("NewZlibEncodeReader: %v", err)
	}
	compressed, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll(encode): %v", err)
	}

	r := NewZlibReader(bufio.NewReader(bytes.NewReader(compressed)), nil)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll(decode): %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("zlib round trip mismatch: got %q want %q", got, data)
	}
}

func TestGzipRoundTrip(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("bufread gzip payload "), 200)
	enc, err := NewGzipEncodeReader(bufio.NewReader(bytes.NewReader(data)), level.Default)
	if err != nil {
		t.Fatalf("NewGzipEncodeReader: %v", err)
	}
	compressed, err := io.ReadAll(enc)
	if err != nil {
		t.Fatalf("ReadAll(encode): %v", err)
	}

	r := NewGzipReader(bufio.NewReader(bytes.NewReader(compressed)))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll(decode): %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("gzip round trip mismatch: got %d bytes want %d", len(got), len(data))
	}
}
