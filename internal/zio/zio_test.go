package zio

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/level"
	"github.com/nazgaron/gzflate/mem"
)

func TestReaderDecompressesFullyBuffered(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("read-driven adapter payload "), 500)
	compressed := compressAllMem(t, data)

	src := bufio.NewReader(bytes.NewReader(compressed))
	dec := mem.NewDecompress(mem.Deflate, nil)
	r := NewReader[*mem.Decompress](src, dec)

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("read-driven decompress mismatch: got %d bytes want %d", len(got), len(data))
	}
}

func TestReaderDecompressesSlowSource(t *testing.T) {
	t.Parallel()

	data := []byte("a short payload fed through a very small buffered reader")
	compressed := compressAllMem(t, data)

	src := bufio.NewReaderSize(bytes.NewReader(compressed), 4)
	dec := mem.NewDecompress(mem.Deflate, nil)
	r := NewReader[*mem.Decompress](src, dec)

	buf := make([]byte, 3)
	var out bytes.Buffer
	for {
		n, err := r.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("slow-source read mismatch: got %q want %q", out.Bytes(), data)
	}
}

func TestWriterCompressesAndFlushes(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	c, err := mem.NewCompress(mem.Deflate, level.Default, nil)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	w := NewWriter[*mem.Compress](&sink, c)

	data := bytes.Repeat([]byte("write-driven adapter payload "), 400)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := mem.NewDecompress(mem.Deflate, nil)
	var out bytes.Buffer
	cin := sink.Bytes()
	buf := make([]byte, 4096)
	for {
		n, produced, status, err := dec.Decompress(cin, buf, codec.None)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		cin = cin[n:]
		out.Write(buf[:produced])
		if status == codec.StreamEnd {
			break
		}
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("write-driven round trip mismatch")
	}
}

func TestWriterFlushProducesIndependentlyDecodableOutput(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	c, err := mem.NewCompress(mem.Deflate, level.Default, nil)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	w := NewWriter[*mem.Compress](&sink, c)

	if _, err := w.Write([]byte("first chunk before flush")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	beforeClose := sink.Len()
	if beforeClose == 0 {
		t.Fatalf("Flush produced no bytes")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if sink.Len() <= beforeClose {
		t.Fatalf("Close produced no additional bytes after Flush")
	}
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	c, err := mem.NewCompress(mem.Deflate, level.Default, nil)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	w := NewWriter[*mem.Compress](&sink, c)
	w.Write([]byte("payload"))
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	sizeAfterFirst := sink.Len()
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if sink.Len() != sizeAfterFirst {
		t.Fatalf("second Close changed output: %d -> %d", sizeAfterFirst, sink.Len())
	}
}

func compressAllMem(t *testing.T, data []byte) []byte {
	t.Helper()
	c, err := mem.NewCompress(mem.Deflate, level.Default, nil)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	var out bytes.Buffer
	in := data
	buf := make([]byte, 256)
	for {
		n, produced, status, err := c.Compress(in, buf, codec.Finish)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		in = in[n:]
		out.Write(buf[:produced])
		if status == codec.StreamEnd {
			break
		}
	}
	return out.Bytes()
}
