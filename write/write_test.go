package write

import (
	"bytes"
	"testing"

	"github.com/nazgaron/gzflate/gzip"
	"github.com/nazgaron/gzflate/level"
)

func TestDeflateWriterRoundTrip(t *testing.T) {
	t.Parallel()

	var compressed bytes.Buffer
	w, err := NewDeflateWriter(&compressed, level.Default, nil)
	if err != nil {
		t.Fatalf("NewDeflateWriter: %v", err)
	}
	data := bytes.Repeat([]byte("write-facade deflate payload "), 300)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var out bytes.Buffer
	dw := NewDeflateDecompressWriter(&out, nil)
	if _, err := dw.Write(compressed.Bytes()); err != nil {
		t.Fatalf("decompress Write: %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Fatalf("decompress Close: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("deflate push round trip mismatch: got %d bytes want %d", out.Len(), len(data))
	}
}

func TestGzipPushDecompressRoundTrip(t *testing.T) {
	t.Parallel()

	var compressed bytes.Buffer
	gw, err := NewGzipWriter(&compressed, level.Default)
	if err != nil {
		t.Fatalf("NewGzipWriter: %v", err)
	}
	data := bytes.Repeat([]byte("gzip push-decompress payload "), 500)
	if _, err := gw.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var out bytes.Buffer
	dw := NewGzipDecompressWriter(&out)
	compressedBytes := compressed.Bytes()
	// Feed in small chunks to exercise the suspendable header/body state
	// machine across many Write calls, rather than in one shot.
	for i := 0; i < len(compressedBytes); i += 7 {
		end := i + 7
		if end > len(compressedBytes) {
			end = len(compressedBytes)
		}
		if _, err := dw.Write(compressedBytes[i:end]); err != nil {
			t.Fatalf("push Write: %v", err)
		}
	}
	if err := dw.Close(); err != nil {
		t.Fatalf("push Close: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("gzip push-decompress mismatch: got %d bytes want %d", out.Len(), len(data))
	}
}

func TestGzipMultiPushDecompressRoundTrip(t *testing.T) {
	t.Parallel()

	var stream bytes.Buffer
	parts := [][]byte{[]byte("first pushed member"), []byte("second pushed member, a little longer")}
	for _, part := range parts {
		gw, err := NewGzipWriter(&stream, level.Default)
		if err != nil {
			t.Fatalf("NewGzipWriter: %v", err)
		}
		gw.Write(part)
		if err := gw.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	var out bytes.Buffer
	dw := NewGzipMultiDecompressWriter(&out)
	if _, err := dw.Write(stream.Bytes()); err != nil {
		t.Fatalf("push Write: %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Fatalf("push Close: %v", err)
	}
	want := append(append([]byte{}, parts[0]...), parts[1]...)
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("multi-member push decode mismatch: got %q want %q", out.Bytes(), want)
	}
}

func TestGzipWriterBuilderHeader(t *testing.T) {
	t.Parallel()

	b := gzip.NewBuilder().Filename([]byte("pushed.bin"))
	var compressed bytes.Buffer
	w, err := NewGzipWriterBuilder(&compressed, level.Default, b)
	if err != nil {
		t.Fatalf("NewGzipWriterBuilder: %v", err)
	}
	if got := w.Header().Filename(); string(got) != "pushed.bin" {
		t.Fatalf("Header().Filename() = %q, want %q", got, "pushed.bin")
	}
}
