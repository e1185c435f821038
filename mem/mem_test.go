package mem

import (
	"bytes"
	"testing"

	"github.com/nazgaron/gzflate/codec"
	"github.com/nazgaron/gzflate/level"
)

func roundTrip(t *testing.T, format Format, data []byte) []byte {
	t.Helper()

	c, err := NewCompress(format, level.Default, nil)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	var compressed bytes.Buffer
	in := data
	buf := make([]byte, 24)
	for {
		n, produced, status, err := c.Compress(in, buf, codec.Finish)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		in = in[n:]
		compressed.Write(buf[:produced])
		if status == codec.StreamEnd {
			break
		}
	}
	if c.TotalIn() != uint64(len(data)) {
		t.Errorf("TotalIn = %d, want %d", c.TotalIn(), len(data))
	}
	if c.TotalOut() != uint64(compressed.Len()) {
		t.Errorf("TotalOut = %d, want %d", c.TotalOut(), compressed.Len())
	}

	d := NewDecompress(format, nil)
	var out bytes.Buffer
	cin := compressed.Bytes()
	obuf := make([]byte, 16)
	for {
		n, produced, status, err := d.Decompress(cin, obuf, codec.None)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		cin = cin[n:]
		out.Write(obuf[:produced])
		if status == codec.StreamEnd {
			break
		}
		if n == 0 && produced == 0 && len(cin) == 0 {
			t.Fatalf("decompress stalled")
		}
	}
	if d.TotalOut() != uint64(len(data)) {
		t.Errorf("TotalOut = %d, want %d", d.TotalOut(), len(data))
	}
	return out.Bytes()
}

func TestRoundTripDeflate(t *testing.T) {
	t.Parallel()
	data := bytes.Repeat([]byte("mem codec round trip payload "), 300)
	got := roundTrip(t, Deflate, data)
	if !bytes.Equal(got, data) {
		t.Fatalf("deflate round trip mismatch")
	}
}

func TestRoundTripZlib(t *testing.T) {
	t.Parallel()
	data := []byte("short zlib payload")
	got := roundTrip(t, Zlib, data)
	if !bytes.Equal(got, data) {
		t.Fatalf("zlib round trip mismatch")
	}
}

func TestCompressVectorGrowsLength(t *testing.T) {
	t.Parallel()

	c, err := NewCompress(Deflate, level.Fastest, nil)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	dst := make([]byte, 0, 256)
	data := []byte("vector variant payload")
	in := data
	for {
		var status codec.Status
		var n int
		dst, n, status, err = c.CompressVector(in, dst, codec.Finish)
		if err != nil {
			t.Fatalf("CompressVector: %v", err)
		}
		in = in[n:]
		if status == codec.StreamEnd {
			break
		}
	}
	if len(dst) == 0 {
		t.Fatalf("CompressVector produced nothing")
	}

	d := NewDecompress(Deflate, nil)
	outDst := make([]byte, 0, 256)
	cin := dst
	for {
		var status codec.Status
		var n int
		outDst, n, status, err = d.DecompressVector(cin, outDst, codec.None)
		if err != nil {
			t.Fatalf("DecompressVector: %v", err)
		}
		cin = cin[n:]
		if status == codec.StreamEnd {
			break
		}
	}
	if !bytes.Equal(outDst, data) {
		t.Fatalf("vector round trip mismatch: got %q want %q", outDst, data)
	}
}

func TestDecompressCorruptData(t *testing.T) {
	t.Parallel()

	d := NewDecompress(Deflate, nil)
	buf := make([]byte, 16)
	garbage := bytes.Repeat([]byte{0xff}, 32)
	if _, _, _, err := d.Decompress(garbage, buf, codec.None); err == nil {
		t.Fatalf("expected an error on garbage input")
	}
}

func TestCompressResetClearsCounters(t *testing.T) {
	t.Parallel()

	c, err := NewCompress(Deflate, level.Default, nil)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	buf := make([]byte, 64)
	c.Compress([]byte("hello"), buf, codec.Finish)
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if c.TotalIn() != 0 || c.TotalOut() != 0 {
		t.Fatalf("Reset left nonzero counters: in=%d out=%d", c.TotalIn(), c.TotalOut())
	}
}

func TestDictionaryRoundTrip(t *testing.T) {
	t.Parallel()

	dict := []byte("recurring-prefix-bytes-used-as-a-dictionary")
	c, err := NewCompress(Zlib, level.Default, dict)
	if err != nil {
		t.Fatalf("NewCompress: %v", err)
	}
	data := append(append([]byte{}, dict...), []byte("-suffix")...)
	var compressed bytes.Buffer
	in := data
	buf := make([]byte, 64)
	for {
		n, produced, status, err := c.Compress(in, buf, codec.Finish)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		in = in[n:]
		compressed.Write(buf[:produced])
		if status == codec.StreamEnd {
			break
		}
	}

	d := NewDecompress(Zlib, dict)
	var out bytes.Buffer
	cin := compressed.Bytes()
	for {
		n, produced, status, err := d.Decompress(cin, buf, codec.None)
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
		t.Fatalf("dictionary round trip mismatch")
	}
}
