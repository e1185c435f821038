package crc32x

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"
)

func TestKnownVectors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want uint32
	}{
		{"hello", 0x3610A686},
		{"The quick brown fox jumps over the lazy dog", 0x414FA339},
	}

	for _, c := range cases {
		if got := Checksum(0, []byte(c.in)); got != c.want {
			t.Errorf("Checksum(%q) = %#08x, want %#08x", c.in, got, c.want)
		}

		crc := New()
		crc.Update([]byte(c.in))
		if crc.Sum32() != c.want {
			t.Errorf("Crc.Update(%q).Sum32() = %#08x, want %#08x", c.in, crc.Sum32(), c.want)
		}
		if crc.Amount() != uint32(len(c.in)) {
			t.Errorf("Crc.Amount() = %d, want %d", crc.Amount(), len(c.in))
		}
	}
}

func TestResetCombineIdentity(t *testing.T) {
	t.Parallel()

	crc := New()
	crc.Update([]byte("some bytes"))
	crc.Reset()
	if crc.Sum32() != 0 || crc.Amount() != 0 {
		t.Fatalf("Reset did not zero state: sum=%#08x amount=%d", crc.Sum32(), crc.Amount())
	}

	crc.Update([]byte("abc"))
	before := crc.Sum32()
	empty := New()
	crc.Combine(empty)
	if crc.Sum32() != before {
		t.Fatalf("Combine with zero-length identity changed sum: %#08x -> %#08x", before, crc.Sum32())
	}
}

func TestCombineMatchesWholeRun(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 5000)
	rng.Read(data)

	for _, split := range []int{0, 1, 17, 127, 128, 129, 4999, 5000} {
		a, b := data[:split], data[split:]

		whole := Checksum(0, data)

		crcA := New()
		crcA.Update(a)
		crcB := New()
		crcB.Update(b)
		crcA.Combine(crcB)

		if crcA.Sum32() != whole {
			t.Errorf("split %d: combine = %#08x, want %#08x", split, crcA.Sum32(), whole)
		}

		combined := Combine(Checksum(0, a), Checksum(0, b), uint64(len(b)))
		if combined != whole {
			t.Errorf("split %d: Combine() = %#08x, want %#08x", split, combined, whole)
		}
	}
}

func TestCombineAssociative(t *testing.T) {
	t.Parallel()

	a, b, c := []byte("foo-"), []byte("bar-"), []byte("baz")

	crcA, crcB, crcC := Checksum(0, a), Checksum(0, b), Checksum(0, c)

	left := Combine(Combine(crcA, crcB, uint64(len(b))), crcC, uint64(len(c)))
	right := Combine(crcA, Combine(crcB, crcC, uint64(len(c))), uint64(len(b)+len(c)))

	if left != right {
		t.Fatalf("combine not associative: %#08x vs %#08x", left, right)
	}
}

func TestFallbackAgreesWithDispatch(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	for _, size := range []int{0, 1, 15, 16, 100, 127, 128, 129, 1000, 70000} {
		data := make([]byte, size)
		rng.Read(data)

		for _, seed := range []uint32{0, 1, 0xffffffff, 0x12345678} {
			got := update(seed, data)
			want := fallbackUpdate(seed, data)
			if got != want {
				t.Fatalf("size %d seed %#x: dispatch = %#08x, fallback = %#08x", size, seed, got, want)
			}
		}
	}
}

func TestReaderWriterPassThrough(t *testing.T) {
	t.Parallel()

	data := []byte("the quick brown fox jumps over the lazy dog, many times over")

	var buf bytes.Buffer
	cw := NewWriter(&buf)
	if _, err := cw.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if cw.Crc().Sum32() != Checksum(0, data) {
		t.Errorf("Writer crc = %#08x, want %#08x", cw.Crc().Sum32(), Checksum(0, data))
	}

	cr := NewReader(bytes.NewReader(buf.Bytes()))
	got, err := readAll(cr)
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("Reader pass-through mismatch")
	}
	if cr.Crc().Sum32() != Checksum(0, data) {
		t.Errorf("Reader crc = %#08x, want %#08x", cr.Crc().Sum32(), Checksum(0, data))
	}
}

func readAll(r *Reader) ([]byte, error) {
	var out []byte
	buf := make([]byte, 7)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
	}
}
