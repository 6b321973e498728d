package deflate

import (
	"math/rand"
	"testing"
)

func TestBitWriter_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	type write struct {
		v     uint32
		nBits int
	}
	var writes []write
	for i := 0; i < 2000; i++ {
		n := 1 + rng.Intn(24)
		v := uint32(rng.Int63()) & ((1 << uint(n)) - 1)
		writes = append(writes, write{v, n})
	}

	bw := NewBitWriter(64)
	for _, w := range writes {
		bw.WriteBits(w.v, w.nBits)
	}
	data := bw.Finish()

	var bitPos int
	readBits := func(n int) uint32 {
		var out uint32
		for i := 0; i < n; i++ {
			byteIdx := bitPos / 8
			bitIdx := uint(bitPos % 8)
			bit := (data[byteIdx] >> bitIdx) & 1
			out |= uint32(bit) << uint(i)
			bitPos++
		}
		return out
	}

	for i, w := range writes {
		got := readBits(w.nBits)
		if got != w.v {
			t.Fatalf("write %d: got %#x, want %#x", i, got, w.v)
		}
	}
}

func TestBitWriter_NumBytes(t *testing.T) {
	bw := NewBitWriter(16)
	bw.WriteBits(0x1, 1)
	if n := bw.NumBytes(); n != 1 {
		t.Errorf("NumBytes after 1 bit = %d, want 1", n)
	}
	bw.WriteBits(0xFF, 8)
	if n := bw.NumBytes(); n != 2 {
		t.Errorf("NumBytes after 9 bits = %d, want 2", n)
	}
}

func TestBitWriter_AlignToByte(t *testing.T) {
	bw := NewBitWriter(16)
	bw.WriteBits(1, 3)
	bw.AlignToByte()
	data := bw.Finish()
	if len(data) != 1 {
		t.Fatalf("len(data) = %d, want 1", len(data))
	}
	if data[0] != 0x1 {
		t.Errorf("data[0] = %#x, want 0x1", data[0])
	}
}

func TestBitWriter_WriteRawBytes(t *testing.T) {
	bw := NewBitWriter(16)
	bw.WriteBits(0x5, 4)
	bw.AlignToByte()
	bw.WriteRawBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	data := bw.Finish()
	want := []byte{0x5, 0xDE, 0xAD, 0xBE, 0xEF}
	if len(data) != len(want) {
		t.Fatalf("len(data) = %d, want %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data[%d] = %#x, want %#x", i, data[i], want[i])
		}
	}
}

func TestCountSink_MatchesBitWriter(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	cs := &countSink{}

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(16)
		v := uint32(rng.Int63()) & ((1 << uint(n)) - 1)
		cs.WriteBits(v, n)
	}

	var total int64
	bw := NewBitWriter(64)
	rng2 := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		n := 1 + rng2.Intn(16)
		v := uint32(rng2.Int63()) & ((1 << uint(n)) - 1)
		bw.WriteBits(v, n)
		total += int64(n)
	}
	if cs.bits != total {
		t.Errorf("countSink.bits = %d, want %d", cs.bits, total)
	}
	if got, want := int64(bw.NumBytes()), (cs.bits+7)/8; got != want {
		t.Errorf("BitWriter.NumBytes = %d, want %d (countSink bits rounded up)", got, want)
	}
}
