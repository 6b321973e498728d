package deflate

import (
	"encoding/binary"

	"github.com/deepteams/gzdeflate/internal/pool"
)

const (
	// writerBits is the number of bits flushed at a time (32 on 64-bit).
	writerBits = 32
	// writerBytes is the number of bytes written per flush (4 on 64-bit).
	writerBytes = 4
)

// bitSink is the narrow interface the tree-emission routine writes
// through. A BitWriter sink actually produces bytes; a countSink only
// tallies how many bits would have been written, letting the block
// splitter price a candidate block exactly without materializing it.
type bitSink interface {
	WriteBits(v uint32, nBits int)
}

// countSink is a bitSink that discards its bits and only counts them.
// The splitter runs the same code-length and symbol emission logic
// through a countSink to get an exact bit cost for a candidate block
// before committing to a BTYPE choice.
type countSink struct {
	bits int64
}

func (c *countSink) WriteBits(_ uint32, nBits int) {
	c.bits += int64(nBits)
}

// BitWriter packs bits into a byte stream least-significant-bit first,
// as RFC 1951 §3.1.1 requires for everything except the Huffman codes
// themselves (which are pre-reversed by the canonical code builder so
// that writing them LSB-first here reproduces their MSB-first wire
// order).
type BitWriter struct {
	bits uint64 // bit accumulator
	used int    // number of bits used in accumulator
	buf  []byte // output buffer
	cur  int    // current write position in buf
}

// NewBitWriter creates a BitWriter with an initial buffer pre-allocated
// for expectedSize bytes, drawn from the shared buffer pool.
func NewBitWriter(expectedSize int) *BitWriter {
	if expectedSize < 1024 {
		expectedSize = 1024
	}
	return &BitWriter{
		buf: pool.Get(expectedSize),
	}
}

// WriteBits writes nBits (0..32) from the lower bits of v into the
// bitstream in least-significant-bit-first order.
func (bw *BitWriter) WriteBits(v uint32, nBits int) {
	if nBits == 0 {
		return
	}
	if bw.used >= writerBits {
		bw.flushBits()
	}
	bw.bits |= uint64(v) << uint(bw.used)
	bw.used += nBits
}

// flushBits writes the lower 32 bits of the accumulator to the output
// buffer as 4 little-endian bytes and shifts the accumulator right by 32.
func (bw *BitWriter) flushBits() {
	bw.grow(writerBytes)
	binary.LittleEndian.PutUint32(bw.buf[bw.cur:], uint32(bw.bits))
	bw.cur += writerBytes
	bw.bits >>= writerBits
	bw.used -= writerBits
}

// grow ensures at least n bytes of capacity remain at bw.cur.
func (bw *BitWriter) grow(n int) {
	if bw.cur+n <= len(bw.buf) {
		return
	}
	newSize := len(bw.buf) * 3 / 2
	need := bw.cur + n
	if newSize < need {
		newSize = need
	}
	tmp := pool.Get(newSize)
	copy(tmp, bw.buf[:bw.cur])
	pool.Put(bw.buf)
	bw.buf = tmp
}

// AlignToByte pads the accumulator with zero bits up to the next byte
// boundary, as required before a stored (BTYPE=00) block's header.
func (bw *BitWriter) AlignToByte() {
	if rem := bw.used % 8; rem != 0 {
		bw.WriteBits(0, 8-rem)
	}
}

// WriteRawBytes flushes any buffered bits (the caller must already be
// byte-aligned) and copies raw bytes directly into the output.
func (bw *BitWriter) WriteRawBytes(p []byte) {
	for bw.used > 0 {
		bw.flushPartialByte()
	}
	bw.grow(len(p))
	copy(bw.buf[bw.cur:], p)
	bw.cur += len(p)
}

func (bw *BitWriter) flushPartialByte() {
	bw.grow(1)
	bw.buf[bw.cur] = byte(bw.bits)
	bw.cur++
	bw.bits >>= 8
	if bw.used >= 8 {
		bw.used -= 8
	} else {
		bw.used = 0
	}
}

// Finish flushes all remaining bits to the output buffer and returns
// the complete encoded byte slice. The returned slice is owned by the
// caller; Release must not be called afterward.
func (bw *BitWriter) Finish() []byte {
	for bw.used >= writerBits {
		bw.flushBits()
	}
	bw.grow((bw.used + 7) >> 3)
	for bw.used > 0 {
		bw.flushPartialByte()
	}
	return bw.buf[:bw.cur]
}

// NumBytes returns the number of encoded bytes, including any partial
// byte in the accumulator.
func (bw *BitWriter) NumBytes() int {
	return bw.cur + (bw.used+7)/8
}

// Release returns the writer's backing buffer to the shared pool. It
// must not be called after Finish, which hands ownership to the caller.
func (bw *BitWriter) Release() {
	pool.Put(bw.buf)
	bw.buf = nil
}
