package gzdeflate

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/deepteams/gzdeflate/internal/deflate"
)

// gzipHeader is the fixed 10-byte RFC 1952 member header this package
// always emits: magic, compression method 8 (DEFLATE), no flags, a zero
// modification time, no extra flags, and OS byte 0xFF (unknown), matching
// a minimal conformant producer.
var gzipHeader = [10]byte{0x1F, 0x8B, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF}

// Compress writes a complete gzip stream for input to w: the fixed
// 10-byte header, a DEFLATE payload produced by this package's own
// encoder, then an 8-byte trailer (CRC-32 of input, then its length mod
// 2^32, both little-endian). If opts is nil, DefaultOptions is used.
//
// Compress holds the entire input resident in memory; streaming input is
// out of scope.
func Compress(w io.Writer, input []byte, opts *Options) error {
	if _, err := w.Write(gzipHeader[:]); err != nil {
		return err
	}

	payload, err := deflate.Encode(input, opts.toInternal())
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}

	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc32.ChecksumIEEE(input))
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(input)))
	_, err = w.Write(trailer[:])
	return err
}
