package deflate

import "errors"

// ErrEmptyInput is returned by callers that choose to treat a zero-length
// input as an error condition. Encode itself does not return it -- an
// empty input is valid and produces a single empty final block -- but it
// is exposed here for callers that want to special-case it explicitly.
var ErrEmptyInput = errors.New("deflate: empty input")

// Encode compresses data into a complete DEFLATE bit stream (RFC 1951):
// tokenize, split into blocks, then emit each block in turn with BFINAL
// set on the last one. If opts is nil, DefaultOptions is used.
func Encode(data []byte, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	toks := Tokenize(data, opts.Parser)
	if err := toks.Validate(); err != nil {
		return nil, err
	}
	blocks, err := SplitBlocks(toks, opts)
	if err != nil {
		return nil, err
	}

	bw := NewBitWriter(len(data))
	offset := 0
	for i, b := range blocks {
		final := i == len(blocks)-1
		n := b.Tokens.UncompressedLen()
		if err := writeBlock(bw, b, data[offset:offset+n], final, opts.CodeLengthLimit); err != nil {
			return nil, err
		}
		offset += n
	}
	return bw.Finish(), nil
}

// writeBlock emits one block's 3-bit header (BFINAL, BTYPE) followed by
// its body, in whichever of the three RFC 1951 block formats b.BType
// selects. raw holds the original input bytes this block's tokens decode
// to, needed verbatim for a stored block since a back-reference may reach
// past this block into output an earlier block produced.
func writeBlock(bw *BitWriter, b *Block, raw []byte, final bool, codeLengthLimit int) error {
	bfinal := uint32(0)
	if final {
		bfinal = 1
	}
	bw.WriteBits(bfinal, 1)
	bw.WriteBits(uint32(b.BType), 2)

	switch b.BType {
	case btypeStored:
		writeStoredBody(bw, raw)
	case btypeFixed:
		writeTokenStream(bw, b.Tokens, fixedTreesOnce.litLen, fixedTreesOnce.dist)
	case btypeDynamic:
		hdr, err := buildDynamicHeader(b.LitLen, b.Dist, codeLengthLimit)
		if err != nil {
			return err
		}
		hdr.write(bw)
		writeTokenStream(bw, b.Tokens, b.LitLen, b.Dist)
	default:
		return errors.New("deflate: unknown block type")
	}
	return nil
}

// writeStoredBody emits a BTYPE=00 block: align to a byte boundary, then
// LEN/NLEN (each a 16-bit little-endian count, NLEN being LEN's one's
// complement), followed by raw verbatim. raw must already be the original
// input bytes this block covers -- a stored block's tokens cannot be
// decoded in isolation, since a back-reference may point past the start
// of this block into output an earlier block produced.
func writeStoredBody(bw *BitWriter, raw []byte) {
	bw.AlignToByte()

	n := len(raw)
	lenBytes := [4]byte{byte(n), byte(n >> 8), byte(^uint16(n)), byte(^uint16(n) >> 8)}
	bw.WriteRawBytes(lenBytes[:])
	bw.WriteRawBytes(raw)
}
