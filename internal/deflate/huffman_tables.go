package deflate

import "sort"

// HuffmanCode holds a complete canonical Huffman code for encoding: for
// each symbol in the alphabet it stores the code length and the
// bit-reversed codeword ready to be written LSB-first.
type HuffmanCode struct {
	NumSymbols  int
	CodeLengths []uint8
	Codes       []uint16
}

// generateCanonicalCodes assigns canonical codewords from tree.CodeLengths
// per RFC 1951 §3.2.2: symbols are ordered by (length, symbol index) and
// assigned consecutive values within each length class, then bit-reversed
// so a BitWriter emitting them LSB-first reproduces the required
// MSB-first Huffman transmission order.
func generateCanonicalCodes(tree *HuffmanCode) {
	n := tree.NumSymbols

	maxLen := 0
	for _, cl := range tree.CodeLengths {
		if int(cl) > maxLen {
			maxLen = int(cl)
		}
	}
	if maxLen == 0 {
		return
	}

	type symLen struct {
		symbol int
		length uint8
	}
	symbols := make([]symLen, 0, n)
	for i := 0; i < n; i++ {
		if tree.CodeLengths[i] > 0 {
			symbols = append(symbols, symLen{i, tree.CodeLengths[i]})
		}
	}
	sort.SliceStable(symbols, func(i, j int) bool {
		if symbols[i].length != symbols[j].length {
			return symbols[i].length < symbols[j].length
		}
		return symbols[i].symbol < symbols[j].symbol
	})

	code := uint32(0)
	prevLen := uint8(0)
	for _, s := range symbols {
		if s.length > prevLen {
			code <<= (s.length - prevLen)
			prevLen = s.length
		}
		tree.Codes[s.symbol] = reverseBits(code, int(s.length))
		code++
	}
}

// reverseBits reverses the lower nBits of v.
func reverseBits(v uint32, nBits int) uint16 {
	var result uint32
	for i := 0; i < nBits; i++ {
		result = (result << 1) | (v & 1)
		v >>= 1
	}
	return uint16(result)
}

// WriteSymbol emits symbol's canonical codeword to sink.
func (t *HuffmanCode) WriteSymbol(sink bitSink, symbol int) {
	length := t.CodeLengths[symbol]
	if length == 0 {
		panic("deflate: symbol has zero-length code")
	}
	sink.WriteBits(uint32(t.Codes[symbol]), int(length))
}

// BitCost returns the cost in bits of emitting one instance of symbol.
func (t *HuffmanCode) BitCost(symbol int) int {
	return int(t.CodeLengths[symbol])
}
