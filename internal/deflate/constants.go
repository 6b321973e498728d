package deflate

// RFC 1951 format constants: window size, alphabet sizes, and the fixed
// length/distance code tables used to translate match lengths and
// distances into symbol/extra-bits pairs.

const (
	// WindowSize is the size of the LZ77 sliding dictionary.
	WindowSize = 1 << 15
	// MaxDistance is the largest representable back-reference distance.
	MaxDistance = WindowSize

	// MinMatchLength is the shortest back-reference DEFLATE can encode.
	MinMatchLength = 3
	// MaxMatchLength is the longest back-reference DEFLATE can encode.
	MaxMatchLength = 258

	// EndOfBlockSymbol terminates every block's literal/length stream.
	EndOfBlockSymbol = 256
	// FirstLengthSymbol is the first length code (257..285).
	FirstLengthSymbol = 257

	// NumLiteralLengthSymbols is the count of live literal/length symbols
	// (0-255 literals, 256 end-of-block, 257-285 length codes).
	NumLiteralLengthSymbols = 286
	// NumLiteralLengthCodes pads the literal/length alphabet to the size
	// the RFC fixed-code table assumes (286 and 287 are unused but the
	// canonical assignment still walks all 288 slots).
	NumLiteralLengthCodes = 288
	// NumDistanceSymbols is the count of distance symbols (0-29).
	NumDistanceSymbols = 30
	// NumCodeLengthSymbols is the size of the code-length alphabet used to
	// describe dynamic-block trees.
	NumCodeLengthSymbols = 19

	// MaxLitLenCodeLength is the longest permitted literal/length code.
	MaxLitLenCodeLength = 15
	// MaxDistCodeLength is the longest permitted distance code.
	MaxDistCodeLength = 15
	// MaxCodeLengthCodeLength is the longest permitted code-length-alphabet code.
	MaxCodeLengthCodeLength = 7

	// DefaultBlockSizeTokens is the base slicing granularity the block
	// splitter uses before its greedy-merge pass.
	DefaultBlockSizeTokens = 1024
)

// tableEntry describes one length or distance code: the smallest value it
// represents and how many extra bits follow it on the wire.
type tableEntry struct {
	base      uint16
	extraBits uint8
}

// lengthTable maps length symbols 257..285 (index 0..28) to their base
// length and extra-bit count, per RFC 1951 §3.2.5.
var lengthTable = [29]tableEntry{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distanceTable maps distance symbols 0..29 to their base distance and
// extra-bit count, per RFC 1951 §3.2.5.
var distanceTable = [30]tableEntry{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// codeLengthOrder is the order in which code-length-alphabet code lengths
// are transmitted in a dynamic block header, per RFC 1951 §3.2.7.
var codeLengthOrder = [NumCodeLengthSymbols]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// fixedLiteralLengths and fixedDistanceLengths are the RFC-mandated code
// lengths used by BTYPE=10 (fixed Huffman) blocks.
// They are filled by a package-level initializer rather than init, so that
// fixedTreesOnce, whose initializer reads them, sees them already filled.
var fixedLiteralLengths, fixedDistanceLengths = buildFixedLengths()

func buildFixedLengths() (lit [NumLiteralLengthCodes]int, dist [NumDistanceSymbols]int) {
	for i := 0; i < 144; i++ {
		lit[i] = 8
	}
	for i := 144; i < 256; i++ {
		lit[i] = 9
	}
	for i := 256; i < 280; i++ {
		lit[i] = 7
	}
	for i := 280; i < 288; i++ {
		lit[i] = 8
	}
	for i := range dist {
		dist[i] = 5
	}
	return lit, dist
}

// lengthSymbol returns the literal/length-alphabet symbol, extra-bit count
// and extra-bits value encoding a match of the given length.
func lengthSymbol(length int) (sym, extraBits, extraValue int) {
	for i := len(lengthTable) - 1; i >= 0; i-- {
		if int(lengthTable[i].base) <= length {
			extraValue = length - int(lengthTable[i].base)
			return FirstLengthSymbol + i, int(lengthTable[i].extraBits), extraValue
		}
	}
	panic("deflate: length out of range")
}

// distanceSymbol returns the distance-alphabet symbol, extra-bit count and
// extra-bits value encoding the given back-reference distance.
func distanceSymbol(dist int) (sym, extraBits, extraValue int) {
	for i := len(distanceTable) - 1; i >= 0; i-- {
		if int(distanceTable[i].base) <= dist {
			extraValue = dist - int(distanceTable[i].base)
			return i, int(distanceTable[i].extraBits), extraValue
		}
	}
	panic("deflate: distance out of range")
}
