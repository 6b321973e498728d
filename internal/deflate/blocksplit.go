package deflate

// Block is one finalized DEFLATE block: a contiguous run of tokens, the
// block type chosen for it, and (for a dynamic block) the Huffman trees
// that encode it.
type Block struct {
	Tokens  Tokens
	BType   int
	LitLen  *HuffmanCode
	Dist    *HuffmanCode
	BitCost int64 // body cost only, excluding the 3-bit BFINAL/BTYPE header

	hist *histogram // cached so adjacent merges don't rescan every token
}

const (
	btypeStored  = 0
	btypeFixed   = 1
	btypeDynamic = 2
)

// Options controls the tokenizer and block splitter.
type Options struct {
	BlockSizeTokens int
	Parser          ParserMode
	LengthLimit     int
	CodeLengthLimit int
}

// DefaultOptions matches the reference configuration surface: 1024-token
// slices, the optimal parser, 15-bit literal/distance codes, and 7-bit
// code-length codes (the widest RFC 1951 allows in each case).
func DefaultOptions() *Options {
	return &Options{
		BlockSizeTokens: DefaultBlockSizeTokens,
		Parser:          ParserOptimal,
		LengthLimit:     MaxLitLenCodeLength,
		CodeLengthLimit: MaxCodeLengthCodeLength,
	}
}

// histogram counts literal/length and distance symbol frequencies across
// a token slice, including the mandatory end-of-block symbol.
type histogram struct {
	litLen [NumLiteralLengthCodes]uint32
	dist   [NumDistanceSymbols]uint32
}

func buildHistogram(toks Tokens) *histogram {
	h := &histogram{}
	for _, t := range toks {
		if t.IsLiteral() {
			h.litLen[t.Literal()]++
			continue
		}
		lsym, _, _ := lengthSymbol(t.Length())
		dsym, _, _ := distanceSymbol(t.Distance())
		h.litLen[lsym]++
		h.dist[dsym]++
	}
	h.litLen[EndOfBlockSymbol]++
	return h
}

func mergeHistograms(a, b *histogram) *histogram {
	m := &histogram{}
	for i := range m.litLen {
		m.litLen[i] = a.litLen[i] + b.litLen[i]
	}
	for i := range m.dist {
		m.dist[i] = a.dist[i] + b.dist[i]
	}
	// Both inputs already counted their own end-of-block; a combined
	// block only emits one, so drop the double-count.
	m.litLen[EndOfBlockSymbol]--
	return m
}

var fixedTreesOnce = buildFixedTrees()

type fixedTrees struct {
	litLen *HuffmanCode
	dist   *HuffmanCode
}

func buildFixedTrees() *fixedTrees {
	lit := &HuffmanCode{
		NumSymbols:  NumLiteralLengthCodes,
		CodeLengths: make([]uint8, NumLiteralLengthCodes),
		Codes:       make([]uint16, NumLiteralLengthCodes),
	}
	for i, l := range fixedLiteralLengths {
		lit.CodeLengths[i] = uint8(l)
	}
	generateCanonicalCodes(lit)

	dist := &HuffmanCode{
		NumSymbols:  NumDistanceSymbols,
		CodeLengths: make([]uint8, NumDistanceSymbols),
		Codes:       make([]uint16, NumDistanceSymbols),
	}
	for i, l := range fixedDistanceLengths {
		dist.CodeLengths[i] = uint8(l)
	}
	generateCanonicalCodes(dist)

	return &fixedTrees{litLen: lit, dist: dist}
}

// writeTokenStream emits toks's symbols (followed by the end-of-block
// marker) through sink using litTree/distTree. The block splitter's
// dry-run costing and the real bit-stream writer call this exact same
// function, differing only in whether sink counts or actually emits.
func writeTokenStream(sink bitSink, toks Tokens, litTree, distTree *HuffmanCode) {
	for _, t := range toks {
		if t.IsLiteral() {
			litTree.WriteSymbol(sink, int(t.Literal()))
			continue
		}
		lsym, lextra, lval := lengthSymbol(t.Length())
		litTree.WriteSymbol(sink, lsym)
		sink.WriteBits(uint32(lval), lextra)

		dsym, dextra, dval := distanceSymbol(t.Distance())
		distTree.WriteSymbol(sink, dsym)
		sink.WriteBits(uint32(dval), dextra)
	}
	litTree.WriteSymbol(sink, EndOfBlockSymbol)
}

func dynamicBodyCost(toks Tokens, litTree, distTree *HuffmanCode, codeLengthLimit int) (int64, error) {
	hdr, err := buildDynamicHeader(litTree, distTree, codeLengthLimit)
	if err != nil {
		return 0, err
	}
	cs := &countSink{}
	hdr.write(cs)
	writeTokenStream(cs, toks, litTree, distTree)
	return cs.bits, nil
}

func fixedBodyCost(toks Tokens) int64 {
	cs := &countSink{}
	writeTokenStream(cs, toks, fixedTreesOnce.litLen, fixedTreesOnce.dist)
	return cs.bits
}

func storedBodyCost(toks Tokens) int64 {
	// Only the LEN/NLEN header and the raw bytes are priced. The padding
	// to the next byte boundary depends on where the block starts in the
	// overall stream and is not included in the cost.
	return int64(32 + toks.UncompressedLen()*8)
}

// analyzeBlock picks the cheapest of stored, fixed, and dynamic encodings
// for toks and returns the resulting Block. A stored block is only a
// candidate when toks expands to at most 65535 bytes, the most its 16-bit
// LEN field can count. If hist is non-nil it is used as-is instead of
// being recomputed from toks.
func analyzeBlock(toks Tokens, hist *histogram, opts *Options) (*Block, error) {
	h := hist
	if h == nil {
		h = buildHistogram(toks)
	}
	litTree, err := CreateHuffmanCode(h.litLen[:], opts.LengthLimit)
	if err != nil {
		return nil, err
	}
	distTree, err := CreateHuffmanCode(h.dist[:], opts.LengthLimit)
	if err != nil {
		return nil, err
	}

	dynCost, err := dynamicBodyCost(toks, litTree, distTree, opts.CodeLengthLimit)
	if err != nil {
		return nil, err
	}
	fixedCost := fixedBodyCost(toks)
	storedCost := storedBodyCost(toks)

	b := &Block{Tokens: toks, BType: btypeDynamic, LitLen: litTree, Dist: distTree, BitCost: dynCost, hist: h}
	if fixedCost < b.BitCost {
		b.BType, b.LitLen, b.Dist, b.BitCost = btypeFixed, fixedTreesOnce.litLen, fixedTreesOnce.dist, fixedCost
	}
	if storedCost < b.BitCost && toks.UncompressedLen() <= 65535 {
		b.BType, b.LitLen, b.Dist, b.BitCost = btypeStored, nil, nil, storedCost
	}
	return b, nil
}

// SplitBlocks slices toks into opts.BlockSizeTokens-sized chunks, prices
// each independently, then greedily merges adjacent chunks whenever their
// combined exact bit cost does not exceed the sum of their separate costs
// -- repeating until a pass merges nothing. Because every candidate is priced with
// the same writeTokenStream the final writer uses, the decision is exact
// rather than an entropy estimate.
func SplitBlocks(toks Tokens, opts *Options) ([]*Block, error) {
	blockSize := opts.BlockSizeTokens
	if blockSize <= 0 {
		blockSize = DefaultBlockSizeTokens
	}

	var blocks []*Block
	for i := 0; i < len(toks); i += blockSize {
		end := i + blockSize
		if end > len(toks) {
			end = len(toks)
		}
		b, err := analyzeBlock(toks[i:end], nil, opts)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if len(blocks) == 0 {
		b, err := analyzeBlock(nil, nil, opts)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	for {
		next, mergedAny, err := mergePass(blocks, opts)
		if err != nil {
			return nil, err
		}
		blocks = next
		if !mergedAny {
			return blocks, nil
		}
	}
}

func mergePass(blocks []*Block, opts *Options) ([]*Block, bool, error) {
	var out []*Block
	mergedAny := false
	i := 0
	for i < len(blocks) {
		if i+1 < len(blocks) {
			combined := make(Tokens, 0, len(blocks[i].Tokens)+len(blocks[i+1].Tokens))
			combined = append(combined, blocks[i].Tokens...)
			combined = append(combined, blocks[i+1].Tokens...)
			combinedHist := mergeHistograms(blocks[i].hist, blocks[i+1].hist)
			cb, err := analyzeBlock(combined, combinedHist, opts)
			if err != nil {
				return nil, false, err
			}
			if cb.BitCost <= blocks[i].BitCost+blocks[i+1].BitCost {
				out = append(out, cb)
				i += 2
				mergedAny = true
				continue
			}
		}
		out = append(out, blocks[i])
		i++
	}
	return out, mergedAny, nil
}
