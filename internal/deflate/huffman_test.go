package deflate

import "testing"

func TestCreateHuffmanCode_Empty(t *testing.T) {
	hist := make([]uint32, 10)
	tree, err := CreateHuffmanCode(hist, 7)
	if err != nil {
		t.Fatalf("CreateHuffmanCode: %v", err)
	}
	for i, cl := range tree.CodeLengths {
		if cl != 0 {
			t.Errorf("CodeLengths[%d] = %d, want 0", i, cl)
		}
	}
}

func TestCreateHuffmanCode_SingleSymbol(t *testing.T) {
	hist := make([]uint32, 10)
	hist[3] = 42
	tree, err := CreateHuffmanCode(hist, 7)
	if err != nil {
		t.Fatalf("CreateHuffmanCode: %v", err)
	}
	if tree.CodeLengths[3] != 1 {
		t.Errorf("CodeLengths[3] = %d, want 1", tree.CodeLengths[3])
	}
}

func TestCreateHuffmanCode_Uniform(t *testing.T) {
	// 8 equally weighted symbols should all get length 3 (a balanced tree).
	hist := make([]uint32, 8)
	for i := range hist {
		hist[i] = 1
	}
	tree, err := CreateHuffmanCode(hist, 15)
	if err != nil {
		t.Fatalf("CreateHuffmanCode: %v", err)
	}
	for i, cl := range tree.CodeLengths {
		if cl != 3 {
			t.Errorf("CodeLengths[%d] = %d, want 3", i, cl)
		}
	}
	prefixFree(t, tree.CodeLengths, tree.Codes)
}

func TestCreateHuffmanCode_Skewed(t *testing.T) {
	hist := []uint32{1, 1, 1, 1, 1, 100}
	tree, err := CreateHuffmanCode(hist, 15)
	if err != nil {
		t.Fatalf("CreateHuffmanCode: %v", err)
	}
	// The dominant symbol must get the shortest code.
	for i := 0; i < 5; i++ {
		if tree.CodeLengths[5] > tree.CodeLengths[i] {
			t.Errorf("dominant symbol length %d should be <= symbol %d length %d", tree.CodeLengths[5], i, tree.CodeLengths[i])
		}
	}
	prefixFree(t, tree.CodeLengths, tree.Codes)
	checkKraftEquality(t, tree.CodeLengths)
}

func TestCreateHuffmanCode_RespectsLimit(t *testing.T) {
	// A geometric-ish distribution that would want a long code without a
	// limit; verify package-merge still respects a tight limit.
	hist := make([]uint32, 20)
	w := uint32(1)
	for i := range hist {
		hist[i] = w
		w *= 2
	}
	const limit = 5
	tree, err := CreateHuffmanCode(hist, limit)
	if err != nil {
		t.Fatalf("CreateHuffmanCode: %v", err)
	}
	for i, cl := range tree.CodeLengths {
		if int(cl) > limit {
			t.Errorf("CodeLengths[%d] = %d exceeds limit %d", i, cl, limit)
		}
	}
	prefixFree(t, tree.CodeLengths, tree.Codes)
	checkKraftEquality(t, tree.CodeLengths)
}

func TestCreateHuffmanCode_InfeasibleLimit(t *testing.T) {
	hist := make([]uint32, 300)
	for i := range hist {
		hist[i] = 1
	}
	_, err := CreateHuffmanCode(hist, 7) // 2^7=128 < 300 live symbols
	if err != ErrLengthLimitInfeasible {
		t.Fatalf("err = %v, want ErrLengthLimitInfeasible", err)
	}
}

// checkKraftEquality verifies the Kraft-McMillan equality sum(2^-l) == 1
// holds exactly for a complete canonical code.
func checkKraftEquality(t *testing.T, lengths []uint8) {
	t.Helper()
	var sum float64
	for _, l := range lengths {
		if l > 0 {
			sum += 1.0 / float64(int(1)<<l)
		}
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Errorf("Kraft sum = %v, want 1.0", sum)
	}
}

func TestBuildCodeLengthTokens_RepeatZero(t *testing.T) {
	lengths := make([]uint8, 20)
	lengths[0] = 4
	// lengths[1..19] remain 0 (19 zeros -> one run)
	tokens := BuildCodeLengthTokens(lengths)
	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(tokens))
	}
	if tokens[0].code != 4 {
		t.Errorf("tokens[0].code = %d, want 4", tokens[0].code)
	}
	if tokens[1].code != 18 {
		t.Errorf("tokens[1].code = %d, want 18", tokens[1].code)
	}
}

func TestBuildCodeLengthTokens_RepeatPrevious(t *testing.T) {
	lengths := []uint8{5, 5, 5, 5, 5}
	tokens := BuildCodeLengthTokens(lengths)
	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(tokens))
	}
	if tokens[0].code != 5 {
		t.Errorf("tokens[0].code = %d, want 5", tokens[0].code)
	}
	if tokens[1].code != 16 || tokens[1].extraBits != 1 {
		t.Errorf("tokens[1] = %+v, want code 16 extraBits 1 (4 more repeats)", tokens[1])
	}
}

func TestBuildCodeLengthTokens_NoPriorStateLeaksIn(t *testing.T) {
	// The very first run can never use repeat-previous, even if its value
	// happens to equal a value a different encoder might preload as a
	// "default" prior state.
	lengths := []uint8{8, 8, 8}
	tokens := BuildCodeLengthTokens(lengths)
	if len(tokens) == 0 || tokens[0].code != 8 {
		t.Fatalf("tokens[0] = %+v, want a literal 8 first", tokens[0])
	}
}

func TestBuildCodeLengthTokens_ZeroRunBreaksRepeatPrevious(t *testing.T) {
	// A zero-run separates the two 5-runs, so the second one is not
	// "immediately preceding" the first and must emit its own leading
	// literal rather than a bare code-16 continuation.
	lengths := []uint8{5, 5, 5, 0, 0, 0, 0, 0, 5, 5, 5}
	tokens := BuildCodeLengthTokens(lengths)

	if len(tokens) == 0 || tokens[0].code != 5 {
		t.Fatalf("tokens[0] = %+v, want a literal 5", tokens[0])
	}

	// Walk tokens back into a code-length/zero-repeat sequence and find
	// where the second nonzero run starts: it must begin with a literal
	// 5, not a code 16 (repeat previous).
	sawZeroRun := false
	for _, tok := range tokens {
		switch tok.code {
		case 17, 18:
			sawZeroRun = true
		case 16:
			if sawZeroRun {
				t.Fatalf("code 16 (repeat previous) used right after a zero-run: %+v", tokens)
			}
		case 0:
			sawZeroRun = true
		default:
			if sawZeroRun {
				// First emitted symbol after the zero-run: must be a
				// literal equal to the value, not a repeat code.
				if tok.code != 5 {
					t.Fatalf("first token after zero-run = %+v, want literal 5", tok)
				}
				sawZeroRun = false
			}
		}
	}
}

func TestDynamicHeader_RoundTripsBitCost(t *testing.T) {
	litHist := make([]uint32, NumLiteralLengthCodes)
	litHist[65] = 10
	litHist[66] = 5
	litHist[EndOfBlockSymbol] = 1
	litTree, err := CreateHuffmanCode(litHist, MaxLitLenCodeLength)
	if err != nil {
		t.Fatalf("CreateHuffmanCode(lit): %v", err)
	}

	distHist := make([]uint32, NumDistanceSymbols)
	distHist[0] = 3
	distTree, err := CreateHuffmanCode(distHist, MaxDistCodeLength)
	if err != nil {
		t.Fatalf("CreateHuffmanCode(dist): %v", err)
	}

	hdr, err := buildDynamicHeader(litTree, distTree, MaxCodeLengthCodeLength)
	if err != nil {
		t.Fatalf("buildDynamicHeader: %v", err)
	}

	bw := NewBitWriter(64)
	hdr.write(bw)
	got := int64(bw.NumBytes()) * 8
	want := hdr.bitCost()
	if got < want || got > want+7 {
		t.Errorf("written bits rounds to %d bytes, bitCost=%d", got, want)
	}
}
