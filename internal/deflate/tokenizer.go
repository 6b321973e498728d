package deflate

import "math"

// ParserMode selects the LZ77 factorization strategy.
type ParserMode int

const (
	// ParserGreedy always takes the longest match available at the
	// current position, or a literal if no match qualifies.
	ParserGreedy ParserMode = iota
	// ParserOptimal runs a forward dynamic-program over every candidate
	// match length at every position to minimize total bit cost under a
	// fixed approximate cost model.
	ParserOptimal
)

// Tokenize factors data into a Token sequence using the selected parser.
// An empty input produces an empty, non-nil Tokens slice.
func Tokenize(data []byte, mode ParserMode) Tokens {
	if len(data) == 0 {
		return Tokens{}
	}
	if mode == ParserOptimal {
		return tokenizeOptimal(data)
	}
	return tokenizeGreedy(data)
}

// tokenizeGreedy performs single-pass longest-match-or-literal LZ77
// factorization: take the best match at the current position, or emit a
// literal, then advance past whatever was just emitted.
func tokenizeGreedy(data []byte) Tokens {
	mf := NewMatchFinder(data)
	out := make(Tokens, 0, len(data)/4)
	pos := 0
	for pos < len(data) {
		if cand, ok := mf.Best(pos); ok {
			out = append(out, CopyToken(cand.Length, cand.Distance))
			end := pos + cand.Length
			for pos < end {
				mf.Insert(pos)
				pos++
			}
		} else {
			out = append(out, LiteralToken(data[pos]))
			mf.Insert(pos)
			pos++
		}
	}
	return out
}

// approxLiteralCost and approxMatchCost price a candidate token using the
// RFC-fixed Huffman code lengths as a stand-in for the real per-block
// dynamic code, which cannot be known until after tokenization has
// already chosen which tokens exist. This mirrors how a lazy/optimal
// parser must commit to a cost model before the final tree is built.
func approxLiteralCost(b byte) int {
	return fixedLiteralLengths[b]
}

func approxMatchCost(length, dist int) int {
	lsym, lextra, _ := lengthSymbol(length)
	dsym, dextra, _ := distanceSymbol(dist)
	return fixedLiteralLengths[lsym] + lextra + fixedDistanceLengths[dsym] + dextra
}

// tokenNode is one immutable cons-cell of a chosen token path. Multiple
// in-flight dynamic-programming cells can share a tail; a node is
// recycled once its reference count drops to zero, which happens when a
// cheaper path replaces it in its cell. A cell that has already been
// processed keeps its node, so the arena grows with the number of
// reachable input positions.
type tokenNode struct {
	tok      Token
	prev     int32
	refCount int32
}

type tokenArena struct {
	nodes    []tokenNode
	freeList []int32
}

func (a *tokenArena) alloc(tok Token, prev int32) int32 {
	if prev >= 0 {
		a.nodes[prev].refCount++
	}
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.nodes[idx] = tokenNode{tok: tok, prev: prev, refCount: 1}
		return idx
	}
	a.nodes = append(a.nodes, tokenNode{tok: tok, prev: prev, refCount: 1})
	return int32(len(a.nodes) - 1)
}

func (a *tokenArena) release(idx int32) {
	for idx >= 0 {
		a.nodes[idx].refCount--
		if a.nodes[idx].refCount > 0 {
			return
		}
		prev := a.nodes[idx].prev
		a.freeList = append(a.freeList, idx)
		idx = prev
	}
}

// materialize walks a cons-list from its tail back to the root and
// returns the tokens in forward (emission) order.
func (a *tokenArena) materialize(idx int32) Tokens {
	var rev Tokens
	for idx >= 0 {
		rev = append(rev, a.nodes[idx].tok)
		idx = a.nodes[idx].prev
	}
	out := make(Tokens, len(rev))
	for i, t := range rev {
		out[len(rev)-1-i] = t
	}
	return out
}

// tokenizeOptimal runs a forward DP over every input position, at each
// step trying every pareto-optimal (length, distance) candidate the
// match finder offers as well as a plain literal, and keeps the cheapest
// way to reach each position under the fixed-code approximate cost
// model. A cell at position i only ever receives updates from positions
// in [i-MaxMatchLength, i-1]. The cells are a plain slice over the whole
// input rather than an explicit ring, and each keeps its node after it is
// processed.
func tokenizeOptimal(data []byte) Tokens {
	n := len(data)
	mf := NewMatchFinder(data)
	arena := &tokenArena{}

	cost := make([]int64, n+1)
	for i := range cost {
		cost[i] = math.MaxInt64
	}
	cost[0] = 0
	node := make([]int32, n+1)
	for i := range node {
		node[i] = -1
	}

	relax := func(to int, newCost int64, tok Token, from int) {
		if newCost < cost[to] {
			if node[to] >= 0 {
				arena.release(node[to])
			}
			cost[to] = newCost
			node[to] = arena.alloc(tok, node[from])
		}
	}

	for i := 0; i < n; i++ {
		if cost[i] == math.MaxInt64 {
			mf.Insert(i)
			continue
		}
		base := cost[i]

		relax(i+1, base+int64(approxLiteralCost(data[i])), LiteralToken(data[i]), i)

		for _, c := range mf.Candidates(i) {
			to := i + c.Length
			relax(to, base+int64(approxMatchCost(c.Length, c.Distance)), CopyToken(c.Length, c.Distance), i)
		}

		mf.Insert(i)
	}

	result := arena.materialize(node[n])
	return result
}
