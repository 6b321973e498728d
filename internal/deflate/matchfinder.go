package deflate

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// MatchFinder locates LZ77 back-reference candidates in a byte stream
// using a sliding-window hash chain, in the canonical DEFLATE style: a
// hash of each 3-byte prefix buckets positions into chains, and the
// chains are sized to the window rather than the whole input, indexed by
// pos % WindowSize.
//
// A buzhash rolling hash over a ring sized well beyond the window lets
// the finder cheaply reject non-matching candidates before paying for a
// byte-by-byte extension.
const (
	hashBits = 17
	hashSize = 1 << hashBits

	// ringBits sizes the buzhash prefix ring. The ring is filled once for
	// the whole input, so it holds every prefix hash only when the input
	// is shorter than ringSize; for longer inputs matchLength does not use
	// the buzhash shortcut and compares bytes directly.
	ringBits = 17
	ringSize = 1 << ringBits
	ringMask = ringSize - 1

	// quickCheckLen is the chunk size buzhash pre-filters before a
	// candidate is walked byte-by-byte.
	quickCheckLen = 8

	// maxChainSteps bounds how many chain links a search follows before
	// giving up, keeping match finding close to linear in input size.
	maxChainSteps = 128
)

// MatchFinder indexes a fixed byte slice for repeated LZ77 searches.
type MatchFinder struct {
	data []byte

	head []int32 // hashSize buckets -> most recent position with that hash, or -1
	prev []int32 // WindowSize ring -> previous position sharing the same hash

	buzPrefix []uint64 // ringSize ring of rolling prefix hashes
}

// NewMatchFinder creates a match finder over data. The caller inserts
// positions into the index via Insert as it tokenizes left to right.
func NewMatchFinder(data []byte) *MatchFinder {
	mf := &MatchFinder{
		data:      data,
		head:      make([]int32, hashSize),
		prev:      make([]int32, WindowSize),
		buzPrefix: make([]uint64, ringSize),
	}
	for i := range mf.head {
		mf.head[i] = -1
	}
	mf.fillBuzPrefix()
	return mf
}

// fillBuzPrefix precomputes the rolling buzhash prefix for the whole
// input: buzPrefix[i] is the hash of data[0:i] (mod ringSize positions).
func (mf *MatchFinder) fillBuzPrefix() {
	var h uint64
	mf.buzPrefix[0] = 0
	for i, b := range mf.data {
		h = bits.RotateLeft64(h, 1) ^ byteHashTable[b]
		mf.buzPrefix[(i+1)&ringMask] = h
	}
}

// segHash returns the buzhash of data[start:start+length] in O(1). It is
// only valid when the input is shorter than ringSize, so that no slot of
// the ring has been overwritten by a later prefix.
func (mf *MatchFinder) segHash(start, length int) uint64 {
	a := mf.buzPrefix[start&ringMask]
	b := mf.buzPrefix[(start+length)&ringMask]
	return bits.RotateLeft64(a, length) ^ b
}

func hash3(data []byte) uint32 {
	return uint32(xxhash.Sum64(data[:3])) & (hashSize - 1)
}

// Insert adds position pos to the hash chain. The caller must insert
// positions in increasing order, and must not insert the same position
// twice.
func (mf *MatchFinder) Insert(pos int) {
	if pos+3 > len(mf.data) {
		return
	}
	h := hash3(mf.data[pos:])
	mf.prev[pos%WindowSize] = mf.head[h]
	mf.head[h] = int32(pos)
}

// Candidate is one back-reference option the finder surfaces.
type Candidate struct {
	Distance int
	Length   int
}

// matchLength returns how many bytes data[a:] and data[b:] agree on, up
// to maxLen. b must be < a (b is the earlier, dictionary-side position).
// It advances in quickCheckLen chunks, using the O(1) buzhash comparison
// to skip straight past any chunk that matches in full, and only paying
// for a byte-by-byte scan on the (at most one) chunk where they diverge.
func (mf *MatchFinder) matchLength(a, b, maxLen int) int {
	data := mf.data
	n := 0
	for n < maxLen {
		chunk := quickCheckLen
		if n+chunk > maxLen {
			chunk = maxLen - n
		}
		if len(data) < ringSize && chunk >= 4 && mf.segHash(a+n, chunk) == mf.segHash(b+n, chunk) {
			n += chunk
			continue
		}
		for i := 0; i < chunk; i++ {
			if data[a+n+i] != data[b+n+i] {
				return n + i
			}
		}
		n += chunk
	}
	return maxLen
}

// Best returns the longest-and-nearest match for the window ending at
// pos, searching at most maxChainSteps chain links. ok is false if no
// match of at least MinMatchLength bytes exists.
func (mf *MatchFinder) Best(pos int) (c Candidate, ok bool) {
	cands := mf.Candidates(pos)
	if len(cands) == 0 {
		return Candidate{}, false
	}
	return cands[len(cands)-1], true
}

// Candidates walks the hash chain at pos and returns every length
// improvement encountered, nearest distance first. Because the chain is
// walked from the most recently inserted (nearest) position outward, and
// an entry is only recorded when it beats every previous one, the result
// is strictly increasing in both distance and length -- letting an
// optimal parser weigh a cheaper short match against a costlier long one
// instead of being locked into the single longest candidate.
func (mf *MatchFinder) Candidates(pos int) []Candidate {
	data := mf.data
	remaining := len(data) - pos
	if remaining < MinMatchLength {
		return nil
	}
	maxLen := remaining
	if maxLen > MaxMatchLength {
		maxLen = MaxMatchLength
	}

	h := hash3(data[pos:])
	cand := mf.head[h]
	minPos := 0
	if pos > WindowSize {
		minPos = pos - WindowSize
	}

	var out []Candidate
	bestLen := MinMatchLength - 1
	for steps := 0; cand >= int32(minPos) && steps < maxChainSteps; steps++ {
		candPos := int(cand)
		if data[candPos+bestLen] == data[pos+bestLen] || bestLen < MinMatchLength {
			l := mf.matchLength(pos, candPos, maxLen)
			if l > bestLen {
				bestLen = l
				out = append(out, Candidate{Distance: pos - candPos, Length: l})
				if l >= maxLen {
					break
				}
			}
		}
		next := mf.prev[candPos%WindowSize]
		if next >= cand {
			break // chain never points forward; guards against corrupt state
		}
		cand = next
	}
	return out
}

// byteHashTable holds a fixed pseudo-random 64-bit value per byte value,
// the per-symbol table a buzhash rolling hash folds in at each step.
var byteHashTable [256]uint64

func init() {
	// splitmix64: deterministic, well-distributed, no external RNG needed.
	state := uint64(0x9e3779b97f4a7c15)
	for i := range byteHashTable {
		state += 0x9e3779b97f4a7c15
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z = z ^ (z >> 31)
		byteHashTable[i] = z
	}
}
