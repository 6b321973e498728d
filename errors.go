package gzdeflate

import "github.com/deepteams/gzdeflate/internal/deflate"

// Sentinel errors surfaced by Compress. All of them are fatal: the
// package never partially succeeds, and a failure leaves the sink in an
// undefined state.
var (
	// ErrInvalidLength and ErrInvalidDistance indicate a back-reference
	// outside what RFC 1951 can represent -- a tokenizer bug, never a
	// property of the input.
	ErrInvalidLength   = deflate.ErrInvalidLength
	ErrInvalidDistance = deflate.ErrInvalidDistance

	// ErrLengthLimitInfeasible is returned when a code's length limit
	// is smaller than ceil(log2(live symbol count)), so no valid
	// length-limited prefix code exists.
	ErrLengthLimitInfeasible = deflate.ErrLengthLimitInfeasible
)
