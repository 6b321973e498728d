package gzdeflate

import "github.com/deepteams/gzdeflate/internal/deflate"

// ParserMode selects the LZ77 factorization strategy used by the DEFLATE
// encoder.
type ParserMode = deflate.ParserMode

const (
	// ParserGreedy always takes the longest match at the current
	// position. Fast, slightly less dense output.
	ParserGreedy = deflate.ParserGreedy
	// ParserOptimal runs a forward dynamic program over candidate match
	// lengths to minimize total bit cost under a fixed approximate cost
	// model. Slower, denser output. The default.
	ParserOptimal = deflate.ParserOptimal
)

// Options controls the DEFLATE encoder driving Compress.
type Options struct {
	// BlockSizeTokens is the base granularity, in tokens, the block
	// splitter slices the token stream into before greedily merging
	// adjacent slices. Default 1024.
	BlockSizeTokens int
	// Parser selects the LZ77 tokenization strategy. Default
	// ParserOptimal.
	Parser ParserMode
	// LengthLimit bounds literal/length and distance code lengths.
	// Default 15, the RFC 1951 maximum; lowering it is rarely useful.
	LengthLimit int
	// CodeLengthLimit bounds code-length-alphabet code lengths. Default
	// 7, the RFC 1951 maximum.
	CodeLengthLimit int
}

// DefaultOptions returns the recommended configuration: 1024-token
// slices, the optimal parser, and RFC-maximum code length bounds.
func DefaultOptions() *Options {
	d := deflate.DefaultOptions()
	return &Options{
		BlockSizeTokens: d.BlockSizeTokens,
		Parser:          d.Parser,
		LengthLimit:     d.LengthLimit,
		CodeLengthLimit: d.CodeLengthLimit,
	}
}

func (o *Options) toInternal() *deflate.Options {
	if o == nil {
		return deflate.DefaultOptions()
	}
	return &deflate.Options{
		BlockSizeTokens: o.BlockSizeTokens,
		Parser:          o.Parser,
		LengthLimit:     o.LengthLimit,
		CodeLengthLimit: o.CodeLengthLimit,
	}
}
