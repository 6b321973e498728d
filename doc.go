// Package gzdeflate implements a single-shot gzip compressor on top of a
// from-scratch DEFLATE (RFC 1951) encoder.
//
// It performs LZ77 factorization with a hash-chain match finder, builds
// length-limited canonical Huffman codes via package-merge, splits the
// token stream into blocks, and packs the result into a standard RFC 1952
// gzip container. The output can be read by any conformant DEFLATE/gzip
// decoder; this package does not implement decompression.
//
// Basic usage:
//
//	err := gzdeflate.Compress(w, input, nil)
package gzdeflate
