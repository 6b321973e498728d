// Command gzdeflate compresses a single file to gzip.
//
// Usage:
//
//	gzdeflate <path>
//
// Writes <basename>.gz in the current directory.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deepteams/gzdeflate"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: gzdeflate <path>\n")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "gzdeflate: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath string) error {
	input, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	outPath := filepath.Base(inPath) + ".gz"
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, 1<<20)
	if err := gzdeflate.Compress(bw, input, nil); err != nil {
		return err
	}
	return bw.Flush()
}
