package main

import (
	"bufio"
	"fmt"
	"os"

	"hdr-cubemap/internal/rgbe"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspecthdr file.hdr [file.hdr ...]")
		os.Exit(2)
	}

	failed := false
	for _, path := range os.Args[1:] {
		if err := inspect(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, h, err := rgbe.Decode(bufio.NewReader(f))
	if err != nil {
		return err
	}
	lo, hi, mean := buf.Stats()

	fmt.Printf("%s\n", path)
	fmt.Printf("  Program: %s, Exposure: %g, Gamma: %g\n", h.ProgramType, h.Exposure, h.Gamma)
	fmt.Printf("  Size: %d x %d (%d pixels)\n", h.Width, h.Height, len(buf.Pix))
	fmt.Printf("  Range: [%.4g, %.4g]\n", lo, hi)
	fmt.Printf("  Mean:  R=%.4g G=%.4g B=%.4g\n", mean.R, mean.G, mean.B)
	if h.Height > 0 && h.Width != 2*h.Height {
		fmt.Printf("  Warning: aspect %d:%d is not equirectangular 2:1\n", h.Width, h.Height)
	}
	return nil
}
