package rgbe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format is the only pixel format understood by this package.
const Format = "32-bit_rle_rgbe"

// Limits on decoded image size: 32768 x 8192 at most.
const (
	maxDimension = 1 << 15
	maxPixels    = 1 << 28
)

var (
	ErrHeader = errors.New("rgbe: invalid header")
	ErrData   = errors.New("rgbe: invalid scanline data")
)

// Header holds the fields of a Radiance header that matter to the pipeline.
type Header struct {
	ProgramType string  // "RADIANCE" unless the file says otherwise
	Exposure    float64 // 1 when absent
	Gamma       float64 // 0 when absent
	Width       int
	Height      int
}

func readLine(br *bufio.Reader) (string, error) {
	s, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && s != "" {
			return strings.TrimRight(s, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// readHeader parses the text header and the resolution line.
func readHeader(br *bufio.Reader) (Header, error) {
	h := Header{ProgramType: "RADIANCE", Exposure: 1}

	first, err := readLine(br)
	if err != nil {
		return h, fmt.Errorf("%w: %v", ErrHeader, err)
	}
	if !strings.HasPrefix(first, "#?") {
		return h, fmt.Errorf("%w: missing #? signature", ErrHeader)
	}
	h.ProgramType = strings.TrimPrefix(first, "#?")

	format := ""
	for {
		line, err := readLine(br)
		if err != nil {
			return h, fmt.Errorf("%w: %v", ErrHeader, err)
		}
		if line == "" {
			break
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue // comment or unknown
		}
		switch strings.TrimSpace(key) {
		case "FORMAT":
			format = strings.TrimSpace(val)
		case "EXPOSURE":
			if e, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				h.Exposure = e
			}
		case "GAMMA":
			if g, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				h.Gamma = g
			}
		}
	}
	if format != "" && format != Format {
		return h, fmt.Errorf("%w: unsupported format %q", ErrHeader, format)
	}

	res, err := readLine(br)
	if err != nil {
		return h, fmt.Errorf("%w: resolution: %v", ErrHeader, err)
	}
	var w, ht int
	if _, err := fmt.Sscanf(res, "-Y %d +X %d", &ht, &w); err != nil {
		return h, fmt.Errorf("%w: unsupported resolution line %q", ErrHeader, res)
	}
	if w <= 0 || ht <= 0 || w > maxDimension || ht > maxDimension || w*ht > maxPixels {
		return h, fmt.Errorf("%w: bad size %dx%d", ErrHeader, w, ht)
	}
	h.Width, h.Height = w, ht
	return h, nil
}

func writeHeader(bw *bufio.Writer, h Header) error {
	pt := h.ProgramType
	if pt == "" {
		pt = "RADIANCE"
	}
	fmt.Fprintf(bw, "#?%s\n", pt)
	if h.Gamma != 0 {
		fmt.Fprintf(bw, "GAMMA=%g\n", h.Gamma)
	}
	exp := h.Exposure
	if exp == 0 {
		exp = 1
	}
	fmt.Fprintf(bw, "EXPOSURE=%g\n", exp)
	fmt.Fprintf(bw, "FORMAT=%s\n\n", Format)
	_, err := fmt.Fprintf(bw, "-Y %d +X %d\n", h.Height, h.Width)
	return err
}
