package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hdr-cubemap/internal/mathutil"
)

var (
	// ErrIO reports a mesh file that could not be opened or read.
	ErrIO = errors.New("mesh: i/o failure")
	// ErrParse reports a malformed numeric field or face corner.
	ErrParse = errors.New("mesh: malformed record")
	// ErrRange reports a face index outside its list.
	ErrRange = errors.New("mesh: index out of range")
)

func rangeError(face int, kind string, idx, n int) error {
	return fmt.Errorf("%w: face %d %s index %d (have %d)", ErrRange, face, kind, idx+1, n)
}

// Load reads a text mesh and rescales it so the largest absolute vertex
// coordinate equals scale (1 when scale <= 0).
func Load(path string, scale float64) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: %s: %w", path, err)
	}
	m.Rescale(scale)
	return m, nil
}

// Parse reads v, vt, vn and f records. Other lines are ignored.
// Face indices are 1-based in the input and 0-based in the result.
// Polygons with more than three corners are split into a triangle fan.
func Parse(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			m.Verts = append(m.Verts, v)
		case "vt":
			v, err := parseVec(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: uv: %w", line, err)
			}
			m.UVs = append(m.UVs, v)
		case "vn":
			v, err := parseVec(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			m.Normals = append(m.Normals, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w: face needs 3 corners, got %d", line, ErrParse, len(fields)-1)
			}
			corners := make([][3]int, len(fields)-1)
			for i, tok := range fields[1:] {
				c, err := parseCorner(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: face: %w", line, err)
				}
				corners[i] = c
			}
			// Polygon fan: 0-1-2, 0-2-3, ...
			for k := 1; k+1 < len(corners); k++ {
				a, b, c := corners[0], corners[k], corners[k+1]
				m.Faces = append(m.Faces, Face{
					V: [3]int{a[0], b[0], c[0]},
					T: [3]int{a[1], b[1], c[1]},
					N: [3]int{a[2], b[2], c[2]},
				})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseVec reads up to three floats; at least min must be present.
// Missing trailing components are zero.
func parseVec(tok []string, min int) (mathutil.Vec3, error) {
	var v mathutil.Vec3
	if len(tok) < min {
		return v, fmt.Errorf("%w: want %d values, got %d", ErrParse, min, len(tok))
	}
	for k := 0; k < 3 && k < len(tok); k++ {
		f, err := strconv.ParseFloat(tok[k], 64)
		if err != nil {
			return v, fmt.Errorf("%w: %q", ErrParse, tok[k])
		}
		v[k] = f
	}
	return v, nil
}

// parseCorner reads "v/t/n" and converts it to 0-based indices.
func parseCorner(tok string) ([3]int, error) {
	var c [3]int
	parts := strings.Split(tok, "/")
	if len(parts) != 3 {
		return c, fmt.Errorf("%w: corner %q is not v/t/n", ErrParse, tok)
	}
	for k, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return c, fmt.Errorf("%w: corner %q", ErrParse, tok)
		}
		c[k] = n - 1
	}
	return c, nil
}
