package cube

import "hdr-cubemap/internal/pixel"

// edgeRef names one border row or column of a neighbor face.
type edgeRef struct {
	face    Face
	column  bool // true: read a column, false: read a row
	at      int  // 0 for the first row/column, -1 for the last
	reverse bool
}

// borderSet lists the neighbor edges feeding top, bottom, left and right.
type borderSet struct {
	top, bottom, left, right edgeRef
}

const last = -1

// adjacency is the seam table of the cube. Reversed reads account for the
// mirrored orientation of neighboring faces along shared edges.
var adjacency = [FaceCount]borderSet{
	PosX: {
		top:    edgeRef{PosZ, true, 0, false},
		bottom: edgeRef{NegZ, true, last, false},
		left:   edgeRef{PosY, true, last, false},
		right:  edgeRef{NegY, true, 0, false},
	},
	NegX: {
		top:    edgeRef{PosZ, true, last, true},
		bottom: edgeRef{NegZ, true, 0, true},
		left:   edgeRef{NegY, true, last, false},
		right:  edgeRef{PosY, true, 0, false},
	},
	PosY: {
		top:    edgeRef{PosZ, false, 0, true},
		bottom: edgeRef{NegZ, false, 0, false},
		left:   edgeRef{NegX, true, last, false},
		right:  edgeRef{PosX, true, 0, false},
	},
	NegY: {
		top:    edgeRef{PosZ, false, last, false},
		bottom: edgeRef{NegZ, false, last, true},
		left:   edgeRef{PosX, true, last, false},
		right:  edgeRef{NegX, true, 0, false},
	},
	PosZ: {
		top:    edgeRef{PosY, false, 0, true},
		bottom: edgeRef{NegY, false, 0, false},
		left:   edgeRef{PosX, false, 0, false},
		right:  edgeRef{NegX, false, 0, true},
	},
	NegZ: {
		top:    edgeRef{PosY, false, last, false},
		bottom: edgeRef{NegY, false, last, true},
		left:   edgeRef{NegX, false, last, true},
		right:  edgeRef{PosX, false, last, false},
	},
}

// Neighbor reports which face borders side s of face f.
func Neighbor(f Face, s Side) Face {
	b := adjacency[f]
	switch s {
	case Top:
		return b.top.face
	case Bottom:
		return b.bottom.face
	case Left:
		return b.left.face
	default:
		return b.right.face
	}
}

// Side names one border of a face.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

func (s Side) String() string {
	return [...]string{"top", "bottom", "left", "right"}[s]
}

// readEdge copies the referenced neighbor edge of state into dst.
func readEdge(dst []pixel.Pixel, state *Faces, ref edgeRef, edge int) {
	src := state[ref.face]
	line := ref.at
	if line == last {
		line = edge - 1
	}
	for i := 0; i < edge; i++ {
		var p pixel.Pixel
		if ref.column {
			p = src[line+i*edge]
		} else {
			p = src[line*edge+i]
		}
		if ref.reverse {
			dst[edge-i-1] = p
		} else {
			dst[i] = p
		}
	}
}

// blurScratch holds per-pass working memory reused across faces.
type blurScratch struct {
	top, bottom, left, right []pixel.Pixel
	padded                   []pixel.Pixel
}

func newBlurScratch(edge int) *blurScratch {
	return &blurScratch{
		top:    make([]pixel.Pixel, edge),
		bottom: make([]pixel.Pixel, edge),
		left:   make([]pixel.Pixel, edge),
		right:  make([]pixel.Pixel, edge),
		padded: make([]pixel.Pixel, (edge+2)*(edge+2)),
	}
}

// assignBorders fills the scratch borders of face f from its four neighbors.
func (s *blurScratch) assignBorders(state *Faces, f Face, edge int) {
	b := adjacency[f]
	readEdge(s.top, state, b.top, edge)
	readEdge(s.bottom, state, b.bottom, edge)
	readEdge(s.left, state, b.left, edge)
	readEdge(s.right, state, b.right, edge)
}

// pad builds the (edge+2)² face with a one-pixel border taken from the
// neighbor edges. Each corner is the mean of its two adjacent border pixels.
func (s *blurScratch) pad(face []pixel.Pixel, edge int) {
	e2 := edge + 2
	ext := s.padded

	for j := 0; j < edge; j++ {
		copy(ext[(j+1)*e2+1:(j+1)*e2+1+edge], face[j*edge:(j+1)*edge])
	}
	for i := 1; i <= edge; i++ {
		ext[i] = s.top[i-1]
		ext[i*e2] = s.left[i-1]
		ext[i*e2+e2-1] = s.right[i-1]
		ext[(edge+1)*e2+i] = s.bottom[i-1]
	}

	bl := (edge + 1) * e2
	ext[0] = mean(ext[1], ext[e2])
	ext[e2-1] = mean(ext[e2-2], ext[2*e2-1])
	ext[bl] = mean(ext[bl+1], ext[bl-e2])
	ext[bl+e2-1] = mean(ext[bl+e2-2], ext[bl-1])
}

// mean averages ps in float64 so a uniform neighborhood returns its value
// exactly.
func mean(ps ...pixel.Pixel) pixel.Pixel {
	var r, g, b float64
	for _, p := range ps {
		r += float64(p.R)
		g += float64(p.G)
		b += float64(p.B)
	}
	n := float64(len(ps))
	return pixel.Pixel{R: float32(r / n), G: float32(g / n), B: float32(b / n)}
}

// boxFilter writes the 3x3 mean of the padded face into dst.
func (s *blurScratch) boxFilter(dst []pixel.Pixel, edge int) {
	e2 := edge + 2
	ext := s.padded
	for j := 1; j <= edge; j++ {
		up, mid, down := (j-1)*e2, j*e2, (j+1)*e2
		for i := 1; i <= edge; i++ {
			dst[(i-1)+(j-1)*edge] = mean(
				ext[up+i-1], ext[up+i], ext[up+i+1],
				ext[mid+i-1], ext[mid+i], ext[mid+i+1],
				ext[down+i-1], ext[down+i], ext[down+i+1],
			)
		}
	}
}

// Blur reseeds the blurred set from the raw faces and applies passes rounds
// of a seam-aware 3x3 box filter. Every pass reads the previous pass's state
// for all six faces before any face is replaced. The raw faces are untouched.
func (c *Cube) Blur(passes int) {
	edge := c.edge
	c.blurred.copyFrom(&c.raw)
	if passes <= 0 {
		return
	}

	next := newFaces(edge)
	s := newBlurScratch(edge)

	for p := 0; p < passes; p++ {
		for f := Face(0); f < FaceCount; f++ {
			s.assignBorders(&c.blurred, f, edge)
			s.pad(c.blurred[f], edge)
			s.boxFilter(next[f], edge)
		}
		c.blurred, next = next, c.blurred
	}
}
