package cube

import "hdr-cubemap/internal/pixel"

// Face identifies one side of the cube by signed axis.
type Face int

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// FaceCount is the number of faces in a cube.
const FaceCount = 6

var faceNames = [FaceCount]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (f Face) String() string {
	if f < 0 || f >= FaceCount {
		return "?"
	}
	return faceNames[f]
}

// Faces is an ordered set of six square face buffers sharing one edge length.
type Faces [FaceCount][]pixel.Pixel

func newFaces(edge int) Faces {
	var fs Faces
	for i := range fs {
		fs[i] = make([]pixel.Pixel, edge*edge)
	}
	return fs
}

func (fs *Faces) copyFrom(src *Faces) {
	for i := range fs {
		copy(fs[i], src[i])
	}
}

func (fs *Faces) clone() Faces {
	var c Faces
	for i := range fs {
		c[i] = make([]pixel.Pixel, len(fs[i]))
		copy(c[i], fs[i])
	}
	return c
}

// Cube holds the raw projected faces and their blurred counterpart.
// Both sets are allocated together and always share Edge.
type Cube struct {
	edge    int
	raw     Faces
	blurred Faces
}

// New allocates a cube with zeroed raw and blurred faces.
func New(edge int) *Cube {
	if edge < 1 {
		edge = 1
	}
	return &Cube{
		edge:    edge,
		raw:     newFaces(edge),
		blurred: newFaces(edge),
	}
}

// Edge returns the face edge length in pixels.
func (c *Cube) Edge() int { return c.edge }

// Raw returns the face buffer of the unblurred set. The slice is owned by the cube.
func (c *Cube) Raw(f Face) []pixel.Pixel { return c.raw[f] }

// Blurred returns the face buffer of the blurred set.
func (c *Cube) Blurred(f Face) []pixel.Pixel { return c.blurred[f] }

// RawFaces returns a deep copy of the raw face set.
func (c *Cube) RawFaces() Faces { return c.raw.clone() }

// BlurredFaces returns a deep copy of the blurred face set.
func (c *Cube) BlurredFaces() Faces { return c.blurred.clone() }

// FaceBuffer copies one face into a standalone buffer.
func (c *Cube) FaceBuffer(f Face, blurred bool) *pixel.Buffer {
	src := c.raw[f]
	if blurred {
		src = c.blurred[f]
	}
	b := pixel.NewBuffer(c.edge, c.edge)
	copy(b.Pix, src)
	return b
}

// Fill sets every raw face pixel of f to p and resets the blurred set from raw.
func (c *Cube) Fill(f Face, p pixel.Pixel) {
	for i := range c.raw[f] {
		c.raw[f][i] = p
	}
	copy(c.blurred[f], c.raw[f])
}

// RotateRight turns face f a quarter turn clockwise in both sets.
func (c *Cube) RotateRight(f Face) {
	RotateRight(c.raw[f], c.edge)
	RotateRight(c.blurred[f], c.edge)
}
