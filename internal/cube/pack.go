package cube

import "hdr-cubemap/internal/pixel"

// PackForEngine lays the blurred faces out as a 6E x E strip in the
// face order and orientation Unreal expects for a cubemap diffuse source.
// +Y and -Y swap slots; +X turns a quarter counter-clockwise, -X a quarter
// clockwise and the post-swap slot 3 a half turn.
func (c *Cube) PackForEngine() *pixel.Buffer {
	edge := c.edge
	fs := c.blurred.clone()

	fs[PosY], fs[NegY] = fs[NegY], fs[PosY]

	rotate(fs[PosX], edge, 3)
	rotate(fs[NegX], edge, 1)
	rotate(fs[NegY], edge, 2)

	out := pixel.NewBuffer(FaceCount*edge, edge)
	for j := 0; j < edge; j++ {
		for i := 0; i < FaceCount; i++ {
			off := (i + j*FaceCount) * edge
			copy(out.Pix[off:off+edge], fs[i][j*edge:(j+1)*edge])
		}
	}
	return out
}

// DDSFaces returns a copy of one face set turned into the orientation the
// DDS cubemap writer expects: +X three quarter turns, -X one, +Y two.
func (c *Cube) DDSFaces(blurred bool) Faces {
	fs := c.raw.clone()
	if blurred {
		fs = c.blurred.clone()
	}
	rotate(fs[PosX], c.edge, 3)
	rotate(fs[NegX], c.edge, 1)
	rotate(fs[PosY], c.edge, 2)
	return fs
}

func rotate(face []pixel.Pixel, edge, quarters int) {
	for q := 0; q < quarters; q++ {
		RotateRight(face, edge)
	}
}
