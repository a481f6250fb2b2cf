package export

import (
	"io"

	"hdr-cubemap/internal/cube"
	"hdr-cubemap/internal/pixel"
	"hdr-cubemap/internal/rgbe"
)

// crossOffsets is the (dx, dy) of each face in the unfolded cube, measured
// from the bottom-left of the image in face units.
var crossOffsets = [cube.FaceCount][2]int{
	cube.PosX: {0, 1},
	cube.NegX: {1, 1},
	cube.PosY: {2, 1},
	cube.NegY: {3, 1},
	cube.PosZ: {1, 2},
	cube.NegZ: {1, 0},
}

// Cross lays six faces out as a horizontal cross of (4*edge+1) x (3*edge).
// Face rows are placed bottom-up; pixels outside the cross stay zero.
func Cross(faces cube.Faces, edge int) *pixel.Buffer {
	w, h := 4*edge+1, 3*edge
	out := pixel.NewBuffer(w, h)
	for i, face := range faces {
		dx, dy := crossOffsets[i][0]*edge, crossOffsets[i][1]*edge
		for x := 0; x < edge; x++ {
			for y := 0; y < edge; y++ {
				dst := x + dx + w*(h-y-dy-1)
				if dst >= 0 {
					out.Pix[dst] = face[x+edge*y]
				}
			}
		}
	}
	return out
}

// WriteCross writes the cross layout as a Radiance HDR image.
func WriteCross(w io.Writer, faces cube.Faces, edge int) error {
	return WriteHDR(w, Cross(faces, edge))
}

// WriteHDR writes any buffer as a Radiance HDR image with unit exposure.
func WriteHDR(w io.Writer, buf *pixel.Buffer) error {
	return rgbe.Encode(w, buf, rgbe.Header{ProgramType: "RADIANCE", Exposure: 1})
}
