package cube

import "hdr-cubemap/internal/pixel"

// RotateRight rotates a square face 90° clockwise in place:
// dst(i, j) = src(j, edge-i-1). The rotation goes through a temporary copy.
func RotateRight(face []pixel.Pixel, edge int) {
	tmp := make([]pixel.Pixel, edge*edge)
	for i := 0; i < edge; i++ {
		for j := 0; j < edge; j++ {
			tmp[i+j*edge] = face[j+(edge-i-1)*edge]
		}
	}
	copy(face, tmp)
}

// FlipHorizontal mirrors a face left-to-right.
func FlipHorizontal(face []pixel.Pixel, edge int) {
	for i := 0; i < edge/2; i++ {
		for j := 0; j < edge; j++ {
			a, b := i+j*edge, edge-i-1+j*edge
			face[a], face[b] = face[b], face[a]
		}
	}
}

// FlipVertical mirrors a face top-to-bottom.
func FlipVertical(face []pixel.Pixel, edge int) {
	for i := 0; i < edge; i++ {
		for j := 0; j < edge/2; j++ {
			a, b := i+j*edge, i+(edge-j-1)*edge
			face[a], face[b] = face[b], face[a]
		}
	}
}
