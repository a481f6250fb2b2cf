package cube

import (
	"testing"

	"hdr-cubemap/internal/pixel"
)

// markedCube gives every pixel a value encoding its face and index.
func markedCube(edge int) *Cube {
	cb := New(edge)
	for f := Face(0); f < FaceCount; f++ {
		for i := range cb.raw[f] {
			cb.raw[f][i] = pixel.Pixel{R: float32(f), G: float32(i)}
		}
	}
	cb.blurred.copyFrom(&cb.raw)
	return cb
}

func stripFace(out *pixel.Buffer, slot, edge int) []pixel.Pixel {
	face := make([]pixel.Pixel, edge*edge)
	for j := 0; j < edge; j++ {
		off := (slot + j*FaceCount) * edge
		copy(face[j*edge:(j+1)*edge], out.Pix[off:off+edge])
	}
	return face
}

func TestPackForEngineLayout(t *testing.T) {
	const edge = 4
	cb := markedCube(edge)
	out := cb.PackForEngine()

	if out.Width != 6*edge || out.Height != edge {
		t.Fatalf("size %dx%d, want %dx%d", out.Width, out.Height, 6*edge, edge)
	}

	want := map[int]struct {
		face     Face
		quarters int
	}{
		0: {PosX, 3},
		1: {NegX, 1},
		2: {NegY, 0},
		3: {PosY, 2},
		4: {PosZ, 0},
		5: {NegZ, 0},
	}
	for slot, w := range want {
		exp := append([]pixel.Pixel(nil), cb.Blurred(w.face)...)
		rotate(exp, edge, w.quarters)
		if !equalFaces(stripFace(out, slot, edge), exp) {
			t.Fatalf("slot %d: expected face %v turned %d quarters", slot, w.face, w.quarters)
		}
	}

	// the cube itself is not reoriented
	if cb.Blurred(PosX)[1] != (pixel.Pixel{R: float32(PosX), G: 1}) {
		t.Fatal("PackForEngine modified the cube")
	}
}

func TestPackForEngineDeterministic(t *testing.T) {
	cb := markedCube(7)
	a := cb.PackForEngine()
	b := cb.PackForEngine()
	if !equalFaces(a.Pix, b.Pix) {
		t.Fatal("packing the same cube twice gave different strips")
	}
}

func TestDDSFacesOrientation(t *testing.T) {
	const edge = 3
	cb := markedCube(edge)
	fs := cb.DDSFaces(false)

	for f, q := range map[Face]int{PosX: 3, NegX: 1, PosY: 2, NegY: 0, PosZ: 0, NegZ: 0} {
		exp := append([]pixel.Pixel(nil), cb.Raw(f)...)
		rotate(exp, edge, q)
		if !equalFaces(fs[f], exp) {
			t.Fatalf("face %v not turned %d quarters", f, q)
		}
	}
}

func TestWhitePanoramaScenario(t *testing.T) {
	white := pixel.Gray(1)
	src := pixel.Filled(256, 128, white)

	cb := Project(src, 64, 0)
	for f := Face(0); f < FaceCount; f++ {
		if !allEqual(cb.Raw(f), white) {
			t.Fatalf("projected face %v not white", f)
		}
	}

	cb.Blur(5)
	for f := Face(0); f < FaceCount; f++ {
		if !allEqual(cb.Blurred(f), white) {
			t.Fatalf("blurred face %v not white", f)
		}
	}

	strip := cb.PackForEngine()
	if strip.Width != 384 || strip.Height != 64 {
		t.Fatalf("strip %dx%d, want 384x64", strip.Width, strip.Height)
	}
	if !allEqual(strip.Pix, white) {
		t.Fatal("strip not white")
	}
}
