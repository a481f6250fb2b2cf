package pixel

import "testing"

func TestPixelArithmetic(t *testing.T) {
	p := Pixel{1, 2, 3}
	q := Pixel{0.5, 0.5, 0.5}

	if got := p.Add(q); got != (Pixel{1.5, 2.5, 3.5}) {
		t.Fatalf("Add: %+v", got)
	}
	if got := p.Scale(2); got != (Pixel{2, 4, 6}) {
		t.Fatalf("Scale: %+v", got)
	}
	if got := p.Div(2); got != (Pixel{0.5, 1, 1.5}) {
		t.Fatalf("Div: %+v", got)
	}
	// no implicit clamping
	if got := Gray(4).Scale(8); got.R != 32 {
		t.Fatalf("expected unclamped 32, got %v", got.R)
	}
}

func TestBufferAtSetClone(t *testing.T) {
	b := NewBuffer(3, 2)
	b.Set(2, 1, Pixel{1, 0, 0})
	if b.Pix[5] != (Pixel{1, 0, 0}) {
		t.Fatalf("row-major layout broken: %+v", b.Pix)
	}
	c := b.Clone()
	c.Set(0, 0, Gray(7))
	if b.At(0, 0) == c.At(0, 0) {
		t.Fatal("Clone shares storage")
	}
}

func TestBufferStats(t *testing.T) {
	b := Filled(2, 2, Gray(0.5))
	b.Set(1, 1, Pixel{4, 0, 0})
	lo, hi, mean := b.Stats()
	if lo != 0.5 || hi != 4 {
		t.Fatalf("lo=%v hi=%v", lo, hi)
	}
	if mean.R != 1.375 {
		t.Fatalf("mean.R=%v", mean.R)
	}
}
