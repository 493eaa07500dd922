package domain

import "testing"

func TestPackXY_RoundTrip(t *testing.T) {
	for y := 0; y < MapSide; y++ {
		for x := 0; x < MapSide; x++ {
			p := PackXY(x, y)
			if p.X() != x || p.Y() != y {
				t.Fatalf("PackXY(%d,%d) unpacked to (%d,%d)", x, y, p.X(), p.Y())
			}
			if !p.InGrid() || p.IsSentinel() {
				t.Fatalf("PackXY(%d,%d) = %#x reported off-grid", x, y, uint16(p))
			}
		}
	}
}

func TestPackXY_OutOfRange(t *testing.T) {
	tests := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {64, 0}, {0, 64}, {100, 100},
	}
	for _, tt := range tests {
		if got := PackXY(tt.x, tt.y); got != InvalidPacked {
			t.Errorf("PackXY(%d,%d) = %#x, want InvalidPacked", tt.x, tt.y, uint16(got))
		}
	}
}

func TestPackedCoordinate_Sentinel(t *testing.T) {
	tests := []struct {
		p        PackedCoordinate
		sentinel bool
		inGrid   bool
	}{
		{0x0000, false, true},
		{0x0FFF, false, true},
		{0x1000, false, false},
		{0x4000, true, false},
		{0x8000, true, false},
		{InvalidPacked, true, false},
	}
	for _, tt := range tests {
		if got := tt.p.IsSentinel(); got != tt.sentinel {
			t.Errorf("%#x.IsSentinel() = %v, want %v", uint16(tt.p), got, tt.sentinel)
		}
		if got := tt.p.InGrid(); got != tt.inGrid {
			t.Errorf("%#x.InGrid() = %v, want %v", uint16(tt.p), got, tt.inGrid)
		}
	}
}

func TestPackedFine_RoundTrip(t *testing.T) {
	for i := 0; i < MapCells; i++ {
		p := PackedCoordinate(i)
		f := p.ToFine()
		if f.X&0xFF != 0x80 || f.Y&0xFF != 0x80 {
			t.Fatalf("%v.ToFine() = %+v is not centred", p, f)
		}
		if back := f.ToPacked(); back != p {
			t.Fatalf("%v -> %+v -> %v", p, f, back)
		}
	}
}

func TestFineCoordinate_Truncates(t *testing.T) {
	tests := []struct {
		f    FineCoordinate
		want PackedCoordinate
	}{
		{FineCoordinate{X: 0, Y: 0}, PackXY(0, 0)},
		{FineCoordinate{X: 0xFF, Y: 0xFF}, PackXY(0, 0)},
		{FineCoordinate{X: 0x100, Y: 0x2FF}, PackXY(1, 2)},
		{FineCoordinate{X: 0x3FFF, Y: 0x3FFF}, PackXY(63, 63)},
		{FineCoordinate{X: 0x4000, Y: 0}, InvalidPacked},
		{InvalidFine, InvalidPacked},
	}
	for _, tt := range tests {
		if got := tt.f.ToPacked(); got != tt.want {
			t.Errorf("%+v.ToPacked() = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestPackedCoordinate_NeighborAtEdge(t *testing.T) {
	corner := PackXY(0, 0)
	if corner.Neighbor(CardinalUp) != InvalidPacked {
		t.Error("up from (0,0) should be off-grid")
	}
	if corner.Neighbor(CardinalLeft) != InvalidPacked {
		t.Error("left from (0,0) should be off-grid")
	}
	if got := corner.Neighbor(CardinalRight); got != PackXY(1, 0) {
		t.Errorf("right from (0,0) = %v", got)
	}
	if got := PackXY(63, 5).Neighbor(CardinalRight); got != InvalidPacked {
		t.Errorf("right from (63,5) wrapped to %v", got)
	}
}

func TestOrientation8(t *testing.T) {
	from := PackXY(10, 10)
	for o := OrientNorth; o <= OrientNorthWest; o++ {
		dx, dy := o.Step()
		to := from.Offset(dx, dy)
		got, ok := OrientationBetween(from, to)
		if !ok || got != o {
			t.Errorf("OrientationBetween for %d = %d, %v", o, got, ok)
		}
		if o.IsDiagonal() != (dx != 0 && dy != 0) {
			t.Errorf("orientation %d: IsDiagonal = %v for step (%d,%d)", o, o.IsDiagonal(), dx, dy)
		}
	}
	if _, ok := OrientationBetween(from, PackXY(12, 10)); ok {
		t.Error("non-adjacent cells should not have an orientation")
	}
}

func TestMapScale_Contains(t *testing.T) {
	tests := []struct {
		scale MapScale
		p     PackedCoordinate
		want  bool
	}{
		{ScaleLarge, PackXY(0, 0), false},
		{ScaleLarge, PackXY(1, 1), true},
		{ScaleLarge, PackXY(62, 62), true},
		{ScaleLarge, PackXY(63, 1), false},
		{ScaleMedium, PackXY(16, 16), true},
		{ScaleMedium, PackXY(47, 47), true},
		{ScaleMedium, PackXY(48, 20), false},
		{ScaleSmall, PackXY(21, 21), true},
		{ScaleSmall, PackXY(41, 41), true},
		{ScaleSmall, PackXY(42, 41), false},
		{ScaleLarge, InvalidPacked, false},
	}
	for _, tt := range tests {
		if got := tt.scale.Contains(tt.p); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", tt.scale, tt.p, got, tt.want)
		}
	}
}
