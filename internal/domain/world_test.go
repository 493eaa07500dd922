package domain

import "testing"

func TestWorldState_Cell(t *testing.T) {
	w := NewWorldState(ScaleMedium, 1)

	if w.Cell(InvalidPacked) != nil {
		t.Error("Cell(InvalidPacked) should be nil")
	}
	if w.Cell(0x1000) != nil {
		t.Error("Cell(0x1000) should be nil")
	}

	p := PackXY(20, 20)
	w.Cell(p).Owner = 3
	if w.Cells[p.Index()].Owner != 3 {
		t.Error("Cell() does not return a pointer into the grid")
	}
}

func TestWorldState_IsValidPosition(t *testing.T) {
	w := NewWorldState(ScaleSmall, 1)

	if w.IsValidPosition(PackXY(5, 5)) {
		t.Error("(5,5) is outside the small map")
	}
	if !w.IsValidPosition(PackXY(30, 30)) {
		t.Error("(30,30) is inside the small map")
	}
	if w.Landscape(InvalidPacked) != LandscapeRock {
		t.Error("off-grid landscape should be rock")
	}
}

func TestViewport_Contains(t *testing.T) {
	v := Viewport{Origin: PackXY(10, 10)}

	tests := []struct {
		p    PackedCoordinate
		want bool
	}{
		{PackXY(10, 10), true},
		{PackXY(24, 19), true},
		{PackXY(25, 10), false},
		{PackXY(10, 20), false},
		{PackXY(9, 10), false},
		{InvalidPacked, false},
	}
	for _, tt := range tests {
		if got := v.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEntryPolicy_Allows(t *testing.T) {
	p := EntryPolicy{EnterFilter: 1<<3 | 1<<10}

	if !p.Allows(3) || !p.Allows(10) {
		t.Error("filter should allow types 3 and 10")
	}
	if p.Allows(4) || p.Allows(64) {
		t.Error("filter should reject types 4 and 64")
	}
}
