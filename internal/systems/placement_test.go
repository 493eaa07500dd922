package systems

import (
	"testing"

	"dune-core/internal/domain"

	"github.com/davecgh/go-spew/spew"
)

func TestPlace_Unit(t *testing.T) {
	w := flatWorld(domain.LandscapeSand)
	p := domain.PackXY(10, 10)
	h := w.Arena.Allocate(domain.EntitySpec{Kind: domain.KindUnit, Faction: 1, Movement: domain.MoveWheeled})

	if !Place(w, h, p) {
		t.Fatal("Place failed on sand")
	}

	c := w.Cell(p)
	if !c.HasUnit || c.Occupant != h {
		t.Fatalf("cell after Place: %s", spew.Sdump(c))
	}
	ref := OccupantAt(w, p)
	if ref.Kind != domain.RefUnit || ref.Handle != h {
		t.Errorf("OccupantAt = %+v", ref)
	}
	// Позиция сущности согласована с клеткой
	if got := w.Arena.Get(h).Pos.ToPacked(); got != p {
		t.Errorf("entity position %v, want %v", got, p)
	}

	// Повторная постановка запрещена
	if Place(w, h, domain.PackXY(11, 10)) {
		t.Error("entity placed twice")
	}
}

func TestPlace_RejectsWithoutMutation(t *testing.T) {
	w := flatWorld(domain.LandscapeSand)
	occupied := domain.PackXY(10, 10)
	spawn(t, w, domain.EntitySpec{Kind: domain.KindUnit, Faction: 1, Movement: domain.MoveFoot}, occupied)
	setLandscape(w, domain.PackXY(12, 12), domain.LandscapeMountain)

	tests := []struct {
		name string
		spec domain.EntitySpec
		p    domain.PackedCoordinate
	}{
		{"occupied cell", domain.EntitySpec{Kind: domain.KindUnit, Faction: 1, Movement: domain.MoveFoot}, occupied},
		{"tank on mountain", domain.EntitySpec{Kind: domain.KindUnit, Faction: 1, Movement: domain.MoveTracked}, domain.PackXY(12, 12)},
		{"structure on sand", domain.EntitySpec{Kind: domain.KindStructure, Faction: 1, Footprint: 2}, domain.PackXY(20, 20)},
		{"outside map area", domain.EntitySpec{Kind: domain.KindUnit, Faction: 1, Movement: domain.MoveFoot}, domain.PackXY(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := w.Arena.Allocate(tt.spec)
			defer w.Arena.Free(h)

			before := w.Cells
			changed := w.Dirty.Changed.Len()
			if Place(w, h, tt.p) {
				t.Fatal("Place succeeded")
			}
			if w.Cells != before || w.Dirty.Changed.Len() != changed {
				t.Error("rejected Place mutated the world")
			}
			if w.Arena.Get(h).Placed {
				t.Error("entity marked placed")
			}
		})
	}
}

func TestPlace_StructureFootprint(t *testing.T) {
	w := flatWorld(domain.LandscapeRock)
	origin := domain.PackXY(20, 20)
	h := spawn(t, w, domain.EntitySpec{Kind: domain.KindStructure, Faction: 3, Footprint: 2}, origin)

	for _, p := range []domain.PackedCoordinate{origin, origin.Offset(1, 0), origin.Offset(0, 1), origin.Offset(1, 1)} {
		c := w.Cell(p)
		if !c.HasStructure || c.Occupant != h || c.Owner != 3 {
			t.Errorf("footprint cell %v: %s", p, spew.Sdump(c))
		}
		if Classify(w, p) != domain.LandscapeStructure {
			t.Errorf("cell %v classified as %v", p, Classify(w, p))
		}
	}
	if w.Cell(origin.Offset(2, 0)).HasStructure {
		t.Error("structure spilled outside its footprint")
	}
}

func TestPlace_SharedSingletons(t *testing.T) {
	w := flatWorld(domain.LandscapeRock)

	wall := w.Arena.SharedHandle(domain.SharedWall)
	p := domain.PackXY(10, 10)
	if !Place(w, wall, p) {
		t.Fatal("shared wall placement failed")
	}
	if Classify(w, p) != domain.LandscapeWall {
		t.Errorf("cell is %v, want wall", Classify(w, p))
	}
	if w.Cell(p).Occupant != domain.NoHandle {
		t.Error("shared wall written as occupant")
	}

	slab := w.Arena.SharedHandle(domain.SharedSlab2x2)
	origin := domain.PackXY(30, 30)
	if !Place(w, slab, origin) {
		t.Fatal("2x2 slab placement failed")
	}
	for _, cp := range []domain.PackedCoordinate{origin, origin.Offset(1, 0), origin.Offset(0, 1), origin.Offset(1, 1)} {
		if Classify(w, cp) != domain.LandscapeConcrete {
			t.Errorf("slab cell %v is %v", cp, Classify(w, cp))
		}
		if w.Cell(cp).Occupant != domain.NoHandle {
			t.Errorf("slab written as occupant at %v", cp)
		}
	}
}

func TestVacate(t *testing.T) {
	w := flatWorld(domain.LandscapeSand)
	p := domain.PackXY(10, 10)
	h := spawn(t, w, domain.EntitySpec{Kind: domain.KindUnit, Faction: 1, Movement: domain.MoveFoot}, p)

	if Vacate(w, h+1, p) {
		t.Error("Vacate with foreign handle succeeded")
	}
	if !Vacate(w, h, p) {
		t.Fatal("Vacate failed")
	}
	c := w.Cell(p)
	if c.HasUnit || c.Occupant != domain.NoHandle {
		t.Errorf("cell after Vacate: %s", spew.Sdump(c))
	}
	if !OccupantAt(w, p).IsNone() {
		t.Error("OccupantAt after Vacate is not empty")
	}
}

func TestRelocate(t *testing.T) {
	w := flatWorld(domain.LandscapeSand)
	from := domain.PackXY(10, 10)
	to := domain.PackXY(11, 10)
	h := spawn(t, w, domain.EntitySpec{Kind: domain.KindUnit, Faction: 1, Movement: domain.MoveFoot}, from)

	// Внутри клетки
	inside := domain.FineCoordinate{X: from.ToFine().X + 0x30, Y: from.ToFine().Y}
	if !Relocate(w, h, inside) || w.Cell(from).Occupant != h {
		t.Fatal("sub-cell move lost the occupant")
	}

	if !Relocate(w, h, to.ToFine()) {
		t.Fatal("Relocate to free cell failed")
	}
	if w.Cell(from).HasUnit || w.Cell(to).Occupant != h {
		t.Error("occupancy not transferred")
	}
	if got := w.Arena.Get(h).Pos.ToPacked(); got != to {
		t.Errorf("entity position %v, want %v", got, to)
	}
}

func TestRelease(t *testing.T) {
	w := flatWorld(domain.LandscapeRock)
	origin := domain.PackXY(20, 20)
	h := spawn(t, w, domain.EntitySpec{Kind: domain.KindStructure, Faction: 1, Footprint: 3}, origin)

	if !Release(w, h) {
		t.Fatal("Release failed")
	}
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			if w.Cell(origin.Offset(dx, dy)).HasStructure {
				t.Errorf("cell (%d,%d) still holds the structure", dx, dy)
			}
		}
	}
	if w.Arena.Lookup(h) != nil {
		t.Error("handle still alive after Release")
	}
	if Release(w, w.Arena.SharedHandle(domain.SharedWall)) {
		t.Error("shared slot released")
	}
}
