package systems

import (
	"dune-core/internal/domain"
)

// AffordanceKind - результат проверки входа в клетку.
type AffordanceKind uint8

const (
	// Rejected - входить нельзя.
	Rejected AffordanceKind = iota
	// Passable - проходимо с указанной стоимостью.
	Passable
	// Approach - дальше не пройти, но можно встать рядом (подойти к постройке).
	Approach
	// Enter - юнит входит в постройку (захват, проникновение, ремонт).
	Enter
)

func (k AffordanceKind) String() string {
	switch k {
	case Passable:
		return "passable"
	case Approach:
		return "approach"
	case Enter:
		return "enter"
	}
	return "rejected"
}

// Affordance - результат Evaluate. Cost заполняется только для Passable:
// чем быстрее местность, тем дешевле шаг.
type Affordance struct {
	Kind AffordanceKind `json:"kind"`
	Cost int            `json:"cost"`
}

// Mover - то, что движок знает о движущемся юните.
type Mover struct {
	Handle      domain.Handle
	Type        uint8
	Faction     domain.Faction
	Movement    domain.MovementType
	Target      domain.Handle
	Infiltrator bool
}

// MoverOf собирает Mover из записи арены.
func MoverOf(e *domain.Entity) Mover {
	return Mover{
		Handle:      e.Handle,
		Type:        e.Type,
		Faction:     e.Faction,
		Movement:    e.Movement,
		Target:      e.Target,
		Infiltrator: e.Infiltrator,
	}
}

func rejected() Affordance { return Affordance{Kind: Rejected} }

// Evaluate вычисляет, может ли mover войти в клетку dest, подходя с направления
// orient. Ничего не меняет в мире.
func Evaluate(w *domain.WorldState, m Mover, dest domain.PackedCoordinate, orient domain.Orientation8) Affordance {
	air := m.Movement == domain.MoveWinger

	// 1. Границы карты
	if !w.IsValidPosition(dest) {
		if !air || !dest.InGrid() {
			return rejected()
		}
	}
	c := w.Cell(dest)

	// 2. Юниты в клетке (авиация над ними пролетает)
	if !air && c.HasUnit && c.Occupant != m.Handle {
		if !canShareWithUnit(w, m, c.Occupant) {
			return rejected()
		}
	}

	// 3. Постройки
	if c.HasStructure && c.Occupant != domain.NoHandle {
		if s := w.Arena.Lookup(c.Occupant); s != nil && !s.IsShared() {
			return structureEntry(m, s)
		}
	}

	// 4. Скорость по местности
	speed := int(c.Landscape().Speed(m.Movement))
	if speed == 0 {
		return rejected()
	}
	if orient.IsDiagonal() {
		speed -= speed/4 + speed/8
	}

	return Affordance{Kind: Passable, Cost: speed ^ 0xFF}
}

// canShareWithUnit - пехота своей фракции пропускает гусеничную технику
// и харвестеры в свою клетку. Любой другой юнит клетку блокирует.
func canShareWithUnit(w *domain.WorldState, m Mover, occupant domain.Handle) bool {
	o := w.Arena.Lookup(occupant)
	if o == nil {
		return true
	}
	if o.Faction != m.Faction || o.Movement != domain.MoveFoot {
		return false
	}
	return m.Movement == domain.MoveTracked || m.Movement == domain.MoveHarvester
}

// structureEntry применяет политику входа постройки.
func structureEntry(m Mover, s *domain.Entity) Affordance {
	targeted := m.Target == s.Handle

	if s.Faction != m.Faction {
		if m.Infiltrator && targeted {
			return Affordance{Kind: Enter}
		}
		if m.Movement == domain.MoveFoot && s.Policy.Conquerable {
			if targeted {
				return Affordance{Kind: Enter}
			}
			return Affordance{Kind: Approach}
		}
		return rejected()
	}

	if !s.Policy.Allows(m.Type) {
		return rejected()
	}
	if s.ReservedFor != m.Handle || m.Handle == domain.NoHandle {
		return Affordance{Kind: Approach}
	}
	// Слот уже занят другим юнитом: постройка не готова принять
	if s.LinkedHandle != domain.NoHandle && s.LinkedHandle != m.Handle {
		return Affordance{Kind: Approach}
	}
	return Affordance{Kind: Enter}
}
