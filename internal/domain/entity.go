package domain

import "fmt"

// Handle - 1-based индекс слота в арене сущностей. 0 - "нет сущности".
type Handle uint16

const NoHandle Handle = 0

// EntityKind - вид индивидуальной сущности.
type EntityKind uint8

const (
	KindUnit EntityKind = iota
	KindStructure
)

func (k EntityKind) String() string {
	if k == KindStructure {
		return "structure"
	}
	return "unit"
}

// SharedKind - разделяемые синглтоны, которые меняют только местность
// и никогда не записываются в клетку как оккупант.
type SharedKind uint8

const (
	SharedNone SharedKind = iota
	SharedWall
	SharedSlab2x2
	SharedSlab1x1
)

func (s SharedKind) String() string {
	switch s {
	case SharedWall:
		return "wall"
	case SharedSlab2x2:
		return "slab-2x2"
	case SharedSlab1x1:
		return "slab-1x1"
	}
	return "none"
}

// RefKind различает результаты поиска по арене.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefUnit
	RefStructure
	RefShared
)

// Ref - типизированная ссылка на сущность.
type Ref struct {
	Kind   RefKind    `json:"kind"`
	Handle Handle     `json:"handle"`
	Shared SharedKind `json:"shared,omitempty"`
}

// IsNone проверяет пустую ссылку.
func (r Ref) IsNone() bool { return r.Kind == RefNone }

// EntryPolicy - правила входа в постройку.
type EntryPolicy struct {
	// Conquerable - вражеская пехота может захватить постройку.
	Conquerable bool `json:"conquerable"`
	// EnterFilter - битовая маска типов юнитов, которые могут войти (бит = Type).
	EnterFilter uint64 `json:"enterFilter"`
}

// Allows проверяет фильтр для типа юнита.
func (p EntryPolicy) Allows(unitType uint8) bool {
	if unitType >= 64 {
		return false
	}
	return p.EnterFilter&(1<<unitType) != 0
}

// Entity - запись в арене. Характеристики (здоровье, стоимость, графика)
// хранятся во внешнем каталоге и здесь не дублируются.
type Entity struct {
	Handle   Handle       `json:"handle"`
	Kind     EntityKind   `json:"kind"`
	Shared   SharedKind   `json:"shared,omitempty"`
	Type     uint8        `json:"type"`
	Faction  Faction      `json:"faction"`
	Movement MovementType `json:"movement"`

	Pos       FineCoordinate `json:"pos"`
	Placed    bool           `json:"placed"`
	Footprint int            `json:"footprint"` // сторона квадрата постройки в клетках

	Policy EntryPolicy `json:"policy"`

	// LinkedHandle - связанная сущность (например, юнит внутри постройки).
	LinkedHandle Handle `json:"linkedHandle,omitempty"`
	// ReservedFor - юнит, которому разрешён вход в постройку.
	ReservedFor Handle `json:"reservedFor,omitempty"`
	// Target - текущая цель юнита.
	Target      Handle `json:"target,omitempty"`
	Infiltrator bool   `json:"infiltrator,omitempty"`

	alive bool
}

// IsAlive сообщает, занят ли слот.
func (e *Entity) IsAlive() bool { return e.alive }

// IsShared проверяет разделяемый синглтон.
func (e *Entity) IsShared() bool { return e.Shared != SharedNone }

// Cell возвращает клетку текущей позиции.
func (e *Entity) Cell() PackedCoordinate {
	if !e.Placed {
		return InvalidPacked
	}
	return e.Pos.ToPacked()
}

// Ref возвращает ссылку на сущность.
func (e *Entity) Ref() Ref {
	switch {
	case !e.alive:
		return Ref{}
	case e.IsShared():
		return Ref{Kind: RefShared, Handle: e.Handle, Shared: e.Shared}
	case e.Kind == KindStructure:
		return Ref{Kind: RefStructure, Handle: e.Handle}
	}
	return Ref{Kind: RefUnit, Handle: e.Handle}
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d(type=%d faction=%d)", e.Kind, e.Handle, e.Type, e.Faction)
}

// EntitySpec - параметры выделения новой сущности.
type EntitySpec struct {
	Kind        EntityKind
	Type        uint8
	Faction     Faction
	Movement    MovementType
	Footprint   int
	Policy      EntryPolicy
	Infiltrator bool
}
