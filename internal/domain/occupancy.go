package domain

import "fmt"

const (
	// DefaultArenaSlots - ёмкость индивидуальных слотов.
	DefaultArenaSlots = 180
	// SharedSlots - зарезервированные слоты синглтонов в конце арены.
	SharedSlots = 3
)

// Arena - пул сущностей фиксированной ёмкости.
//
// Индивидуальные слоты выдаются из стека свободных (младшие хэндлы первыми),
// живые хранятся в компактном списке active с удалением через swap-with-last.
// Три разделяемых слота всегда живы и в free-list не попадают.
type Arena struct {
	slots  []Entity
	free   []Handle
	active []Handle
	// activeIdx - позиция хэндла в active, -1 если не активен.
	activeIdx []int
	capacity  int
}

// NewArena создаёт арену на capacity индивидуальных слотов.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultArenaSlots
	}
	total := capacity + SharedSlots
	a := &Arena{
		slots:     make([]Entity, total+1), // слот 0 не используется
		free:      make([]Handle, 0, capacity),
		active:    make([]Handle, 0, capacity),
		activeIdx: make([]int, total+1),
		capacity:  capacity,
	}
	for h := capacity; h >= 1; h-- {
		a.free = append(a.free, Handle(h))
	}
	for i := range a.activeIdx {
		a.activeIdx[i] = -1
	}
	for i, kind := range []SharedKind{SharedWall, SharedSlab2x2, SharedSlab1x1} {
		h := Handle(capacity + 1 + i)
		a.slots[h] = Entity{
			Handle: h,
			Kind:   KindStructure,
			Shared: kind,
			alive:  true,
		}
	}
	return a
}

// Capacity - число индивидуальных слотов.
func (a *Arena) Capacity() int { return a.capacity }

// Len - число живых индивидуальных сущностей.
func (a *Arena) Len() int { return len(a.active) }

// SharedHandle возвращает хэндл синглтона.
func (a *Arena) SharedHandle(kind SharedKind) Handle {
	if kind == SharedNone {
		return NoHandle
	}
	return Handle(a.capacity + int(kind))
}

// MustValidHandle паникует, если хэндл вне арены.
// Это ошибка программиста, а не входных данных.
func (a *Arena) MustValidHandle(h Handle) {
	if h == NoHandle || int(h) >= len(a.slots) {
		panic(fmt.Sprintf("domain: handle %d outside arena (1..%d)", h, len(a.slots)-1))
	}
}

// Get возвращает запись по хэндлу. Запись может быть не живой.
func (a *Arena) Get(h Handle) *Entity {
	a.MustValidHandle(h)
	return &a.slots[h]
}

// Lookup возвращает живую запись или nil. Хэндл 0 и хэндлы вне арены дают nil.
func (a *Arena) Lookup(h Handle) *Entity {
	if h == NoHandle || int(h) >= len(a.slots) {
		return nil
	}
	e := &a.slots[h]
	if !e.alive {
		return nil
	}
	return e
}

// Allocate выдаёт новый слот. При исчерпании возвращает NoHandle.
func (a *Arena) Allocate(spec EntitySpec) Handle {
	if len(a.free) == 0 {
		return NoHandle
	}
	h := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]

	a.slots[h] = Entity{
		Handle:      h,
		Kind:        spec.Kind,
		Type:        spec.Type,
		Faction:     spec.Faction,
		Movement:    spec.Movement,
		Footprint:   spec.Footprint,
		Policy:      spec.Policy,
		Infiltrator: spec.Infiltrator,
		Pos:         InvalidFine,
		alive:       true,
	}
	a.activeIdx[h] = len(a.active)
	a.active = append(a.active, h)
	return h
}

// Free возвращает слот в пул. Разделяемые слоты и мёртвые записи игнорируются.
// Клетки карты должны быть освобождены до вызова (см. systems.Release).
func (a *Arena) Free(h Handle) bool {
	a.MustValidHandle(h)
	e := &a.slots[h]
	if !e.alive || e.IsShared() {
		return false
	}

	idx := a.activeIdx[h]
	last := len(a.active) - 1
	moved := a.active[last]
	a.active[idx] = moved
	a.activeIdx[moved] = idx
	a.active = a.active[:last]
	a.activeIdx[h] = -1

	*e = Entity{}
	a.free = append(a.free, h)
	return true
}

// Filter - условия поиска FindNext. Нулевое значение Kind соответствует юнитам,
// поэтому для "любого вида" используйте AnyKind.
type Filter struct {
	Kind      RefKind
	Faction   Faction
	Type      uint8
	OnMapOnly bool
}

// AnyType - любой тип в фильтре.
const AnyType uint8 = 0xFF

// AnyKind - любой вид ссылки.
const AnyKind RefKind = 0xFF

// MatchAll - фильтр без ограничений.
var MatchAll = Filter{Kind: AnyKind, Faction: AnyFaction, Type: AnyType}

func (f Filter) matches(e *Entity) bool {
	ref := e.Ref()
	if f.Kind != AnyKind && f.Kind != ref.Kind {
		return false
	}
	if f.Faction != AnyFaction && f.Faction != e.Faction {
		return false
	}
	if f.Type != AnyType && f.Type != e.Type {
		return false
	}
	if f.OnMapOnly && !e.Placed && !e.IsShared() {
		return false
	}
	return true
}

// FindNext продолжает перебор с курсора. Курсор -1 начинает с начала.
// Порядок: активный список, затем три разделяемых слота.
// Возвращает пустую ссылку и -1, когда перебор закончен.
//
// Вызов Free во время перебора может сдвинуть непросмотренную запись
// на уже пройденную позицию.
func (a *Arena) FindNext(f Filter, cursor int) (Ref, int) {
	next := cursor + 1
	if next < 0 {
		next = 0
	}
	total := len(a.active) + SharedSlots
	for ; next < total; next++ {
		var h Handle
		if next < len(a.active) {
			h = a.active[next]
		} else {
			h = Handle(a.capacity + 1 + next - len(a.active))
		}
		e := &a.slots[h]
		if e.alive && f.matches(e) {
			return e.Ref(), next
		}
	}
	return Ref{}, -1
}

// Each вызывает fn для каждой живой индивидуальной сущности.
func (a *Arena) Each(fn func(*Entity)) {
	for _, h := range a.active {
		fn(&a.slots[h])
	}
}
