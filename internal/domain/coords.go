package domain

import "fmt"

// PackedCoordinate - упакованный индекс клетки в опорной сетке 64x64.
//
// Формат битов (от старших к младшим):
//
//	[ Sentinel (2) | Unused (2) | Y (6) | X (6) ]
//
// Валидные значения лежат в диапазоне 0..4095. Значение с любым из двух
// старших бит считается маркером "вне карты".
type PackedCoordinate uint16

// Размеры опорной сетки.
const (
	MapSide  = 64
	MapCells = MapSide * MapSide

	bitsAxis  = 6
	maskAxis  = (1 << bitsAxis) - 1 // 0x3F
	maskIndex = MapCells - 1        // 0x0FFF

	// maskSentinel - два зарезервированных старших бита.
	maskSentinel = 0xC000
	// maskOffMap - всё, что выше 12 бит индекса.
	maskOffMap = 0xF000
)

// InvalidPacked - маркер "нет координаты / вне карты".
const InvalidPacked PackedCoordinate = 0xFFFF

// PackXY собирает координату из столбца и строки.
// Для значений вне опорной сетки возвращает InvalidPacked.
func PackXY(x, y int) PackedCoordinate {
	if x < 0 || x >= MapSide || y < 0 || y >= MapSide {
		return InvalidPacked
	}
	return PackedCoordinate(y<<bitsAxis | x)
}

// X возвращает столбец.
func (p PackedCoordinate) X() int {
	return int(p) & maskAxis
}

// Y возвращает строку.
func (p PackedCoordinate) Y() int {
	return (int(p) >> bitsAxis) & maskAxis
}

// Index возвращает индекс клетки в массиве WorldState.Cells.
func (p PackedCoordinate) Index() int {
	return int(p) & maskIndex
}

// IsSentinel проверяет зарезервированные старшие биты.
func (p PackedCoordinate) IsSentinel() bool {
	return p&maskSentinel != 0
}

// InGrid проверяет, что координата адресует клетку опорной сетки.
// Активный масштаб карты здесь не учитывается, см. MapScale.Contains.
func (p PackedCoordinate) InGrid() bool {
	return p&maskOffMap == 0
}

// Offset сдвигает координату. Выход за опорную сетку даёт InvalidPacked.
func (p PackedCoordinate) Offset(dx, dy int) PackedCoordinate {
	if !p.InGrid() {
		return InvalidPacked
	}
	return PackXY(p.X()+dx, p.Y()+dy)
}

// Neighbor возвращает соседа по одному из четырёх основных направлений.
func (p PackedCoordinate) Neighbor(d Cardinal) PackedCoordinate {
	return p.Offset(cardinalDX[d], cardinalDY[d])
}

// ToFine разворачивает клетку в центр её мелкой координаты.
func (p PackedCoordinate) ToFine() FineCoordinate {
	if !p.InGrid() {
		return InvalidFine
	}
	return FineCoordinate{
		X: uint16(p.X())<<fineShift | fineCenter,
		Y: uint16(p.Y())<<fineShift | fineCenter,
	}
}

// DistanceTo - приближённое расстояние в клетках: max + min/2.
func (p PackedCoordinate) DistanceTo(other PackedCoordinate) int {
	dx := abs(p.X() - other.X())
	dy := abs(p.Y() - other.Y())
	if dx > dy {
		return dx + dy/2
	}
	return dy + dx/2
}

func (p PackedCoordinate) String() string {
	if !p.InGrid() {
		return "[off-map]"
	}
	return fmt.Sprintf("[%d:%d]", p.X(), p.Y())
}

// FineCoordinate - координата с точностью 1/256 клетки.
// Используется для плавного движения сущностей.
type FineCoordinate struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

const (
	// FineUnitsPerCell - количество мелких единиц в одной клетке.
	FineUnitsPerCell = 256

	fineShift  = 8
	fineCenter = 0x80
	// fineLimit - граница опорной сетки в мелких единицах.
	fineLimit = MapSide * FineUnitsPerCell
)

// InvalidFine - маркер "нет позиции".
var InvalidFine = FineCoordinate{X: 0xFFFF, Y: 0xFFFF}

// ToPacked усекает мелкую координату до клетки.
func (f FineCoordinate) ToPacked() PackedCoordinate {
	if f.X >= fineLimit || f.Y >= fineLimit {
		return InvalidPacked
	}
	return PackXY(int(f.X>>fineShift), int(f.Y>>fineShift))
}

// Center выравнивает координату по центру её клетки.
func (f FineCoordinate) Center() FineCoordinate {
	return FineCoordinate{
		X: f.X&^(FineUnitsPerCell-1) | fineCenter,
		Y: f.Y&^(FineUnitsPerCell-1) | fineCenter,
	}
}

// IsValid проверяет, что координата лежит в опорной сетке.
func (f FineCoordinate) IsValid() bool {
	return f.X < fineLimit && f.Y < fineLimit
}

// Cardinal - основное направление. Порядок задаёт биты всех масок соседства:
// бит 0 - вверх, 1 - вправо, 2 - вниз, 3 - влево.
type Cardinal uint8

const (
	CardinalUp Cardinal = iota
	CardinalRight
	CardinalDown
	CardinalLeft
)

// Cardinals перечисляет направления в порядке битов маски.
var Cardinals = [4]Cardinal{CardinalUp, CardinalRight, CardinalDown, CardinalLeft}

var (
	cardinalDX = [4]int{0, 1, 0, -1}
	cardinalDY = [4]int{-1, 0, 1, 0}
)

// Orientation8 - одно из восьми направлений подхода, по часовой стрелке с севера.
// Нечётные значения - диагонали.
type Orientation8 uint8

const (
	OrientNorth Orientation8 = iota
	OrientNorthEast
	OrientEast
	OrientSouthEast
	OrientSouth
	OrientSouthWest
	OrientWest
	OrientNorthWest
)

var (
	orientDX = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	orientDY = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
)

// IsDiagonal сообщает, является ли направление диагональным.
func (o Orientation8) IsDiagonal() bool {
	return o&1 != 0
}

// Step возвращает смещение клетки для направления.
func (o Orientation8) Step() (dx, dy int) {
	return orientDX[o&7], orientDY[o&7]
}

// OrientationBetween возвращает направление шага от from к соседней клетке to.
// Для несоседних клеток ok == false.
func OrientationBetween(from, to PackedCoordinate) (o Orientation8, ok bool) {
	dx := to.X() - from.X()
	dy := to.Y() - from.Y()
	for i := 0; i < 8; i++ {
		if orientDX[i] == dx && orientDY[i] == dy {
			return Orientation8(i), true
		}
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
