package domain

// Landscape - категория местности, выводимая из спрайтов клетки.
type Landscape uint8

const (
	LandscapeSand Landscape = iota
	LandscapeRock
	LandscapeDune
	LandscapeMountain
	LandscapeSpice
	LandscapeThickSpice
	LandscapeConcrete
	LandscapeWall
	LandscapeStructure
	LandscapeDestroyedWall
	LandscapeBloom

	LandscapeCount
)

var landscapeNames = [LandscapeCount]string{
	"sand", "rock", "dune", "mountain", "spice", "thick-spice",
	"concrete", "wall", "structure", "destroyed-wall", "bloom",
}

func (l Landscape) String() string {
	if l >= LandscapeCount {
		return "invalid"
	}
	return landscapeNames[l]
}

// Раскладка 9-битного пространства спрайтов.
//
//	0x000-0x05F  шесть блоков по 16: песок, скала, дюны, горы, пряность,
//	             густая пряность. Младший полубайт - 4-битный код соседства
//	             (бит 0 - верх, 1 - право, 2 - низ, 3 - лево; бит = сосед той же категории).
//	0x06F        полный туман (клетка скрыта).
//	0x071-0x07F  кромка тумана, младший полубайт - маска скрытых соседей.
//	0x080        бетонная плита.
//	0x082-0x083  цветение пряности.
//	0x090        база стен. В overlay означает разрушенную стену.
//	0x091-0x0DA  варианты стены (база + 1 + вариант).
//	0x100-0x1FF  графика построек, для классификации не используется.
const (
	SpriteMask uint16 = 0x1FF

	SpriteSandBase       uint16 = 0x00
	SpriteRockBase       uint16 = 0x10
	SpriteDuneBase       uint16 = 0x20
	SpriteMountainBase   uint16 = 0x30
	SpriteSpiceBase      uint16 = 0x40
	SpriteThickSpiceBase uint16 = 0x50
	landscapeBlockEnd    uint16 = 0x60

	SpriteVeiled   uint16 = 0x6F
	SpriteFogBase  uint16 = 0x70
	SpriteConcrete uint16 = 0x80
	SpriteBloom1   uint16 = 0x82
	SpriteBloom2   uint16 = 0x83
	SpriteWallBase uint16 = 0x90

	// WallSpriteSpan - количество спрайтов стены после базы.
	WallSpriteSpan = 75

	SpriteStructureBase uint16 = 0x100
)

// LandscapeSprite возвращает спрайт блока категории с кодом соседства.
// Для категорий без блока возвращает false.
func LandscapeSprite(l Landscape, code uint8) (uint16, bool) {
	var base uint16
	switch l {
	case LandscapeSand:
		base = SpriteSandBase
	case LandscapeRock:
		base = SpriteRockBase
	case LandscapeDune:
		base = SpriteDuneBase
	case LandscapeMountain:
		base = SpriteMountainBase
	case LandscapeSpice:
		base = SpriteSpiceBase
	case LandscapeThickSpice:
		base = SpriteThickSpiceBase
	default:
		return 0, false
	}
	return base + uint16(code&0x0F), true
}

// FogSprite возвращает overlay для маски скрытых соседей.
// Маска 0 означает отсутствие overlay.
func FogSprite(mask uint8) uint16 {
	mask &= 0x0F
	if mask == 0 {
		return 0
	}
	return SpriteFogBase + uint16(mask)
}

// IsFogSprite проверяет, что overlay принадлежит туману (включая полный).
func IsFogSprite(overlay uint16) bool {
	return overlay == SpriteVeiled || (overlay > SpriteFogBase && overlay <= SpriteFogBase+0x0F)
}

// IsWallSprite проверяет диапазон спрайтов целой стены.
func IsWallSprite(ground uint16) bool {
	ground &= SpriteMask
	return ground > SpriteWallBase && ground < SpriteWallBase+WallSpriteSpan
}

// ClassifySprite выводит категорию из спрайтов. Порядок проверок важен:
// бетон и цветение перекрывают диапазоны, затем стены и постройки.
// Неизвестные спрайты трактуются как скала.
func ClassifySprite(ground, overlay uint16, hasStructure bool) Landscape {
	ground &= SpriteMask

	if ground == SpriteConcrete {
		return LandscapeConcrete
	}
	if ground == SpriteBloom1 || ground == SpriteBloom2 {
		return LandscapeBloom
	}
	if IsWallSprite(ground) {
		return LandscapeWall
	}
	if overlay == SpriteWallBase {
		return LandscapeDestroyedWall
	}
	if hasStructure {
		return LandscapeStructure
	}
	if ground < landscapeBlockEnd {
		return Landscape(ground >> 4)
	}
	return LandscapeRock
}

// MovementType - категория передвижения.
type MovementType uint8

const (
	MoveFoot MovementType = iota
	MoveTracked
	MoveHarvester
	MoveWheeled
	MoveWinger
	MoveSlither

	MovementTypeCount
)

var movementNames = [MovementTypeCount]string{
	"foot", "tracked", "harvester", "wheeled", "winger", "slither",
}

func (m MovementType) String() string {
	if m >= MovementTypeCount {
		return "invalid"
	}
	return movementNames[m]
}

// ParseMovementType конвертирует имя категории передвижения.
func ParseMovementType(name string) (MovementType, bool) {
	for i, n := range movementNames {
		if n == name {
			return MovementType(i), true
		}
	}
	return MoveFoot, false
}

// LandscapeInfo - статические свойства категории.
type LandscapeInfo struct {
	// MovementSpeed - скорость по категории передвижения, 0 - непроходимо.
	MovementSpeed  [MovementTypeCount]uint8
	CanBecomeSpice bool
	Buildable      bool
}

var landscapeInfos = [LandscapeCount]LandscapeInfo{
	LandscapeSand:          {MovementSpeed: [6]uint8{112, 112, 112, 160, 255, 192}, CanBecomeSpice: true},
	LandscapeRock:          {MovementSpeed: [6]uint8{160, 224, 224, 255, 255, 0}, Buildable: true},
	LandscapeDune:          {MovementSpeed: [6]uint8{112, 112, 112, 160, 255, 192}, CanBecomeSpice: true},
	LandscapeMountain:      {MovementSpeed: [6]uint8{64, 0, 0, 0, 255, 0}},
	LandscapeSpice:         {MovementSpeed: [6]uint8{112, 112, 112, 160, 255, 192}, CanBecomeSpice: true},
	LandscapeThickSpice:    {MovementSpeed: [6]uint8{112, 112, 112, 160, 255, 192}, CanBecomeSpice: true},
	LandscapeConcrete:      {MovementSpeed: [6]uint8{255, 255, 255, 255, 255, 0}, Buildable: true},
	LandscapeWall:          {MovementSpeed: [6]uint8{0, 0, 0, 0, 255, 0}},
	LandscapeStructure:     {MovementSpeed: [6]uint8{0, 0, 0, 0, 255, 0}},
	LandscapeDestroyedWall: {MovementSpeed: [6]uint8{160, 160, 160, 160, 255, 0}},
	LandscapeBloom:         {MovementSpeed: [6]uint8{112, 112, 112, 160, 255, 192}},
}

// Info возвращает свойства категории. Для невалидной категории - нулевые.
func (l Landscape) Info() LandscapeInfo {
	if l >= LandscapeCount {
		return LandscapeInfo{}
	}
	return landscapeInfos[l]
}

// Speed возвращает скорость категории передвижения по местности.
func (l Landscape) Speed(m MovementType) uint8 {
	if m >= MovementTypeCount {
		return 0
	}
	return l.Info().MovementSpeed[m]
}

// wallVariants переводит 8-битную маску соседей стены в номер варианта спрайта.
//
// Индекс: биты 0-3 - целая стена сверху/справа/снизу/слева,
// биты 4-7 - разрушенная стена в том же порядке.
// Без разрушенных соседей вариант равен маске целых (0-15),
// иначе 16 + объединение обеих масок (17-31).
var wallVariants = [256]uint8{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	17, 17, 19, 19, 21, 21, 23, 23, 25, 25, 27, 27, 29, 29, 31, 31,
	18, 19, 18, 19, 22, 23, 22, 23, 26, 27, 26, 27, 30, 31, 30, 31,
	19, 19, 19, 19, 23, 23, 23, 23, 27, 27, 27, 27, 31, 31, 31, 31,
	20, 21, 22, 23, 20, 21, 22, 23, 28, 29, 30, 31, 28, 29, 30, 31,
	21, 21, 23, 23, 21, 21, 23, 23, 29, 29, 31, 31, 29, 29, 31, 31,
	22, 23, 22, 23, 22, 23, 22, 23, 30, 31, 30, 31, 30, 31, 30, 31,
	23, 23, 23, 23, 23, 23, 23, 23, 31, 31, 31, 31, 31, 31, 31, 31,
	24, 25, 26, 27, 28, 29, 30, 31, 24, 25, 26, 27, 28, 29, 30, 31,
	25, 25, 27, 27, 29, 29, 31, 31, 25, 25, 27, 27, 29, 29, 31, 31,
	26, 27, 26, 27, 30, 31, 30, 31, 26, 27, 26, 27, 30, 31, 30, 31,
	27, 27, 27, 27, 31, 31, 31, 31, 27, 27, 27, 27, 31, 31, 31, 31,
	28, 29, 30, 31, 28, 29, 30, 31, 28, 29, 30, 31, 28, 29, 30, 31,
	29, 29, 31, 31, 29, 29, 31, 31, 29, 29, 31, 31, 29, 29, 31, 31,
	30, 31, 30, 31, 30, 31, 30, 31, 30, 31, 30, 31, 30, 31, 30, 31,
	31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31,
}

// WallSprite возвращает спрайт стены для маски соседей.
func WallSprite(mask uint8) uint16 {
	return SpriteWallBase + 1 + uint16(wallVariants[mask])
}

// EdgeCode вычисляет 4-битный код кромки: бит выставлен, если сосед
// в этом направлении той же категории. Горы считаются своими для скалы,
// густая пряность для пряности. У песка кромок нет, код всегда 0.
// Соседа за краем карты передают равным cur.
func EdgeCode(cur Landscape, neighbours [4]Landscape) uint8 {
	if cur == LandscapeSand {
		return 0
	}
	var code uint8
	for bit, other := range neighbours {
		if other == cur ||
			(cur == LandscapeRock && other == LandscapeMountain) ||
			(cur == LandscapeSpice && other == LandscapeThickSpice) {
			code |= 1 << bit
		}
	}
	return code
}
