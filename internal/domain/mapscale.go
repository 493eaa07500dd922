package domain

// MapScale - пресет размера игровой области внутри опорной сетки 64x64.
type MapScale uint8

const (
	ScaleLarge  MapScale = iota // 62x62
	ScaleMedium                 // 32x32
	ScaleSmall                  // 21x21
)

// MapInfo описывает видимую область карты.
type MapInfo struct {
	MinX  int `json:"minX"`
	MinY  int `json:"minY"`
	SizeX int `json:"sizeX"`
	SizeY int `json:"sizeY"`
}

var mapInfos = [3]MapInfo{
	{MinX: 1, MinY: 1, SizeX: 62, SizeY: 62},
	{MinX: 16, MinY: 16, SizeX: 32, SizeY: 32},
	{MinX: 21, MinY: 21, SizeX: 21, SizeY: 21},
}

// Valid проверяет, что пресет существует.
func (s MapScale) Valid() bool {
	return int(s) < len(mapInfos)
}

// Info возвращает границы области. Неизвестный пресет трактуется как ScaleLarge.
func (s MapScale) Info() MapInfo {
	if !s.Valid() {
		return mapInfos[ScaleLarge]
	}
	return mapInfos[s]
}

// Contains проверяет, лежит ли клетка внутри активной области.
func (s MapScale) Contains(p PackedCoordinate) bool {
	if p.IsSentinel() || !p.InGrid() {
		return false
	}
	info := s.Info()
	x, y := p.X(), p.Y()
	return info.MinX <= x && x < info.MinX+info.SizeX &&
		info.MinY <= y && y < info.MinY+info.SizeY
}

func (s MapScale) String() string {
	switch s {
	case ScaleLarge:
		return "large"
	case ScaleMedium:
		return "medium"
	case ScaleSmall:
		return "small"
	}
	return "unknown"
}

// ParseMapScale конвертирует имя пресета из конфига.
func ParseMapScale(name string) (MapScale, bool) {
	switch name {
	case "large", "0":
		return ScaleLarge, true
	case "medium", "1":
		return ScaleMedium, true
	case "small", "2":
		return ScaleSmall, true
	}
	return ScaleLarge, false
}
