package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера.
const (
	TypeSnapshot = "SNAPSHOT" // полный срез активной области (после INIT)
	TypeChanges  = "CHANGES"  // изменённые клетки за тик
	TypeResult   = "RESULT"   // ответ на команду
	TypeError    = "ERROR"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Клиент получает полный срез карты один раз (SNAPSHOT), а затем только
// изменённые клетки каждого тика (CHANGES).
type ServerResponse struct {
	// Type тип сообщения (SNAPSHOT, CHANGES, RESULT, ERROR).
	Type string `json:"type" msgpack:"type"`

	// Tick номер тика симуляции, на котором собран ответ.
	Tick uint32 `json:"tick" msgpack:"tick"`

	// Grid метаданные активной области карты.
	Grid *GridMeta `json:"grid,omitempty" msgpack:"grid,omitempty"`

	// Tiles клетки: весь срез для SNAPSHOT или изменения для CHANGES.
	Tiles []TileView `json:"tiles,omitempty" msgpack:"tiles,omitempty"`

	// Saturated true, если за тик изменилось больше клеток, чем вмещает
	// ограниченный список, и Tiles собраны по карте покрытия.
	Saturated bool `json:"saturated,omitempty" msgpack:"saturated,omitempty"`

	// Result произвольные данные ответа (например, результат EVALUATE).
	Result any `json:"result,omitempty" msgpack:"result,omitempty"`

	// Message текст для лога клиента.
	Message string `json:"message,omitempty" msgpack:"message,omitempty"`

	// Error текст ошибки обработки команды.
	Error string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// GridMeta описывает активную область внутри опорной сетки 64x64.
type GridMeta struct {
	Scale  string `json:"scale" msgpack:"scale"`
	MinX   int    `json:"minX" msgpack:"minX"`
	MinY   int    `json:"minY" msgpack:"minY"`
	Width  int    `json:"w" msgpack:"w"`
	Height int    `json:"h" msgpack:"h"`
	Seed   uint32 `json:"seed" msgpack:"seed"`
}

// TileView это DTO для одной клетки.
type TileView struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`

	// Ground и Overlay - номера спрайтов, клиент рисует их сам.
	Ground  uint16 `json:"ground" msgpack:"g"`
	Overlay uint16 `json:"overlay,omitempty" msgpack:"o,omitempty"`

	// Landscape - категория местности ("sand", "rock", ...).
	Landscape string `json:"landscape" msgpack:"l"`

	Owner    uint8 `json:"owner,omitempty" msgpack:"w,omitempty"`
	Revealed bool  `json:"revealed" msgpack:"r"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action" msgpack:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload" msgpack:"payload"`
}

// --- Payloads ---

// PositionPayload используется для действий, нацеленных на клетку (VIEWPORT).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InitPayload пересоздаёт мир. Пустой payload оставляет текущий мир.
type InitPayload struct {
	Seed  *uint32 `json:"seed,omitempty"`
	Scale string  `json:"scale,omitempty"`

	// Chunk - клетки сценария поверх сгенерированной карты
	// ("C0102": "flags,ground").
	Chunk map[string]string `json:"chunk,omitempty"`
}

// UnveilPayload раскрывает клетку или круг с радиусом Radius.
type UnveilPayload struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius,omitempty"`
}

// SpicePayload растит (Grow=true) или убирает пряность.
type SpicePayload struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Grow bool `json:"grow"`
}

// WallPayload ставит или разрушает стену.
type WallPayload struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Destroy bool `json:"destroy,omitempty"`
}

// ConcretePayload кладёт бетонную плиту.
type ConcretePayload struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Owner uint8 `json:"owner"`
	// Size - 1 (плита 1x1) или 2 (плита 2x2).
	Size int `json:"size,omitempty"`
}

// BloomPayload сажает или взрывает цветение пряности.
type BloomPayload struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Explode bool `json:"explode,omitempty"`
}

// SpawnPayload выделяет сущность в арене и ставит её на карту.
type SpawnPayload struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Kind        string `json:"kind"` // "unit" | "structure"
	Type        uint8  `json:"type"`
	Faction     uint8  `json:"faction"`
	Movement    string `json:"movement,omitempty"`
	Footprint   int    `json:"footprint,omitempty"`
	Conquerable bool   `json:"conquerable,omitempty"`
	EnterFilter uint64 `json:"enterFilter,omitempty"`
	Infiltrator bool   `json:"infiltrator,omitempty"`
}

// RemovePayload снимает сущность с карты и освобождает слот.
type RemovePayload struct {
	Handle uint16 `json:"handle"`
}

// LinkPayload задаёт связи сущности Handle. Ноль снимает связь.
//
//	target:      цель юнита (постройка, в которую он идёт)
//	reservedFor: юнит, которому постройка разрешает вход
//	linked:      юнит, уже занявший слот постройки
type LinkPayload struct {
	Handle      uint16 `json:"handle"`
	Target      uint16 `json:"target,omitempty"`
	ReservedFor uint16 `json:"reservedFor,omitempty"`
	Linked      uint16 `json:"linked,omitempty"`
}

// EvaluatePayload спрашивает, может ли юнит Handle войти в клетку (X,Y),
// подходя с направления Orientation (0..7, 0 = север).
type EvaluatePayload struct {
	Handle      uint16 `json:"handle"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation uint8  `json:"orientation"`
}
