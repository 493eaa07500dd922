package domain

// Faction - фракция-владелец. 0 - нейтральная.
type Faction uint8

// AnyFaction используется в фильтрах.
const AnyFaction Faction = 0xFF

// MaxFaction - владелец хранится в трёх битах.
const MaxFaction Faction = 7

// Cell - состояние одной клетки карты.
type Cell struct {
	Ground  uint16  `json:"ground"`  // 9 бит, см. landscape.go
	Overlay uint16  `json:"overlay"` // туман, разрушенная стена или 0
	Owner   Faction `json:"owner"`

	Revealed     bool `json:"revealed"`
	HasUnit      bool `json:"hasUnit"`
	HasStructure bool `json:"hasStructure"`
	HasEffect    bool `json:"hasEffect"`

	// Occupant - хэндл в арене, 0 - пусто.
	Occupant Handle `json:"occupant"`
}

// Landscape классифицирует клетку.
func (c *Cell) Landscape() Landscape {
	return ClassifySprite(c.Ground, c.Overlay, c.HasStructure)
}

// Occupied сообщает, занята ли клетка юнитом или постройкой.
func (c *Cell) Occupied() bool {
	return c.HasUnit || c.HasStructure
}

// ClearOccupant снимает хэндл и флаги присутствия.
func (c *Cell) ClearOccupant() {
	c.Occupant = NoHandle
	c.HasUnit = false
	c.HasStructure = false
}
