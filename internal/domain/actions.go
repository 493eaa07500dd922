package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionUnveil
	ActionSpice
	ActionWall
	ActionConcrete
	ActionBloom
	ActionSpawn
	ActionRemove
	ActionEvaluate
	ActionViewport
	ActionRevealAll
	ActionLink
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":       ActionInit,
	"UNVEIL":     ActionUnveil,
	"SPICE":      ActionSpice,
	"WALL":       ActionWall,
	"CONCRETE":   ActionConcrete,
	"BLOOM":      ActionBloom,
	"SPAWN":      ActionSpawn,
	"REMOVE":     ActionRemove,
	"EVALUATE":   ActionEvaluate,
	"VIEWPORT":   ActionViewport,
	"REVEAL_ALL": ActionRevealAll,
	"LINK":       ActionLink,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:      "INIT",
	ActionUnveil:    "UNVEIL",
	ActionSpice:     "SPICE",
	ActionWall:      "WALL",
	ActionConcrete:  "CONCRETE",
	ActionBloom:     "BLOOM",
	ActionSpawn:     "SPAWN",
	ActionRemove:    "REMOVE",
	ActionEvaluate:  "EVALUATE",
	ActionViewport:  "VIEWPORT",
	ActionRevealAll: "REVEAL_ALL",
	ActionLink:      "LINK",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
