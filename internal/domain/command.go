package domain

import "encoding/json"

// InternalCommand - команда для цикла симуляции.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action   ActionType
	ClientID string          // кто прислал, для ответа
	Payload  json.RawMessage // Сырые данные (парсятся хендлером)
}
