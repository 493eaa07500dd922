package handlers

import (
	"dune-core/internal/domain"
	"dune-core/pkg/utils"
	"encoding/json"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World *domain.WorldState
	Rng   *utils.ByteStream // Локальный генератор симуляции (взрывы цветения)
	Tick  uint32            // Текущий тик

	ClientID string // Кто прислал команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет ответы клиентам напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, WORLD, ERROR)
	Data    any    // Данные ответа (например, Affordance)

	// Snapshot - клиенту нужно переслать полный срез карты (после INIT).
	Snapshot bool
	// Reset - мир пересоздан, срез нужен всем подписчикам.
	Reset bool
}

// HandlerFunc - это контракт для любой команды (UNVEIL, SPICE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
