package api

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Format - формат кадров на WebSocket.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// ParseFormat читает формат из query-параметра ?format=.
// Пустое значение - JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return FormatJSON, fmt.Errorf("unknown frame format %q", s)
}

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// IsBinary сообщает, нужно ли слать кадр как websocket.BinaryMessage.
func (f Format) IsBinary() bool {
	return f == FormatMsgpack
}

// EncodeResponse сериализует ответ сервера в выбранный формат.
func EncodeResponse(f Format, resp ServerResponse) ([]byte, error) {
	switch f {
	case FormatMsgpack:
		data, err := msgpack.Marshal(&resp)
		if err != nil {
			return nil, fmt.Errorf("msgpack encode: %w", err)
		}
		return data, nil
	default:
		data, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("json encode: %w", err)
		}
		return data, nil
	}
}

// msgpackCommand - команда в бинарном виде. Payload приходит картой,
// а хендлеры разбирают JSON, поэтому карта перекодируется.
type msgpackCommand struct {
	Action  string         `msgpack:"action"`
	Payload map[string]any `msgpack:"payload"`
}

// DecodeCommand разбирает команду клиента.
func DecodeCommand(f Format, data []byte) (ClientCommand, error) {
	var cmd ClientCommand

	if f != FormatMsgpack {
		if err := json.Unmarshal(data, &cmd); err != nil {
			return cmd, fmt.Errorf("json decode: %w", err)
		}
		return cmd, nil
	}

	var raw msgpackCommand
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return cmd, fmt.Errorf("msgpack decode: %w", err)
	}
	cmd.Action = raw.Action
	if raw.Payload != nil {
		payload, err := json.Marshal(raw.Payload)
		if err != nil {
			return cmd, fmt.Errorf("payload re-encode: %w", err)
		}
		cmd.Payload = payload
	}
	return cmd, nil
}
