package server

import (
	"net/http"
	"time"

	"dune-core/internal/engine"
	"dune-core/pkg/api"
	"dune-core/pkg/logger"
	"dune-core/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Service
type Client struct {
	Service  *engine.Service
	Conn     *websocket.Conn
	Send     chan api.ServerResponse
	ClientID string
	Format   api.Format
}

func NewClient(svc *engine.Service, conn *websocket.Conn, format api.Format) *Client {
	return &Client{
		Service:  svc,
		Conn:     conn,
		Send:     make(chan api.ServerResponse, 256),
		ClientID: utils.GenerateID(),
		Format:   format,
	}
}

func (c *Client) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "ws",
		"client_id": c.ClientID,
		"format":    c.Format.String(),
	})
}

// subscribe регистрирует клиента в хабе и запрашивает первый срез карты.
func (c *Client) subscribe() {
	updates := c.Service.Hub.Register(c.ClientID)

	// Пересылка обновлений из Hub в writePump
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	c.log().Info("Client connected")

	// Отправляем INIT (триггер первой отрисовки)
	c.Service.ProcessCommand(c.ClientID, api.ClientCommand{Action: "INIT"})
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Service.Hub.Unregister(c.ClientID)
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Warn("failed to close websocket connection")
		}
		c.log().Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log().WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log().WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().Errorf("WS Error: %v", err)
			}
			break
		}

		cmd, err := api.DecodeCommand(c.Format, data)
		if err != nil {
			c.log().WithError(err).Warn("Malformed command")
			c.Service.Hub.SendTo(c.ClientID, api.ServerResponse{
				Type:  api.TypeError,
				Error: err.Error(),
			})
			continue
		}
		c.Service.ProcessCommand(c.ClientID, cmd)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	messageType := websocket.TextMessage
	if c.Format.IsBinary() {
		messageType = websocket.BinaryMessage
	}

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log().WithError(err).Debug("write close message failed")
				}
				return
			}
			data, err := api.EncodeResponse(c.Format, message)
			if err != nil {
				c.log().WithError(err).Error("encode response failed")
				continue
			}
			if err := c.Conn.WriteMessage(messageType, data); err != nil {
				c.log().WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log().WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
