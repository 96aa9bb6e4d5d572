package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер кадра
	maxMessageSize = 64 * 1024 // 64KB
)

type Client struct {
	ID     uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Sparks map[uuid.UUID]bool
	Hub    *Hub
	mu     sync.RWMutex
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New(),
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Sparks: make(map[uuid.UUID]bool),
		Hub:    hub,
	}
}

// ReadPump читает кадры от клиента. Клиент может только управлять
// подписками: spark_join, spark_leave, pong. Сообщения в ленту идут
// через HTTP API, не через сокет.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("ws read error", "client_id", c.ID, "error", err)
			}
			break
		}

		switch msg.Type {
		case TypePong:
			continue

		case TypeSparkJoin:
			if msg.SparkID != nil {
				c.Hub.JoinSpark(c, *msg.SparkID)
			}

		case TypeSparkLeave:
			if msg.SparkID != nil {
				c.Hub.LeaveSpark(c, *msg.SparkID)
			}

		default:
			c.SendError("unknown message type")
		}
	}
}

// WritePump отправляет кадры клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendMessage(msgType MessageType, data interface{}) error {
	msg := Message{
		Type:      msgType,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = jsonData
	}

	msgData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.Send <- msgData:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	c.SendMessage(TypeError, map[string]string{
		"error": errorMsg,
	})
}

func (c *Client) IsSubscribed(sparkID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Sparks[sparkID]
}
