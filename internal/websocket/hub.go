package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageType определяет типы кадров
type MessageType string

const (
	// Системные типы
	TypePing  MessageType = "ping"
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"

	// Лента
	TypeMessage MessageType = "message"

	// Подписки на спарки
	TypeSparkJoin    MessageType = "spark_join"
	TypeSparkLeave   MessageType = "spark_leave"
	TypeSparkExpired MessageType = "spark_expired"
)

type Message struct {
	Type      MessageType     `json:"type"`
	SparkID   *uuid.UUID      `json:"spark_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub раздает события лент подписчикам. Подписка на спарк - явная
// регистрация наблюдателя (spark_join); порядок доставки совпадает с
// порядком добавления, медленный клиент может пропустить кадр.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Подписчики по спаркам
	sparks map[uuid.UUID]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		sparks:     make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.sparks = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	slog.Debug("ws client registered", "client_id", client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		for sparkID := range client.Sparks {
			h.removeFromSparkUnsafe(client, sparkID)
		}

		delete(h.clients, client.ID)
		close(client.Send)

		slog.Debug("ws client unregistered", "client_id", client.ID)
	}
}

// JoinSpark подписывает клиента на ленту спарка
func (h *Hub) JoinSpark(client *Client, sparkID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sparks[sparkID]; !ok {
		h.sparks[sparkID] = make(map[uuid.UUID]*Client)
	}

	h.sparks[sparkID][client.ID] = client
	client.mu.Lock()
	client.Sparks[sparkID] = true
	client.mu.Unlock()
}

// LeaveSpark отписывает клиента от ленты спарка
func (h *Hub) LeaveSpark(client *Client, sparkID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromSparkUnsafe(client, sparkID)
}

func (h *Hub) removeFromSparkUnsafe(client *Client, sparkID uuid.UUID) {
	if spark, ok := h.sparks[sparkID]; ok {
		if _, ok := spark[client.ID]; ok {
			delete(spark, client.ID)
			client.mu.Lock()
			delete(client.Sparks, sparkID)
			client.mu.Unlock()

			if len(spark) == 0 {
				delete(h.sparks, sparkID)
			}
		}
	}
}

// SendToSpark рассылает кадр всем подписчикам спарка
func (h *Hub) SendToSpark(sparkID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if spark, ok := h.sparks[sparkID]; ok {
		for _, client := range spark {
			select {
			case client.Send <- message:
			default:
				slog.Warn("ws client send channel full", "client_id", client.ID)
			}
		}
	}
}

// NotifyMessage рассылает новое сообщение ленты подписчикам спарка
func (h *Hub) NotifyMessage(sparkID uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	msg := Message{
		Type:      TypeMessage,
		SparkID:   &sparkID,
		Data:      data,
		Timestamp: time.Now(),
	}

	if frame, err := json.Marshal(msg); err == nil {
		h.SendToSpark(sparkID, frame)
	}
}

// SparkExpired реализует store.ExpiryListener: подписчики узнают, что
// спарк погас, после чего подписка снимается.
func (h *Hub) SparkExpired(sparkID uuid.UUID) {
	msg := Message{
		Type:      TypeSparkExpired,
		SparkID:   &sparkID,
		Timestamp: time.Now(),
	}

	if frame, err := json.Marshal(msg); err == nil {
		h.SendToSpark(sparkID, frame)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if spark, ok := h.sparks[sparkID]; ok {
		for _, client := range spark {
			client.mu.Lock()
			delete(client.Sparks, sparkID)
			client.mu.Unlock()
		}
		delete(h.sparks, sparkID)
	}
}

// SubscriberCount возвращает число подписчиков спарка
func (h *Hub) SubscriberCount(sparkID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sparks[sparkID])
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
