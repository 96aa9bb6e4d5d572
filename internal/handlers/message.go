package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/sparks/internal/handlers/dto"
	"github.com/thereayou/sparks/internal/store"
	"github.com/thereayou/sparks/internal/websocket"
)

type MessageHandler struct {
	log *store.MessageLog
	hub *websocket.Hub
}

func NewMessageHandler(log *store.MessageLog, hub *websocket.Hub) *MessageHandler {
	return &MessageHandler{log: log, hub: hub}
}

// GetMessages возвращает ленту спарка в порядке добавления.
// Для неизвестного или погасшего спарка - пустая лента, не 404.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	sparkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spark id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": h.log.Messages(sparkID)})
}

// PostMessage добавляет сообщение в ленту спарка
func (h *MessageHandler) PostMessage(c *gin.Context) {
	sparkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spark id"})
		return
	}

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.log.Post(sparkID, req.Handle, req.Anonymous, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAnonymousNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrSparkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post message"})
		}
		return
	}

	// Пустой текст - тихий no-op
	if msg == nil {
		c.Status(http.StatusNoContent)
		return
	}

	slog.Debug("message posted", "spark_id", sparkID, "message_id", msg.ID)

	// Живые подписчики получают сообщение сразу
	h.hub.NotifyMessage(sparkID, msg)

	c.JSON(http.StatusCreated, msg)
}
