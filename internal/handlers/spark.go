package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/sparks/internal/config"
	"github.com/thereayou/sparks/internal/handlers/dto"
	"github.com/thereayou/sparks/internal/models"
	"github.com/thereayou/sparks/internal/store"
	"github.com/thereayou/sparks/internal/websocket"
)

type SparkHandler struct {
	dir *store.Directory
	hub *websocket.Hub
	cfg *config.Config
}

func NewSparkHandler(dir *store.Directory, hub *websocket.Hub, cfg *config.Config) *SparkHandler {
	return &SparkHandler{dir: dir, hub: hub, cfg: cfg}
}

// CreateSpark создает новый спарк
func (h *SparkHandler) CreateSpark(c *gin.Context) {
	var req dto.CreateSparkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Клиент без геолокации падает на дефолтную точку
	lat, lng := h.cfg.FallbackLat, h.cfg.FallbackLng
	if req.Lat != nil && req.Lng != nil {
		lat, lng = *req.Lat, *req.Lng
	}

	spark := h.dir.Create(store.CreateSpec{
		Name:             req.Name,
		Lat:              lat,
		Lng:              lng,
		AnonymousAllowed: req.AnonymousAllowed,
		Icebreaker:       req.Icebreaker,
	})

	slog.Info("spark created", "spark_id", spark.ID, "name", spark.Name)

	c.JSON(http.StatusCreated, h.formatSparkResponse(spark))
}

// ListNearby возвращает живые спарки рядом с точкой
func (h *SparkHandler) ListNearby(c *gin.Context) {
	lat := parseFloatQuery(c, "lat", h.cfg.FallbackLat)
	lng := parseFloatQuery(c, "lng", h.cfg.FallbackLng)

	radius := parseFloatQuery(c, "radius_km", store.DefaultRadiusKm)
	if radius < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km must be non-negative"})
		return
	}

	sparks := h.dir.ListNearby(lat, lng, radius)

	response := make([]gin.H, len(sparks))
	for i := range sparks {
		response[i] = h.formatSparkResponse(&sparks[i])
	}

	c.JSON(http.StatusOK, gin.H{"sparks": response})
}

// GetSpark возвращает один спарк по id
func (h *SparkHandler) GetSpark(c *gin.Context) {
	sparkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spark id"})
		return
	}

	spark, ok := h.dir.Get(sparkID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "spark not found"})
		return
	}

	c.JSON(http.StatusOK, h.formatSparkResponse(spark))
}

// formatSparkResponse форматирует ответ для спарка
func (h *SparkHandler) formatSparkResponse(spark *models.Spark) gin.H {
	return gin.H{
		"id":                spark.ID,
		"name":              spark.Name,
		"lat":               spark.Lat,
		"lng":               spark.Lng,
		"anonymous_allowed": spark.AnonymousAllowed,
		"icebreaker":        spark.Icebreaker,
		"created_at":        spark.CreatedAt,
		"expires_at":        spark.ExpiresAt,
		"online_count":      h.hub.SubscriberCount(spark.ID),
	}
}

func parseFloatQuery(c *gin.Context, key string, fallback float64) float64 {
	if raw := c.Query(key); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
