package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/thereayou/sparks/internal/config"
	"github.com/thereayou/sparks/internal/handlers"
	"github.com/thereayou/sparks/internal/middleware"
	"github.com/thereayou/sparks/internal/store"
	"github.com/thereayou/sparks/internal/websocket"
	"github.com/thereayou/sparks/pkg/logging"
)

type Server struct {
	Router    *gin.Engine
	Config    *config.Config
	Directory *store.Directory
	Messages  *store.MessageLog
	Hub       *websocket.Hub
	Sweeper   *store.Sweeper
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			slog.Info(".env not found, using environment variables")
		}
	}

	logging.Setup()

	cfg := config.Load()

	messages := store.NewMessageLog()
	directory := store.NewDirectory(messages)
	hub := websocket.NewHub()
	sweeper := store.NewSweeper(directory, cfg.SweepInterval, hub)

	sparkH := handlers.NewSparkHandler(directory, hub, cfg)
	messageH := handlers.NewMessageHandler(messages, hub)
	wsH := handlers.NewWebSocketHandler(hub)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())
	APIEndpoints(router, sparkH, messageH, wsH)

	return &Server{
		Router:    router,
		Config:    cfg,
		Directory: directory,
		Messages:  messages,
		Hub:       hub,
		Sweeper:   sweeper,
	}
}

// Run запускает сервер и фоновые процессы. Блокируется до SIGINT/SIGTERM,
// после чего останавливает свипер и hub, чтобы не потерять фоновый таймер.
func (s *Server) Run() {
	go s.Hub.Run()
	s.Sweeper.Start()

	srv := &http.Server{
		Addr:    ":" + s.Config.Port,
		Handler: s.Router,
	}

	go func() {
		slog.Info("server starting", "port", s.Config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server run error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	s.Sweeper.Stop()
	s.Hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}
