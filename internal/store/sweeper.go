package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultSweepInterval - период фонового выметания
const DefaultSweepInterval = 30 * time.Second

// ExpiryListener получает уведомление о каждом выметенном спарке.
// Реализуется websocket-хабом, чтобы подписчики узнали, что спарк погас.
type ExpiryListener interface {
	SparkExpired(sparkID uuid.UUID)
}

// Sweeper - фоновый процесс выметания истекших спарков. Один цикл,
// одна горутина: свипы не накладываются друг на друга. Запускается и
// останавливается явно, без глобального состояния.
type Sweeper struct {
	dir      *Directory
	interval time.Duration
	listener ExpiryListener

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	now func() time.Time
}

// NewSweeper создает свипер. listener может быть nil.
func NewSweeper(dir *Directory, interval time.Duration, listener ExpiryListener) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		dir:      dir,
		interval: interval,
		listener: listener,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start запускает фоновый цикл выметания.
func (s *Sweeper) Start() {
	go s.run()
}

// Stop останавливает цикл и дожидается его завершения.
// Повторный Stop безопасен.
func (s *Sweeper) Stop() {
	s.cancel()
	<-s.done
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return

		case <-ticker.C:
			expired := s.dir.Sweep(s.now())
			if len(expired) == 0 {
				continue
			}

			slog.Debug("sweep evicted expired sparks", "count", len(expired))

			if s.listener != nil {
				for _, id := range expired {
					s.listener.SparkExpired(id)
				}
			}
		}
	}
}
