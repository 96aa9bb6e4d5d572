package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/sparks/internal/metrics"
	"github.com/thereayou/sparks/internal/models"
)

const (
	// AnonymousLabel - подпись автора для анонимных сообщений
	AnonymousLabel = "Anonymous"

	// GuestLabel - подпись, если ник не указан
	GuestLabel = "Guest"
)

// sparkLog - лента одного спарка. Политика анонимности снимается
// один раз при регистрации: у спарка она неизменяемая.
type sparkLog struct {
	anonymousAllowed bool
	messages         []models.Message
}

// MessageLog хранит ленты сообщений по спаркам. Запись только в конец,
// без редактирования и удаления отдельных сообщений; лента целиком
// выселяется вместе со своим спарком.
type MessageLog struct {
	logs map[uuid.UUID]*sparkLog
	mu   sync.RWMutex

	now func() time.Time
}

func NewMessageLog() *MessageLog {
	return &MessageLog{
		logs: make(map[uuid.UUID]*sparkLog),
		now:  time.Now,
	}
}

// Register заводит пустую ленту для нового спарка.
// Вызывается только из Directory.Create.
func (l *MessageLog) Register(sparkID uuid.UUID, anonymousAllowed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.logs[sparkID]; !ok {
		l.logs[sparkID] = &sparkLog{anonymousAllowed: anonymousAllowed}
	}
}

// Post добавляет сообщение в ленту спарка.
//
// Пустой после trim текст - тихий no-op: возвращается (nil, nil) и
// состояние не меняется. Анонимный пост в спарк с запретом анонимности
// отклоняется с ErrAnonymousNotAllowed. Неизвестный id - ErrSparkNotFound:
// лента есть только у спарков, которые регистрировала Directory.
func (l *MessageLog) Post(sparkID uuid.UUID, handle string, anonymous bool, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.MessagesRejected.WithLabelValues("empty").Inc()
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	log, ok := l.logs[sparkID]
	if !ok {
		metrics.MessagesRejected.WithLabelValues("not_found").Inc()
		return nil, ErrSparkNotFound
	}

	if anonymous && !log.anonymousAllowed {
		metrics.MessagesRejected.WithLabelValues("policy").Inc()
		return nil, ErrAnonymousNotAllowed
	}

	displayName := resolveDisplayName(handle, anonymous)

	msg := models.Message{
		ID:          uuid.New(),
		SparkID:     sparkID,
		Text:        text,
		DisplayName: displayName,
		Anonymous:   anonymous,
		CreatedAt:   l.now(),
	}

	log.messages = append(log.messages, msg)
	metrics.MessagesPosted.Inc()

	return &msg, nil
}

// Messages возвращает копию ленты в порядке добавления.
// Для неизвестного id - пустой срез, без ошибки.
func (l *MessageLog) Messages(sparkID uuid.UUID) []models.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	log, ok := l.logs[sparkID]
	if !ok {
		return []models.Message{}
	}

	out := make([]models.Message, len(log.messages))
	copy(out, log.messages)
	return out
}

// Evict выселяет ленты целиком. Вызывается только каскадом из
// Directory при истечении спарка. Идемпотентно.
func (l *MessageLog) Evict(sparkIDs ...uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range sparkIDs {
		delete(l.logs, id)
	}
}

func resolveDisplayName(handle string, anonymous bool) string {
	if anonymous {
		return AnonymousLabel
	}
	if handle = strings.TrimSpace(handle); handle != "" {
		return handle
	}
	return GuestLabel
}
