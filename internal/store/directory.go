package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/sparks/internal/geo"
	"github.com/thereayou/sparks/internal/metrics"
	"github.com/thereayou/sparks/internal/models"
)

const (
	// SparkTTL - время жизни спарка. Фиксировано при создании,
	// не продлевается.
	SparkTTL = 24 * time.Hour

	// DefaultSparkName - имя-заглушка, если создатель не придумал свое
	DefaultSparkName = "Untitled Spark"

	// DefaultRadiusKm - радиус поиска по умолчанию
	DefaultRadiusKm = 50.0
)

// CreateSpec - параметры создания спарка.
type CreateSpec struct {
	Name             string
	Lat              float64
	Lng              float64
	AnonymousAllowed bool
	Icebreaker       string
}

// Directory - реестр живых спарков и поиск по близости.
// Истекшие спарки выметаются свипером и перед каждым ListNearby,
// каскадно вместе со своими лентами в MessageLog.
type Directory struct {
	sparks map[uuid.UUID]*models.Spark
	log    *MessageLog
	mu     sync.RWMutex

	now func() time.Time
}

func NewDirectory(log *MessageLog) *Directory {
	return &Directory{
		sparks: make(map[uuid.UUID]*models.Spark),
		log:    log,
		now:    time.Now,
	}
}

// Create регистрирует новый спарк и пустую ленту для него.
// Валидации нет: координаты обязан подставить вызывающий
// (реальные или дефолтную точку).
func (d *Directory) Create(spec CreateSpec) *models.Spark {
	name := spec.Name
	if name == "" {
		name = DefaultSparkName
	}

	now := d.now()
	spark := &models.Spark{
		ID:               uuid.New(),
		Name:             name,
		Lat:              spec.Lat,
		Lng:              spec.Lng,
		AnonymousAllowed: spec.AnonymousAllowed,
		Icebreaker:       spec.Icebreaker,
		CreatedAt:        now,
		ExpiresAt:        now.Add(SparkTTL),
	}

	d.mu.Lock()
	d.sparks[spark.ID] = spark
	d.log.Register(spark.ID, spark.AnonymousAllowed)
	d.mu.Unlock()

	metrics.SparksCreated.Inc()

	out := *spark
	return &out
}

// Get возвращает спарк по id, если он еще жив.
func (d *Directory) Get(id uuid.UUID) (*models.Spark, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	spark, ok := d.sparks[id]
	if !ok || !spark.Live(d.now()) {
		return nil, false
	}

	out := *spark
	return &out, true
}

// ListNearby возвращает живые спарки в радиусе radiusKm от точки,
// отсортированные по возрастанию ExpiresAt (скоро истекающие первыми).
// Перед фильтрацией всегда выметает истекшие, чтобы читатель не увидел
// мертвый спарк, даже если таймер свипера еще не сработал.
func (d *Directory) ListNearby(lat, lng, radiusKm float64) []models.Spark {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sweepLocked(d.now())

	out := make([]models.Spark, 0)
	for _, spark := range d.sparks {
		if geo.WithinRadius(lat, lng, spark.Lat, spark.Lng, radiusKm) {
			out = append(out, *spark)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpiresAt.Before(out[j].ExpiresAt)
	})

	return out
}

// Sweep выметает все спарки с ExpiresAt <= now вместе с их лентами.
// Возвращает id выметенных спарков. Идемпотентен.
func (d *Directory) Sweep(now time.Time) []uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.sweepLocked(now)
}

// sweepLocked вызывается только под d.mu. Спарк удаляется из реестра
// раньше своей ленты, и оба - под одним замком: наблюдатель никогда не
// увидит спарк в списке без его ленты.
func (d *Directory) sweepLocked(now time.Time) []uuid.UUID {
	var expired []uuid.UUID
	for id, spark := range d.sparks {
		if !spark.Live(now) {
			expired = append(expired, id)
			delete(d.sparks, id)
		}
	}

	if len(expired) > 0 {
		d.log.Evict(expired...)
		metrics.SparksExpired.Add(float64(len(expired)))
	}

	return expired
}
