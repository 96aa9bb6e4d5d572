package config

import (
	"os"
	"strconv"
	"time"
)

// Дефолтная опорная точка, если клиент не смог получить геолокацию.
// Quezon City - центр пилотного региона.
const (
	DefaultLat = 14.676
	DefaultLng = 121.0437
)

type Config struct {
	Port          string
	SweepInterval time.Duration

	// Координаты, подставляемые при отказе геолокации на клиенте
	FallbackLat float64
	FallbackLng float64
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		SweepInterval: getDuration("SWEEP_INTERVAL", 30*time.Second),
		FallbackLat:   getFloat("DEFAULT_LAT", DefaultLat),
		FallbackLng:   getFloat("DEFAULT_LNG", DefaultLng),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
