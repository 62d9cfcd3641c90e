package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr         string
	JWTSecret    string
	AllowOrigins string

	// empty RedisAddr means the in-memory store is used
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// badge-count polling period for the notification service
	PollInterval time.Duration
}

func Load() Config {
	cfg := Config{
		Addr:          getenv("FURENT_ADDR", ":8080"),
		JWTSecret:     getenv("JWT_SECRET", "furent-dev-secret"),
		AllowOrigins:  getenv("FURENT_ALLOW_ORIGINS", "*"),
		RedisAddr:     os.Getenv("FURENT_REDIS_ADDR"),
		RedisPassword: os.Getenv("FURENT_REDIS_PASSWORD"),
		PollInterval:  30 * time.Second,
	}

	if v := os.Getenv("FURENT_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	if v := os.Getenv("FURENT_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.PollInterval = d
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
