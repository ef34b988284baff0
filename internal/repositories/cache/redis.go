package cache

import (
	"context"
	"fmt"
	"log"

	"usercenter/internal/config"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisConfig picks the Redis settings out of the application config.
func NewRedisConfig(cfg *config.Config) *RedisConfig {
	return &RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Connect opens a client and verifies it answers a ping.
func Connect(ctx context.Context, cfg *RedisConfig) (*redis.Client, error) {
	client := NewRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Printf("Connected to Redis at %s:%s (DB %d)", cfg.Host, cfg.Port, cfg.DB)
	return client, nil
}
