package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/form-builder/pkg/config"
)

// Redis backs Storage with a Redis instance so a restarted process can still
// restore the signed-in session.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects and pings the configured instance.
func NewRedis(cfg config.RedisConfig) (*Redis, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(key string) (string, bool) {
	ctx, cancel := opContext()
	defer cancel()
	v, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (r *Redis) Set(key, value string) {
	ctx, cancel := opContext()
	defer cancel()
	_ = r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *Redis) Remove(key string) {
	ctx, cancel := opContext()
	defer cancel()
	_ = r.client.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
