package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
)

var _ ports.Notifier = (*RedisNotifier)(nil)

// RedisNotifier encola las solicitudes en una lista de Redis (LPUSH); el worker consume con BRPOP.
type RedisNotifier struct {
	rdb   *redis.Client
	queue string
}

// NewRedisNotifier conecta con la URL redis://... y verifica con PING.
func NewRedisNotifier(ctx context.Context, url, queue string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisNotifier{rdb: rdb, queue: queue}, nil
}

// Notify encola el sobre JSON.
func (r *RedisNotifier) Notify(ctx context.Context, n ports.Notification) error {
	encoded, err := encode(n)
	if err != nil {
		return err
	}
	if err := r.rdb.LPush(ctx, r.queue, encoded).Err(); err != nil {
		return fmt.Errorf("redis lpush %s: %w", r.queue, err)
	}
	return nil
}

// Close cierra el cliente.
func (r *RedisNotifier) Close() error {
	return r.rdb.Close()
}
