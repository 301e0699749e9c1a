package ratelimit

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Store счетчик запросов со скользящим окном фиксированной длины.
type Store interface {
	// Incr инкрементирует счетчик ключа и возвращает новое значение вместе
	// с оставшимся временем жизни окна. TTL ставится только при первом
	// инкременте, дальше окно не продлевается.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RedisStore хранит счетчики в redis, выживает между перезапусками и
// разделяется между репликами.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	// INCR и EXPIRE NX атомарно, иначе упавший между ними процесс
	// оставит ключ без TTL навсегда.
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, errors.Wrapf(err, "rate limit incr %s", key)
	}
	return incr.Val(), ttl.Val(), nil
}
