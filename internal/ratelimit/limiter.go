package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "rate_limiter"

// Limiter ограничитель частоты запросов. Окно фиксированное: первый запрос
// клиента открывает окно, по истечении TTL счетчик исчезает целиком.
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
	logger *logrus.Entry
}

func NewLimiter(store Store, limit int64, window time.Duration, logger *logrus.Logger) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger.WithField("module", "ratelimit"),
	}
}

// Check учитывает запрос клиента к маршруту. Первые limit запросов в окне
// проходят, последующие получают ошибку с Retry-After из остатка TTL.
// Счетчик растет и для отклоненных запросов.
func (l *Limiter) Check(ctx context.Context, client, route string) error {
	key := fmt.Sprintf("%s:%s:%s", keyPrefix, client, route)

	count, ttl, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		// Недоступный redis не должен ронять весь API, запрос пропускается.
		l.logger.WithError(err).Warn("rate limit store unavailable")
		return nil
	}

	if count > l.limit {
		retryAfter := int64(ttl / time.Second)
		if ttl%time.Second > 0 {
			retryAfter++
		}
		if retryAfter < 1 {
			retryAfter = 1
		}
		return apperrs.TooManyRequests(retryAfter)
	}
	return nil
}
