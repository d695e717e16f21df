// Package slots кэширует рассчитанные слоты врача на дату в Redis
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

const keyPrefix = "slots"

// Entry закэшированный результат расчета слотов
type Entry struct {
	Slots   []domain.AvailableSlot `json:"slots"`
	Message string                 `json:"message,omitempty"`
	Warning string                 `json:"warning,omitempty"`
}

// Cache кэш слотов. С nil клиентом всегда промахивается и ничего не хранит
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш слотов
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key ключ слотов врача на дату
func Key(doctorID int64, date time.Time, emergency bool) string {
	mode := "regular"
	if emergency {
		mode = "emergency"
	}
	return fmt.Sprintf("%s:%d:%s:%s", keyPrefix, doctorID, date.Format(domain.DateFormat), mode)
}

// Get возвращает закэшированные слоты или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, doctorID int64, date time.Time, emergency bool) (*Entry, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}

	key := Key(doctorID, date, emergency)
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: unmarshal %s: %v", ErrCache, key, err)
	}

	return &entry, nil
}

// Set сохраняет слоты с TTL кэша
func (c *Cache) Set(ctx context.Context, doctorID int64, date time.Time, emergency bool, entry *Entry) error {
	if c.client == nil {
		return nil
	}

	key := Key(doctorID, date, emergency)
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrCache, key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}

	return nil
}

// Invalidate удаляет слоты врача на дату в обоих режимах
func (c *Cache) Invalidate(ctx context.Context, doctorID int64, date time.Time) error {
	if c.client == nil {
		return nil
	}

	keys := []string{Key(doctorID, date, false), Key(doctorID, date, true)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del %v: %v", ErrCache, keys, err)
	}

	return nil
}

// InvalidateDoctor удаляет все закэшированные слоты врача
func (c *Cache) InvalidateDoctor(ctx context.Context, doctorID int64) error {
	if c.client == nil {
		return nil
	}

	pattern := fmt.Sprintf("%s:%d:*", keyPrefix, doctorID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("%w: del %s: %v", ErrCache, iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: scan %s: %v", ErrCache, pattern, err)
	}

	return nil
}

// Ping проверяет соединение с Redis
func (c *Cache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close закрывает соединение с Redis
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
