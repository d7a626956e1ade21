package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookit/internal/domain/experiences"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	allExperiencesKey = "experiences:all"
	experienceKey     = "experience:"
	DefaultTTL        = time.Minute
)

// Experiences is a read-through cache in front of an experiences.Store.
// Cache failures are logged and fall back to the store.
type Experiences struct {
	next   experiences.Store
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewExperiences(next experiences.Store, rdb *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *Experiences {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Experiences{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *Experiences) List(ctx context.Context) ([]experiences.Experience, error) {
	var list []experiences.Experience
	if c.get(ctx, allExperiencesKey, &list) {
		return list, nil
	}

	list, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, allExperiencesKey, list)
	return list, nil
}

func (c *Experiences) GetByID(ctx context.Context, id string) (*experiences.Experience, error) {
	var e experiences.Experience
	if c.get(ctx, experienceKey+id, &e) {
		return &e, nil
	}

	found, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, experienceKey+id, found)
	return found, nil
}

// Invalidate drops the cached catalog and the given experience. It is called
// after a booking changes slot availability.
func (c *Experiences) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, allExperiencesKey, experienceKey+id).Err()
}

func (c *Experiences) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warnw("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Experiences) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warnw("cache write failed", "key", key, "error", err)
	}
}
