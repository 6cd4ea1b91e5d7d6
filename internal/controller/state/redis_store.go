package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/skischool_office/internal/scheduler"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "scheduler:session:"
	maxTxRetries     = 5
)

// RedisStore хранит сессии в Redis, чтобы несколько инстансов офиса видели одну сессию
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore создаёт хранилище; ttl продлевается при каждом изменении
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Update читает снимок, применяет fn и записывает результат в транзакции WATCH/MULTI.
// При конкурентной записи транзакция повторяется.
func (s *RedisStore) Update(ctx context.Context, sessionID string, fn func(sel *scheduler.Selection) error) error {
	key := sessionKey(sessionID)

	txf := func(tx *redis.Tx) error {
		sel, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}

		if err := fn(sel); err != nil {
			return err
		}

		payload, err := json.Marshal(sel.Snapshot())
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			s.logger.Debug("Session update conflict, retrying",
				zap.String("session_id", sessionID),
				zap.Int("attempt", attempt+1))
			continue
		}
		return err
	}

	return fmt.Errorf("update session %s: too many concurrent updates", sessionID)
}

// View читает снимок сессии
func (s *RedisStore) View(ctx context.Context, sessionID string, fn func(sel *scheduler.Selection)) error {
	sel, err := s.load(ctx, s.client, sessionKey(sessionID))
	if err != nil {
		return err
	}
	fn(sel)
	return nil
}

// Delete удаляет сессию
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// getter общий метод *redis.Client и *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) load(ctx context.Context, c getter, key string) (*scheduler.Selection, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return scheduler.NewSelection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var st scheduler.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return scheduler.Restore(st), nil
}
