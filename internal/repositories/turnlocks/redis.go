package turnlocks

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

const keyPrefix = "turnlock:"

// releaseScript deletes the key only while it still holds our token
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisConfig holds the dependencies of a Redis locker
type RedisConfig struct {
	Client redis.UniversalClient
	// TTL bounds how long a crashed holder can keep the lock
	TTL time.Duration
	IDs uuid.Generator
}

type redisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	ids    uuid.Generator
}

// NewRedis creates a locker shared by every process using the same Redis
func NewRedis(cfg *RedisConfig) Locker {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Client == nil {
		panic("redis client is required")
	}
	if cfg.TTL <= 0 {
		panic("lock ttl must be positive")
	}
	ids := cfg.IDs
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator("lock")
	}
	return &redisLocker{
		client: cfg.Client,
		ttl:    cfg.TTL,
		ids:    ids,
	}
}

func lockKey(key string) string {
	return fmt.Sprintf("%s%s", keyPrefix, key)
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", dnderr.InvalidArgument("lock key is required")
	}

	token := l.ids.New()
	ok, err := l.client.SetNX(ctx, lockKey(key), token, l.ttl).Result()
	if err != nil {
		return "", dnderr.Wrapf(err, "failed to acquire turn lock %s", key)
	}
	if !ok {
		return "", dnderr.Newf(dnderr.CodeBusy, "turn resolution already in flight for %s", key)
	}
	return token, nil
}

func (l *redisLocker) Release(ctx context.Context, key, token string) error {
	if err := l.client.Eval(ctx, releaseScript, []string{lockKey(key)}, token).Err(); err != nil {
		return dnderr.Wrapf(err, "failed to release turn lock %s", key)
	}
	return nil
}
