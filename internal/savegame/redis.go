package savegame

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-rogue/internal/world"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is used when no key is configured.
const DefaultRedisKey = "rogue:save"

// RedisStore keeps the compressed session under a single redis key.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Save(ctx context.Context, s *world.Session) error {
	b, err := compress(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("storing %s: %w", r.key, err)
	}
	return nil
}

// Load returns ErrNoSave when the key is absent.
func (r *RedisStore) Load(ctx context.Context) (*world.Session, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", r.key, ErrNoSave)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.key, err)
	}
	return decompress(b, r.key)
}

func (r *RedisStore) String() string {
	return "redis:" + r.key
}
