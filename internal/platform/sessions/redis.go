package sessions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "session:"}
}

func (s *RedisStore) Save(ctx context.Context, tokenHash string, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, s.prefix+tokenHash, payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, tokenHash string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+tokenHash).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	// redis TTL is the primary expiry; the timestamp check covers clock
	// skew between writers.
	if !sess.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, tokenHash string) error {
	return s.rdb.Del(ctx, s.prefix+tokenHash).Err()
}
