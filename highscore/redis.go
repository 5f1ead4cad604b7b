package highscore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the sorted set used when no key is configured.
const DefaultKey = "blockfall:highscores"

// RedisStore keeps entries in a Redis sorted set scored by Entry.Score. Each
// member is the JSON encoding of the entry.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wraps an existing client. An empty key selects DefaultKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

// Dial connects to addr and checks the connection with a PING.
func Dial(ctx context.Context, addr, password, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return NewRedisStore(client, key), nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Submit(ctx context.Context, e Entry) (bool, error) {
	prev, ok, err := s.Best(ctx)
	if err != nil {
		return false, err
	}

	member, err := json.Marshal(e)
	if err != nil {
		return false, fmt.Errorf("encode entry: %w", err)
	}
	if err := s.client.ZAdd(ctx, s.key, redis.Z{Score: float64(e.Score), Member: string(member)}).Err(); err != nil {
		return false, fmt.Errorf("zadd %s: %w", s.key, err)
	}
	return !ok || e.Score > prev.Score, nil
}

func (s *RedisStore) Best(ctx context.Context) (Entry, bool, error) {
	entries, err := s.Top(ctx, 1)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}

func (s *RedisStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := s.client.ZRevRangeWithScores(ctx, s.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange %s: %w", s.key, err)
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(member), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
