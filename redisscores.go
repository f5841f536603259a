package palace

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const scoreKeyPrefix = "score:"

// RedisScoreStore persists one hash per player:
//
//	score:<name> -> {wins: <count>, updated: <RFC 3339>}
type RedisScoreStore struct {
	client *redis.Client
}

// NewRedisScoreStore constructs a RedisScoreStore around an existing
// client
func NewRedisScoreStore(client *redis.Client) *RedisScoreStore {
	return &RedisScoreStore{client: client}
}

// Load reads every stored score record
func (s *RedisScoreStore) Load(ctx context.Context) (map[string]int, error) {
	scores := map[string]int{}

	iter := s.client.Scan(ctx, 0, scoreKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		wins, err := s.client.HGet(ctx, key, "wins").Int()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		scores[strings.TrimPrefix(key, scoreKeyPrefix)] = wins
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning scores: %w", err)
	}

	return scores, nil
}

// Save upserts a player's score record
func (s *RedisScoreStore) Save(ctx context.Context, name string, wins int) error {
	err := s.client.HSet(ctx, scoreKeyPrefix+name,
		"wins", wins,
		"updated", time.Now().UTC().Format(time.RFC3339),
	).Err()
	if err != nil {
		return fmt.Errorf("upserting score for %s: %w", name, err)
	}
	return nil
}
