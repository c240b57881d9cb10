package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupStore implements ports.DedupStore using Redis SET NX. It backs the
// HTTP idempotency-key middleware: the split-payment engine itself never
// dedupes, so at-most-once submission lives entirely here.
type DedupStore struct {
	client      *goredis.Client
	claimPrefix string
	resPrefix   string
}

// NewDedupStore creates a new Redis-backed dedup store.
func NewDedupStore(client *goredis.Client) *DedupStore {
	return &DedupStore{
		client:      client,
		claimPrefix: "idem:claim:",
		resPrefix:   "idem:result:",
	}
}

// Claim atomically claims an idempotency key. Returns true if the key was
// free, false if another request already holds it.
func (s *DedupStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.claimPrefix+key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			// Key already exists — a request with this key is in flight or done
			return false, nil
		}
		return false, fmt.Errorf("redis dedup claim: %w", err)
	}
	return result == "OK", nil
}

// SaveResult stores the response payload for a claimed key so replays can be
// answered without re-running the payment.
func (s *DedupStore) SaveResult(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.resPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis dedup save: %w", err)
	}
	return nil
}

// GetResult returns the stored payload for a key, or nil if the original
// request has not finished yet.
func (s *DedupStore) GetResult(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.resPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis dedup get: %w", err)
	}
	return payload, nil
}
