package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix     = "frontdesk:idempotency:"
	idempotencyPending    = "pending"
	defaultIdempotencyTTL = time.Hour
)

// ErrRequestInFlight is returned when another request holding the same key has not finished.
var ErrRequestInFlight = errors.New("a request with this idempotency key is still in progress")

// IdempotencyStore remembers the response of ticket creations by Idempotency-Key.
// A key is claimed with SETNX, then overwritten with the final response body.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Begin claims key for the caller. It returns the stored response when the key
// already completed, nil when the caller now owns the key, and ErrRequestInFlight
// when another caller owns it.
func (s *IdempotencyStore) Begin(ctx context.Context, key string) ([]byte, error) {
	k := idempotencyPrefix + key

	claimed, err := s.client.SetNX(ctx, k, idempotencyPending, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	if claimed {
		return nil, nil
	}

	val, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET; try once more.
			ok, err := s.client.SetNX(ctx, k, idempotencyPending, s.ttl).Result()
			if err != nil {
				return nil, fmt.Errorf("failed to claim idempotency key: %w", err)
			}
			if ok {
				return nil, nil
			}
			return nil, ErrRequestInFlight
		}
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if string(val) == idempotencyPending {
		return nil, ErrRequestInFlight
	}
	return val, nil
}

// Complete stores the response for key, replacing the pending marker.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, response []byte) error {
	if err := s.client.Set(ctx, idempotencyPrefix+key, response, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotent response: %w", err)
	}
	return nil
}

// Release drops a claim so the client may retry after a failed request.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyPrefix+key).Err()
}
