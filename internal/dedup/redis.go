// Package dedup suppresses webhook redeliveries. Reconciliation is already
// idempotent, so the suppressor is a fast path that saves store round trips;
// losing it only costs an extra reconcile per redelivery.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store answers whether a delivery was already fully processed and records
// the ones that were. Check and mark are separate on purpose: a delivery is
// marked only after its terminal write succeeds, so a failed event stays
// eligible for the platform's redelivery.
type Store interface {
	Seen(ctx context.Context, deliveryKey string) (bool, error)
	Mark(ctx context.Context, deliveryKey string) error
	Close() error
}

// DeliveryKey derives a stable key for one delivery from the raw request
// body. The platform does not send an explicit delivery ID, so byte-equal
// payloads are treated as the same delivery.
func DeliveryKey(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and returns a delivery-key store whose
// entries expire after ttl.
func NewRedisStore(redisURL string, ttl time.Duration) (Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &redisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Seen reports whether deliveryKey was recorded by a prior Mark. It never
// writes, so checking a delivery does not commit to processing it.
func (s *redisStore) Seen(ctx context.Context, deliveryKey string) (bool, error) {
	n, err := s.client.Exists(ctx, "dedup:"+deliveryKey).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check failed: %w", err)
	}
	return n > 0, nil
}

// Mark records deliveryKey as fully processed, expiring after the store TTL.
func (s *redisStore) Mark(ctx context.Context, deliveryKey string) error {
	if err := s.client.Set(ctx, "dedup:"+deliveryKey, 1, s.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark failed: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// NoOpStore never suppresses anything (for testing or disabled dedup).
type NoOpStore struct{}

func (n *NoOpStore) Seen(ctx context.Context, deliveryKey string) (bool, error) {
	return false, nil
}

func (n *NoOpStore) Mark(ctx context.Context, deliveryKey string) error {
	return nil
}

func (n *NoOpStore) Close() error {
	return nil
}
