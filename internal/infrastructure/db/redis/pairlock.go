package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 5 * time.Second
	lockRetryWait = 25 * time.Millisecond
)

// PairLock serializes search-or-create sequences on an unordered id pair
// across processes using a SET NX key. The key is built from the sorted
// pair, so Acquire(a, b) and Acquire(b, a) contend on the same lock.
type PairLock struct {
	client *redis.Client
}

// NewPairLock creates a PairLock wrapping the given Redis client.
func NewPairLock(client *redis.Client) *PairLock {
	return &PairLock{client: client}
}

// Acquire blocks until the lock for the pair is held or ctx expires. The
// returned release func deletes the lock key and must always be called.
func (l *PairLock) Acquire(ctx context.Context, a, b string) (func(), error) {
	key := l.key(a, b)
	for {
		ok, err := l.client.SetNX(ctx, key, "1", lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("pair lock %s: %w", key, err)
		}
		if ok {
			return func() {
				// Best effort; the TTL reclaims the lock if the delete fails.
				_ = l.client.Del(context.Background(), key).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryWait):
		}
	}
}

func (l *PairLock) key(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("chatlock:%s:%s", a, b)
}
