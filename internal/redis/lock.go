package redis

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
)

// Locker hands out distributed locks for background jobs so that only one
// instance runs a given job at a time.
type Locker struct {
	client *redislock.Client
}

func NewLocker(client *goredis.Client) *Locker {
	return &Locker{client: redislock.New(client)}
}

// Obtain acquires the named lock for ttl, or returns redislock.ErrNotObtained
// when another instance holds it.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (*redislock.Lock, error) {
	return l.client.Obtain(ctx, key, ttl, nil)
}

// IsNotObtained reports whether err means the lock was simply held elsewhere.
func IsNotObtained(err error) bool {
	return err == redislock.ErrNotObtained
}
