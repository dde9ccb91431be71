package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only if this instance still holds it,
// so a slow cycle cannot release a lease that already expired and was
// re-acquired elsewhere.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lease is a redis-backed mutual-exclusion token for the dispatch cycle.
// Two overlapping cycle invocations could otherwise select the same due
// message and send it twice.
type Lease struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

func NewLease(client *redis.Client, key string, ttl time.Duration) *Lease {
	return &Lease{
		client: client,
		key:    key,
		ttl:    ttl,
		token:  uuid.NewString(),
	}
}

// Acquire takes the lease if nobody holds it. The TTL bounds how long a
// crashed holder can block everyone else.
func (l *Lease) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire dispatch lease: %w", err)
	}
	return ok, nil
}

func (l *Lease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release dispatch lease: %w", err)
	}
	return nil
}
