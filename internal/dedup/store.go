// Package dedup implements the seen-marker store on Redis.
//
// Keys are job:{sourceID}:{postingID}:user:{userID} with a bounded TTL, so
// a posting resurfaces naturally once the marker expires. The store is
// deliberately optimistic: a failed lookup reads as "not seen" and a failed
// mark is not retried. In this domain a duplicate alert beats a silently
// dropped opportunity.
package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

// RedisSeenStore implements model.SeenStore against a Redis instance.
type RedisSeenStore struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisSeenStore constructs a store whose markers expire after ttl.
func NewRedisSeenStore(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisSeenStore {
	return &RedisSeenStore{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "dedup").Logger(),
	}
}

// Key builds the composite marker key for a (source, posting, user) triple.
func Key(sourceID, postingID, userID string) string {
	return fmt.Sprintf("job:%s:%s:user:%s", sourceID, postingID, userID)
}

// Seen reports whether the triple was already surfaced to this user. On a
// store failure it returns false together with a DedupStoreError; callers
// proceed as if the posting were new.
func (s *RedisSeenStore) Seen(ctx context.Context, sourceID, postingID, userID string) (bool, error) {
	key := Key(sourceID, postingID, userID)

	err := s.rdb.Get(ctx, key).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, &model.DedupStoreError{Op: "exists", Key: key, Err: err}
	}
}

// MarkSeen writes the marker with the configured TTL. Failures are logged
// and returned but never retried; the worst case is one duplicate alert on
// a later run.
func (s *RedisSeenStore) MarkSeen(ctx context.Context, sourceID, postingID, userID string) error {
	key := Key(sourceID, postingID, userID)

	if err := s.rdb.Set(ctx, key, "1", s.ttl).Err(); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("mark seen failed")
		return &model.DedupStoreError{Op: "mark", Key: key, Err: err}
	}
	return nil
}
