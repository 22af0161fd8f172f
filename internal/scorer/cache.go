package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

// RedisAnalysisCache stores Gemini analyses keyed by (source, posting),
// shared across users. While an entry is live the same posting never
// re-invokes the model, whatever its score was.
type RedisAnalysisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisAnalysisCache constructs a cache whose entries expire after ttl.
func NewRedisAnalysisCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisAnalysisCache {
	return &RedisAnalysisCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "analysis-cache").Logger(),
	}
}

func cacheKey(sourceID, postingID string) string {
	return fmt.Sprintf("analysis:%s:%s", sourceID, postingID)
}

// Get returns the cached analysis and whether one was present. Store
// failures and corrupt entries read as a miss.
func (c *RedisAnalysisCache) Get(ctx context.Context, sourceID, postingID string) (*model.Analysis, bool, error) {
	key := cacheKey(sourceID, postingID)

	raw, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.log.Warn().Str("key", key).Err(err).Msg("cache lookup failed")
		return nil, false, err
	}

	var a model.Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		c.log.Warn().Str("key", key).Err(err).Msg("corrupt cache entry, treating as miss")
		return nil, false, nil
	}

	return &a, true, nil
}

// Put writes the analysis with the configured TTL.
func (c *RedisAnalysisCache) Put(ctx context.Context, sourceID, postingID string, a *model.Analysis) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	key := cacheKey(sourceID, postingID)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
