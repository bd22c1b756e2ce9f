// internal/store/rediscache/recommendations.go
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"wedding-matching-workers/internal/matching"
)

const keyPrefix = "recommendations"

// RecommendationCache stores one JSON array per (plan, category) key with a TTL.
// Replacement runs DEL and SET in one MULTI block.
type RecommendationCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRecommendationCache(client redis.Cmdable, ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RecommendationCache{client: client, ttl: ttl}
}

func cacheKey(weddingPlanID string, category matching.Category) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, weddingPlanID, category)
}

func (c *RecommendationCache) Put(ctx context.Context, weddingPlanID string, category matching.Category, results []matching.VendorMatchResult) error {
	if results == nil {
		results = []matching.VendorMatchResult{}
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}

	key := cacheKey(weddingPlanID, category)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(results) > 0 {
		pipe.Set(ctx, key, payload, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace recommendations %s: %w", key, err)
	}
	return nil
}

// GetCached returns the fresh entries for the key. An empty category merges every
// category of the plan ordered by score.
func (c *RecommendationCache) GetCached(ctx context.Context, weddingPlanID string, category matching.Category) ([]matching.VendorMatchResult, error) {
	if category != "" {
		return c.get(ctx, cacheKey(weddingPlanID, category))
	}

	keys := make([]string, len(matching.AllCategories))
	for i, cat := range matching.AllCategories {
		keys[i] = cacheKey(weddingPlanID, cat)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read recommendations for %s: %w", weddingPlanID, err)
	}

	out := make([]matching.VendorMatchResult, 0)
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var results []matching.VendorMatchResult
		if err := json.Unmarshal([]byte(raw), &results); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, results...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out, nil
}

func (c *RecommendationCache) get(ctx context.Context, key string) ([]matching.VendorMatchResult, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []matching.VendorMatchResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var results []matching.VendorMatchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return results, nil
}
