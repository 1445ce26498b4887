// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/athloshq/athlos/internal/platform/constants"
	"github.com/athloshq/athlos/internal/platform/dberr"
)

// # Redis Summary Cache

// RedisSummaryCache implements SummaryCache using Redis.
type RedisSummaryCache struct {
	client *redis.Client
}

// NewSummaryCache creates a new Redis-backed SummaryCache.
func NewSummaryCache(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{client: client}
}

/*
Get retrieves the cached summary.

Description: Returns dberr.ErrNotFound when the key is absent or expired, so
the caller regenerates the summary.

Parameters:
  - context: context.Context

Returns:
  - *Summary: Cached payload
  - error: dberr.ErrNotFound or connectivity errors
*/
func (cache *RedisSummaryCache) Get(context context.Context) (*Summary, error) {

	// Fetch the serialized summary
	payload, err := cache.client.Get(context, constants.AnalyticsSummaryCacheKey).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("redis_analytics_summary_get_failed: %w", err)
	}

	// Decode it
	var summary Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, fmt.Errorf("redis_analytics_summary_decode_failed: %w", err)
	}

	return &summary, nil
}

/*
Set stores the summary with its TTL.

Parameters:
  - context: context.Context
  - summary: *Summary
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (cache *RedisSummaryCache) Set(context context.Context, summary *Summary, ttl time.Duration) error {

	// Serialize the summary
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("redis_analytics_summary_encode_failed: %w", err)
	}

	// Store it with TTL
	if err := cache.client.Set(context, constants.AnalyticsSummaryCacheKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_analytics_summary_set_failed: %w", err)
	}

	return nil
}
