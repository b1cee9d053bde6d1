package shared

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"hotel/shared/cache"
	"hotel/shared/dto"

	"github.com/rs/zerolog/log"
)

// BuildCacheKey joins key parts with the cache namespace separator.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a stable key from the pagination and filter
// so each distinct listing query caches independently.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams
		Filter dto.FilterGroup
	}{params, filter})
	if err != nil {
		return prefix
	}

	sum := sha256.Sum256(payload)

	return fmt.Sprintf("%s:%x", prefix, sum[:8])
}

// InvalidateCaches drops every cached value under the prefix.
func InvalidateCaches(ctx context.Context, cache cache.RedisCache, prefix string) {
	if err := cache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
