package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flowcrm/aisummary/pkg/persistence"
	"github.com/flowcrm/aisummary/pkg/persistence/memory"
	"github.com/flowcrm/aisummary/pkg/persistence/redis"
)

// NewResultStore picks the store from the URL scheme. An empty URL or memory:// keeps
// records in process memory; redis:// and rediss:// use Redis.
func NewResultStore(ctx context.Context, url string, ttl time.Duration) (persistence.ResultStore, error) {
	switch provider := parseResultStoreProvider(url); provider {
	case "memory":
		return memory.NewResultStore(), nil
	case "redis":
		return redis.NewResultStoreFromURL(ctx, url, ttl)
	default:
		return nil, fmt.Errorf("unsupported result store: %s", provider)
	}
}

// parseResultStoreProvider maps url to "memory", "redis" or, for anything else, its scheme.
func parseResultStoreProvider(url string) string {
	if url == "" {
		return "memory"
	}

	scheme, _, found := strings.Cut(url, "://")
	if !found {
		return url
	}

	switch scheme {
	case "memory":
		return "memory"
	case "redis", "rediss":
		return "redis"
	default:
		return scheme
	}
}
