package cache

import (
	"fmt"
	"time"

	"github.com/2beens/krank/internal/config"
	"github.com/2beens/krank/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
)

type NewParams struct {
	Mode           string
	SizeMB         int
	TTL            time.Duration
	RedisClient    *redis.Client
	MetricsManager *metrics.Manager
}

// New builds the result cache for the configured mode.
func New(params NewParams) (Cache, error) {
	var c Cache
	switch params.Mode {
	case config.CacheModeNone, "":
		return Noop{}, nil
	case config.CacheModeLocal:
		c = NewLocal(params.SizeMB, params.TTL)
	case config.CacheModeRedis:
		if params.RedisClient == nil {
			return nil, fmt.Errorf("cache mode %s needs a redis client", params.Mode)
		}
		c = NewRedis(params.RedisClient, params.TTL)
	case config.CacheModeTiered:
		if params.RedisClient == nil {
			return nil, fmt.Errorf("cache mode %s needs a redis client", params.Mode)
		}
		c = NewTiered(
			NewLocal(params.SizeMB, params.TTL),
			NewRedis(params.RedisClient, params.TTL),
		)
	default:
		return nil, fmt.Errorf("unknown cache mode: %s", params.Mode)
	}

	if params.MetricsManager != nil {
		c = NewInstrumented(c, params.Mode, params.MetricsManager)
	}
	return c, nil
}
