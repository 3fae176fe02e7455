package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const redisKeyPrefix = "krank-cache||"

var _ Cache = (*Redis)(nil)

// Redis shares cached results between service instances.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("redis cache get %s: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		log.Errorf("redis cache set %s: %s", key, err)
	}
}
