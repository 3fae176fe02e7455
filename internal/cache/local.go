package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

var _ Cache = (*Local)(nil)

// Local is an in-process cache with a fixed memory budget.
type Local struct {
	cache         *freecache.Cache
	expireSeconds int
}

func NewLocal(sizeMB int, ttl time.Duration) *Local {
	return &Local{
		cache:         freecache.NewCache(sizeMB * megabyte),
		expireSeconds: int(ttl.Seconds()),
	}
}

func (l *Local) Get(_ context.Context, key string) ([]byte, bool) {
	value, err := l.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("local cache get %s: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

func (l *Local) Set(_ context.Context, key string, value []byte) {
	if err := l.cache.Set([]byte(key), value, l.expireSeconds); err != nil {
		log.Errorf("local cache set %s: %s", key, err)
	}
}

func (l *Local) EntryCount() int64 {
	return l.cache.EntryCount()
}
