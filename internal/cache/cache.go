package cache

import (
	"context"
)

// Cache stores serialized results. Implementations never fail a request:
// a backend error is a miss on Get and a no-op on Set.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

var _ Cache = Noop{}

type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Set(context.Context, string, []byte) {}
