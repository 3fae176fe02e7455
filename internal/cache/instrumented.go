package cache

import (
	"context"

	"github.com/2beens/krank/internal/telemetry/metrics"
)

var _ Cache = (*Instrumented)(nil)

// Instrumented counts hits and misses of the wrapped cache under a kind label.
type Instrumented struct {
	next    Cache
	kind    string
	metrics *metrics.Manager
}

func NewInstrumented(next Cache, kind string, metricsManager *metrics.Manager) *Instrumented {
	return &Instrumented{
		next:    next,
		kind:    kind,
		metrics: metricsManager,
	}
}

func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, bool) {
	value, ok := i.next.Get(ctx, key)
	if ok {
		i.metrics.CounterCacheHits.WithLabelValues(i.kind).Inc()
	} else {
		i.metrics.CounterCacheMisses.WithLabelValues(i.kind).Inc()
	}
	return value, ok
}

func (i *Instrumented) Set(ctx context.Context, key string, value []byte) {
	i.next.Set(ctx, key, value)
}
