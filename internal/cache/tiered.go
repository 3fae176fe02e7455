package cache

import (
	"context"
)

var _ Cache = (*Tiered)(nil)

// Tiered reads the local tier first and falls back to the shared one,
// copying shared hits into the local tier.
type Tiered struct {
	local  Cache
	shared Cache
}

func NewTiered(local, shared Cache) *Tiered {
	return &Tiered{
		local:  local,
		shared: shared,
	}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if value, ok := t.local.Get(ctx, key); ok {
		return value, true
	}
	value, ok := t.shared.Get(ctx, key)
	if !ok {
		return nil, false
	}
	t.local.Set(ctx, key, value)
	return value, true
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte) {
	t.local.Set(ctx, key, value)
	t.shared.Set(ctx, key, value)
}
