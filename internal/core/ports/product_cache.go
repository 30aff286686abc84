package ports

import "context"

// ProductCache is a read-through cache for product lookups. Misses and
// backend failures are indistinguishable to callers: Get returns ok=false
// and the service falls through to the repository.
type ProductCache interface {
	Get(ctx context.Context, criteria string) (*ProductDetail, bool)
	Set(ctx context.Context, detail *ProductDetail)
	// Invalidate drops every cached entry that could resolve to the
	// product (id, slug and title keys).
	Invalidate(ctx context.Context, keys ...string)
}
