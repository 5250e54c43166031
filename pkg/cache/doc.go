// Package cache provides a generic Cache interface with in-memory and Redis
// implementations.
//
// The site keeps its decoded portfolio catalog here so that page renders do
// not hit the works source on every request. Single-instance deployments use
// Memory; several replicas share one Redis.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL (1 hour by default)
//   - Negative: item never expires
//
// GetOrSet collapses concurrent misses for one key into a single loader call:
//
//	items, err := cache.GetOrSet(ctx, c, "works:catalog", 5*time.Minute, load)
package cache
