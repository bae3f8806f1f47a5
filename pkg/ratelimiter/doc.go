// Package ratelimiter implements a token bucket keyed by an arbitrary string
// (client IP in this service) with a pluggable Store and an HTTP middleware
// that sets X-RateLimit-* headers and hands rejected requests to a
// configurable handler.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP,
//		ratelimiter.WithLimitedHandler(tooManyRequests)))
package ratelimiter
