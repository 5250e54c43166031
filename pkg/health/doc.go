// Package health serves liveness and readiness probes.
//
// The readiness handler runs a set of named [Checks] in parallel under a
// shared timeout and answers 200 when all pass, 503 otherwise. Append
// ?format=json or send Accept: application/json for per-check detail.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "works": catalog.Healthcheck,
//	    "works_cache": redis.Ping(client),
//	}))
package health
