// Package redis opens the optional Redis connection that backs the shared
// portfolio cache.
//
// Open retries the first PING a few times so the site can start alongside a
// Redis container that is still booting. Ping plugs into the readiness
// probe and Shutdown into the server's shutdown hooks.
package redis
