// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: File-backed cache that survives restarts
// - http/standard: Standard library HTTP client
// - logger/logrus: Structured logger built on logrus
//
// Infrastructure components are designed to be pluggable, configurable,
// and testable; the cache backend is selected at startup from
// configuration and every implementation satisfies the same
// interfaces.Cache contract.
package infrastructure
