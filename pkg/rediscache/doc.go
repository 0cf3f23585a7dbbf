// Package rediscache provides a Redis-backed implementation of
// temple.Cache for multi-process deployments sharing one descriptor cache.
package rediscache
