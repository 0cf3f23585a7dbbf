// Package metrics exposes Prometheus instrumentation for the tenant
// pipeline: access decisions, cross-temple override grants and store
// binding failures.
package metrics
