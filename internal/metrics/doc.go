// Package metrics provides observability hooks for generation runs.
//
// It follows the Null Object pattern: components receive a Recorder through
// dependency injection and default to NoopRecorder, so metrics collection
// never requires nil checks and costs nothing when disabled. The Prometheus
// implementation registers against a caller-owned registry; because the
// generator has no HTTP surface, metrics are exported as a
// textfile-collector file at the end of a run instead of being scraped.
package metrics
