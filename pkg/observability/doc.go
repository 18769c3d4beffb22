// Package observability exposes the board's lifecycle as Prometheus
// metrics. Wire Collector.Hooks() into the engine and mount promhttp next to
// the HTTP API.
package observability
