// Package metrics records the outcome of a run as Prometheus gauges and
// writes them to a node exporter textfile, since a one-shot command has no
// long-lived endpoint to scrape.
package metrics
