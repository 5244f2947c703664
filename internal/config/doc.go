// Package config loads the restock configuration.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables, optionally seeded from a .env file (highest priority)
//	2. A YAML file: the path passed to Load, else restock.yaml or configs/restock.yaml
//	3. Default values (lowest priority)
//
// Command-line flags in cmd/restock override the loaded values for the
// input and output paths.
//
// # Environment Variables
//
// All environment variables follow the pattern RESTOCK_<SECTION>_<KEY>:
//
//	RESTOCK_LOGGING_LEVEL=debug
//	RESTOCK_INPUTS_SEDONA=data/sedona.xlsx
//	RESTOCK_OUTPUT_CSV_DIR=export
//	RESTOCK_METRICS_TEXTFILE_PATH=/var/lib/node_exporter/restock.prom
//	RESTOCK_TRACING_ENABLED=true
//
// # Validation
//
// Load validates the result with go-playground/validator and returns an
// *errors.AppError of type CONFIG on failure.
package config
