// Package exporter writes the result tables as CSV files.
//
// CSVWriter is the low-level writer: headers, records and an optional UTF-8
// BOM so Excel opens the files with the right encoding. ResultExporter lays
// a reconcile.Result out with spreadsheet.Tables and writes one file per
// sheet:
//
//	aprovizionare.csv
//	fara_furnizori.csv
//	erori.csv
//
// Example usage:
//
//	paths, err := exporter.NewResultExporter(logger).ExportResult(ctx, "export", result)
package exporter
