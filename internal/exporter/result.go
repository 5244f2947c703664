package exporter

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "restock/internal/errors"
	"restock/internal/reconcile"
	"restock/internal/spreadsheet"
)

// ResultExporter writes the result sheets as CSV files.
type ResultExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewResultExporter creates a ResultExporter
func NewResultExporter(logger *slog.Logger) *ResultExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultExporter{csv: NewCSVWriter(logger), logger: logger}
}

// FileName returns the CSV file name for a result sheet, e.g.
// "Fara_furnizori" becomes "fara_furnizori.csv".
func FileName(sheet string) string {
	return strings.ToLower(sheet) + ".csv"
}

// ExportResult writes one CSV per result sheet into dir and returns the
// written paths in sheet order.
func (e *ResultExporter) ExportResult(ctx context.Context, dir string, result *reconcile.Result) ([]string, error) {
	var written []string
	for _, table := range spreadsheet.Tables(result) {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		records := make([][]string, len(table.Rows))
		for i, row := range table.Rows {
			records[i] = formatRow(row)
		}

		path := filepath.Join(dir, FileName(table.Name))
		if err := e.csv.WriteSimpleCSV(path, table.Header, records); err != nil {
			return written, apperrors.NewStorageError("failed to export CSV", err).WithContext("file", path)
		}
		written = append(written, path)
	}

	e.logger.InfoContext(ctx, "CSV export complete",
		slog.String("directory", dir),
		slog.Int("files", len(written)))
	return written, nil
}
