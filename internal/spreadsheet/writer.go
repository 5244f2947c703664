package spreadsheet

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "restock/internal/errors"
	"restock/internal/reconcile"
)

const columnWidth = 16

// Writer saves a reconcile.Result as the result workbook.
type Writer struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewWriter creates a Writer. A nil logger falls back to slog.Default().
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger, tracer: otel.Tracer(TracerName)}
}

// WriteResult writes the three result sheets to path, replacing any
// existing file.
func (w *Writer) WriteResult(ctx context.Context, path string, result *reconcile.Result) error {
	ctx, span := w.tracer.Start(ctx, "spreadsheet.write", trace.WithAttributes(attribute.String("file", path)))
	defer span.End()

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, table := range Tables(result) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table.Name); err != nil {
				return apperrors.NewStorageError("failed to name sheet", err).WithContext("sheet", table.Name)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return apperrors.NewStorageError("failed to add sheet", err).WithContext("sheet", table.Name)
		}

		if err := writeTable(f, table, headerStyle); err != nil {
			span.RecordError(err)
			return apperrors.NewStorageError("failed to write sheet", err).WithContext("sheet", table.Name)
		}
		w.logger.DebugContext(ctx, "Sheet written",
			slog.String("sheet", table.Name),
			slog.Int("rows", len(table.Rows)))
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		span.RecordError(err)
		return apperrors.NewStorageError("failed to save result workbook", err).WithContext("file", path)
	}

	w.logger.InfoContext(ctx, "Result workbook saved",
		slog.String("file", path),
		slog.Int("reorders", len(result.Reorders)),
		slog.Int("missing_suppliers", len(result.MissingSuppliers)),
		slog.Int("errors", len(result.Errors)))
	return nil
}

func writeTable(f *excelize.File, table Table, headerStyle int) error {
	lastCol, err := excelize.ColumnNumberToName(len(table.Header))
	if err != nil {
		return err
	}

	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(table.Name, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(table.Name, "A", lastCol, columnWidth); err != nil {
		return err
	}

	for r, row := range table.Rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(table.Name, cell, excelValue(value)); err != nil {
				return err
			}
		}
	}

	return f.SetPanes(table.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// excelValue converts decimals to numeric cells.
func excelValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}
