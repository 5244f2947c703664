package spreadsheet

import (
	"github.com/shopspring/decimal"

	"restock/internal/config"
	"restock/internal/reconcile"
)

// Table is one result sheet. A cell holds a string, a decimal.Decimal, or
// nil for an absent value.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Tables lays out a result as the three output sheets, in workbook order.
func Tables(result *reconcile.Result) []Table {
	reorders := Table{Name: config.SheetReorders, Header: reorderHeaders}
	for _, entry := range result.Reorders {
		reorders.Rows = append(reorders.Rows, append(recordCells(entry.ReconciledRecord), nullable(entry.QuantityToOrder)))
	}

	missing := Table{Name: config.SheetMissingSuppliers, Header: missingSupplierHeaders}
	for _, rec := range result.MissingSuppliers {
		missing.Rows = append(missing.Rows, recordCells(rec))
	}

	errs := Table{Name: config.SheetErrors, Header: errorHeaders}
	for _, line := range result.Errors {
		errs.Rows = append(errs.Rows, []any{line})
	}

	return []Table{reorders, missing, errs}
}

func recordCells(rec reconcile.ReconciledRecord) []any {
	return []any{
		text(rec.Code),
		text(rec.Name),
		text(rec.Unit),
		text(rec.TypeLabel),
		nullable(rec.LedgerStock),
		nullable(rec.FloorStock),
		rec.CompositeStock,
		nullable(rec.LastPurchasePrice),
		text(rec.SupplierName),
		nullable(rec.MinQty),
		nullable(rec.MaxQty),
	}
}

func text(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullable(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal
}
