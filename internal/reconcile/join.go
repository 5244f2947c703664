package reconcile

import (
	"github.com/shopspring/decimal"
)

// column names a text column that both the joined-so-far table and the
// supplier master may carry.
type column string

const (
	columnName      column = "denumire"
	columnUnit      column = "um"
	columnTypeLabel column = "den_tip"
)

var supplierTextColumns = []column{columnName, columnUnit, columnTypeLabel}

// joinedRow is the wide row built while joining. text holds the columns the
// row owns. supplierAliases holds the supplier's values for columns that
// collided with text; it only records the rename and is never projected.
type joinedRow struct {
	code              string
	text              map[column]string
	supplierAliases   map[column]string
	ledgerStock       decimal.NullDecimal
	floorStock        decimal.NullDecimal
	lastPurchasePrice decimal.NullDecimal
	supplierName      string
	minQty            decimal.NullDecimal
	maxQty            decimal.NullDecimal
}

// Join combines the aggregated sources into one table.
//
// Every ledger record yields one row, with floor fields attached when the
// floor has the same code. Floor records whose code is not in the ledger
// follow, with ProductName and Unit renamed to the ledger's Name and Unit.
// Supplier fields are left-joined onto both parts. Codes are expected to be
// unique within each source.
func Join(ledger []LedgerRecord, floor []FloorRecord, suppliers []SupplierRecord) []ReconciledRecord {
	floorByCode := make(map[string]FloorRecord, len(floor))
	for _, rec := range floor {
		if _, ok := floorByCode[rec.Code]; !ok {
			floorByCode[rec.Code] = rec
		}
	}
	supplierByCode := make(map[string]SupplierRecord, len(suppliers))
	for _, rec := range suppliers {
		if _, ok := supplierByCode[rec.Code]; !ok {
			supplierByCode[rec.Code] = rec
		}
	}

	rows := make([]ReconciledRecord, 0, len(ledger)+len(floor))

	ledgerCodes := make(map[string]struct{}, len(ledger))
	for _, rec := range ledger {
		ledgerCodes[rec.Code] = struct{}{}
		row := ledgerRow(rec)
		if f, ok := floorByCode[rec.Code]; ok {
			row.floorStock = f.Stock
			row.lastPurchasePrice = f.LastPurchasePrice
		}
		row = attachSupplier(row, supplierByCode)
		rows = append(rows, row.project())
	}

	for _, rec := range floor {
		if _, ok := ledgerCodes[rec.Code]; ok {
			continue
		}
		row := attachSupplier(floorOnlyRow(rec), supplierByCode)
		rows = append(rows, row.project())
	}

	return rows
}

func ledgerRow(rec LedgerRecord) joinedRow {
	return joinedRow{
		code: rec.Code,
		text: map[column]string{
			columnName:      rec.Name,
			columnUnit:      rec.Unit,
			columnTypeLabel: rec.TypeLabel,
		},
		ledgerStock: rec.Stock,
	}
}

// floorOnlyRow renames the floor's product and unit columns to the ledger
// schema. The floor has no type label column.
func floorOnlyRow(rec FloorRecord) joinedRow {
	return joinedRow{
		code: rec.Code,
		text: map[column]string{
			columnName: rec.ProductName,
			columnUnit: rec.Unit,
		},
		floorStock:        rec.Stock,
		lastPurchasePrice: rec.LastPurchasePrice,
	}
}

// attachSupplier left-joins the supplier with the row's code. Supplier text
// columns the row already has are stored as aliases instead of overwriting.
func attachSupplier(row joinedRow, suppliers map[string]SupplierRecord) joinedRow {
	sup, ok := suppliers[row.code]
	if !ok {
		return row
	}

	text := make(map[column]string, len(supplierTextColumns))
	for c, v := range row.text {
		text[c] = v
	}
	aliases := make(map[column]string)
	values := map[column]string{
		columnName:      sup.Name,
		columnUnit:      sup.Unit,
		columnTypeLabel: sup.TypeLabel,
	}
	for _, c := range supplierTextColumns {
		if _, collides := text[c]; collides {
			aliases[c] = values[c]
			continue
		}
		text[c] = values[c]
	}

	row.text = text
	row.supplierAliases = aliases
	row.supplierName = sup.SupplierName
	row.minQty = sup.MinQty
	row.maxQty = sup.MaxQty
	return row
}

// project keeps the output columns. Supplier aliases are dropped.
func (r joinedRow) project() ReconciledRecord {
	return ReconciledRecord{
		Code:              r.code,
		Name:              r.text[columnName],
		Unit:              r.text[columnUnit],
		TypeLabel:         r.text[columnTypeLabel],
		LedgerStock:       r.ledgerStock,
		FloorStock:        r.floorStock,
		LastPurchasePrice: r.lastPurchasePrice,
		SupplierName:      r.supplierName,
		MinQty:            r.minQty,
		MaxQty:            r.maxQty,
	}
}
