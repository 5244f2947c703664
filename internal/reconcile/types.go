package reconcile

import (
	"github.com/shopspring/decimal"
)

// SupplierRecord is one row of the supplier master.
type SupplierRecord struct {
	Code         string
	Name         string
	Unit         string
	TypeLabel    string
	SupplierName string
	MinQty       decimal.NullDecimal
	MaxQty       decimal.NullDecimal
}

// LedgerRecord is one row of the primary ledger export.
type LedgerRecord struct {
	Code      string
	Name      string
	Unit      string
	TypeLabel string
	Stock     decimal.NullDecimal
}

// FloorRecord is one row of the floor inventory export.
type FloorRecord struct {
	Code              string
	Department        string
	ProductName       string
	Barcode           string
	PLU               string
	Unit              string
	VATRate           decimal.NullDecimal
	Stock             decimal.NullDecimal
	LastPurchasePrice decimal.NullDecimal
	PurchaseValue     decimal.NullDecimal
	Markup            decimal.NullDecimal
	MarkupPercent     decimal.NullDecimal
	PriceExclVAT      decimal.NullDecimal
	PriceInclVAT      decimal.NullDecimal
}

// ReconciledRecord is the projection of the joined sources for one code.
// An empty text field or an invalid NullDecimal means the value is absent.
type ReconciledRecord struct {
	Code              string
	Name              string
	Unit              string
	TypeLabel         string
	LedgerStock       decimal.NullDecimal
	FloorStock        decimal.NullDecimal
	CompositeStock    decimal.Decimal
	LastPurchasePrice decimal.NullDecimal
	SupplierName      string
	MinQty            decimal.NullDecimal
	MaxQty            decimal.NullDecimal
}

// HasSupplier reports whether a supplier name is known for the record.
func (r ReconciledRecord) HasSupplier() bool {
	return r.SupplierName != ""
}

// ReorderEntry is a reconciled record below its minimum threshold.
// QuantityToOrder is MaxQty minus CompositeStock and is invalid only when
// MaxQty is absent.
type ReorderEntry struct {
	ReconciledRecord
	QuantityToOrder decimal.NullDecimal
}

// Inputs holds the three raw record sets of one run.
type Inputs struct {
	Suppliers []SupplierRecord
	Ledger    []LedgerRecord
	Floor     []FloorRecord
}

// SourceStats counts records of one source before and after aggregation.
type SourceStats struct {
	Records    int
	Unique     int
	Duplicates int
}

// Stats summarizes a run.
type Stats struct {
	Suppliers        SourceStats
	Ledger           SourceStats
	Floor            SourceStats
	Reconciled       int
	Reorders         int
	MissingSuppliers int
}

// Result is the output of Engine.Run.
type Result struct {
	Reconciled       []ReconciledRecord
	Reorders         []ReorderEntry
	MissingSuppliers []ReconciledRecord
	Errors           []string
	Stats            Stats
}
