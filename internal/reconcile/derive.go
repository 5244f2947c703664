package reconcile

import (
	"github.com/shopspring/decimal"
)

// DeriveCompositeStock fills absent ledger and floor stock with zero and sets
// CompositeStock to their sum.
func DeriveCompositeStock(rec ReconciledRecord) ReconciledRecord {
	rec.LedgerStock = zeroIfAbsent(rec.LedgerStock)
	rec.FloorStock = zeroIfAbsent(rec.FloorStock)
	rec.CompositeStock = rec.LedgerStock.Decimal.Add(rec.FloorStock.Decimal)
	return rec
}

// DeriveAll applies DeriveCompositeStock to every record.
func DeriveAll(records []ReconciledRecord) []ReconciledRecord {
	out := make([]ReconciledRecord, len(records))
	for i, rec := range records {
		out[i] = DeriveCompositeStock(rec)
	}
	return out
}

func zeroIfAbsent(v decimal.NullDecimal) decimal.NullDecimal {
	if v.Valid {
		return v
	}
	return decimal.NewNullDecimal(decimal.Zero)
}
