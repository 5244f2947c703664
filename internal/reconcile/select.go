package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SelectReorders keeps the records whose composite stock is below their
// minimum quantity, sorted by supplier name then code. Records without a
// supplier name sort last. Records without a minimum are never selected.
//
// QuantityToOrder is MaxQty - CompositeStock. It is not clamped, so a
// maximum configured below the minimum can yield a negative quantity.
func SelectReorders(records []ReconciledRecord) []ReorderEntry {
	var entries []ReorderEntry
	for _, rec := range records {
		if !rec.MinQty.Valid || !rec.CompositeStock.LessThan(rec.MinQty.Decimal) {
			continue
		}
		entry := ReorderEntry{ReconciledRecord: rec}
		if rec.MaxQty.Valid {
			entry.QuantityToOrder = decimal.NewNullDecimal(rec.MaxQty.Decimal.Sub(rec.CompositeStock))
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.HasSupplier() != b.HasSupplier() {
			return a.HasSupplier()
		}
		if a.SupplierName != b.SupplierName {
			return a.SupplierName < b.SupplierName
		}
		return a.Code < b.Code
	})

	return entries
}

// SelectMissingSuppliers keeps the records without a supplier name, in
// their original order.
func SelectMissingSuppliers(records []ReconciledRecord) []ReconciledRecord {
	var missing []ReconciledRecord
	for _, rec := range records {
		if !rec.HasSupplier() {
			missing = append(missing, rec)
		}
	}
	return missing
}
