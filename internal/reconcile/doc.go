// Package reconcile implements the stock reconciliation engine.
//
// Three record sets enter the engine: the supplier master ("furnizori"),
// the primary ledger ("saga") and the floor inventory ("sedona"). The engine
// produces the items that must be reordered, the items without a supplier
// and a report of the duplicate internal codes that had to be collapsed.
//
// # Pipeline
//
//	Canonicalize → Aggregate (per source) → Join → DeriveCompositeStock →
//	    SelectReorders / SelectMissingSuppliers
//
// Every stage takes its input by value and returns new slices; nothing is
// mutated in place, so running the pipeline twice on the same inputs gives
// deep-equal results.
//
// # Identity
//
// Codes are compared only after Canonicalize: integer-looking codes lose
// their formatting ("007" and " 7 " both become "7"), anything else is kept
// verbatim.
//
// # Aggregation
//
// Each source has an explicit policy struct (SupplierPolicy, LedgerPolicy,
// FloorPolicy) naming the ReduceOp for every field. Duplicates are detected
// with a keep-last rule: a code seen n times is reported n-1 times.
//
// # Joining
//
// The ledger is the primary side. Floor records attach to ledger records by
// code; floor records with no ledger counterpart are appended after the
// ledger rows. Supplier records are left-joined on top of both, so an item
// is never dropped for lack of a supplier.
//
// # Usage
//
//	engine := reconcile.NewEngine(logger)
//	result, err := engine.Run(ctx, reconcile.Inputs{
//	    Suppliers: suppliers,
//	    Ledger:    ledger,
//	    Floor:     floor,
//	})
package reconcile
