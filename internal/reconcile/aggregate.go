package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ReduceOp selects how values of one field are collapsed when several
// records share a code.
type ReduceOp int

const (
	// First keeps the first non-empty value in encounter order.
	First ReduceOp = iota
	// Sum adds all present values. A group with no present value sums to 0.
	Sum
	// Min keeps the smallest present value.
	Min
	// Max keeps the largest present value.
	Max
)

// String returns the name of the operation.
func (op ReduceOp) String() string {
	switch op {
	case First:
		return "first"
	case Sum:
		return "sum"
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return "unknown"
	}
}

// Policy describes how records of one source are keyed and merged.
//
// Merge folds next into acc. Aggregate starts every group from the zero
// value of T, so Merge must treat empty fields as absent.
type Policy[T any] interface {
	Code(rec T) string
	WithCode(rec T, code string) T
	Merge(acc, next T) T
}

// Aggregate canonicalizes the code of every record and collapses records
// sharing a code.
//
// The second return value lists the flagged duplicates: for a code seen n
// times, its first n-1 occurrences in encounter order. When nothing is
// flagged the records are returned in their original order. Otherwise the
// result holds one merged record per code, sorted by code.
func Aggregate[T any](records []T, policy Policy[T]) ([]T, []string) {
	keyed := make([]T, len(records))
	keys := make([]string, len(records))
	remaining := make(map[string]int, len(records))
	for i, rec := range records {
		key := Canonicalize(policy.Code(rec))
		keys[i] = key
		keyed[i] = policy.WithCode(rec, key)
		remaining[key]++
	}

	var duplicates []string
	for _, key := range keys {
		remaining[key]--
		if remaining[key] > 0 {
			duplicates = append(duplicates, key)
		}
	}

	if len(duplicates) == 0 {
		return keyed, nil
	}

	groups := make(map[string]T, len(remaining))
	for i, rec := range keyed {
		groups[keys[i]] = policy.Merge(groups[keys[i]], rec)
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	merged := make([]T, 0, len(codes))
	for _, code := range codes {
		merged = append(merged, policy.WithCode(groups[code], code))
	}
	return merged, duplicates
}

func reduceText(op ReduceOp, acc, next string) string {
	switch op {
	case Sum:
		return acc + next
	case Min:
		if acc == "" || (next != "" && next < acc) {
			return next
		}
		return acc
	case Max:
		if next > acc {
			return next
		}
		return acc
	default:
		if acc == "" {
			return next
		}
		return acc
	}
}

func reduceNumber(op ReduceOp, acc, next decimal.NullDecimal) decimal.NullDecimal {
	if op == Sum {
		total := decimal.Zero
		if acc.Valid {
			total = acc.Decimal
		}
		if next.Valid {
			total = total.Add(next.Decimal)
		}
		return decimal.NullDecimal{Decimal: total, Valid: true}
	}

	if !next.Valid {
		return acc
	}
	if !acc.Valid {
		return next
	}
	switch op {
	case Min:
		if next.Decimal.LessThan(acc.Decimal) {
			return next
		}
	case Max:
		if next.Decimal.GreaterThan(acc.Decimal) {
			return next
		}
	}
	return acc
}

// SupplierPolicy names the ReduceOp of every supplier master field.
type SupplierPolicy struct {
	Name         ReduceOp
	Unit         ReduceOp
	TypeLabel    ReduceOp
	SupplierName ReduceOp
	MinQty       ReduceOp
	MaxQty       ReduceOp
}

// DefaultSupplierPolicy keeps the first label and supplier, the lowest
// minimum and the highest maximum.
func DefaultSupplierPolicy() SupplierPolicy {
	return SupplierPolicy{
		Name:         First,
		Unit:         First,
		TypeLabel:    First,
		SupplierName: First,
		MinQty:       Min,
		MaxQty:       Max,
	}
}

func (p SupplierPolicy) Code(rec SupplierRecord) string { return rec.Code }

func (p SupplierPolicy) WithCode(rec SupplierRecord, code string) SupplierRecord {
	rec.Code = code
	return rec
}

func (p SupplierPolicy) Merge(acc, next SupplierRecord) SupplierRecord {
	return SupplierRecord{
		Code:         acc.Code,
		Name:         reduceText(p.Name, acc.Name, next.Name),
		Unit:         reduceText(p.Unit, acc.Unit, next.Unit),
		TypeLabel:    reduceText(p.TypeLabel, acc.TypeLabel, next.TypeLabel),
		SupplierName: reduceText(p.SupplierName, acc.SupplierName, next.SupplierName),
		MinQty:       reduceNumber(p.MinQty, acc.MinQty, next.MinQty),
		MaxQty:       reduceNumber(p.MaxQty, acc.MaxQty, next.MaxQty),
	}
}

// LedgerPolicy names the ReduceOp of every ledger field.
type LedgerPolicy struct {
	Name      ReduceOp
	Unit      ReduceOp
	TypeLabel ReduceOp
	Stock     ReduceOp
}

// DefaultLedgerPolicy keeps the first labels and sums the stock.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{
		Name:      First,
		Unit:      First,
		TypeLabel: First,
		Stock:     Sum,
	}
}

func (p LedgerPolicy) Code(rec LedgerRecord) string { return rec.Code }

func (p LedgerPolicy) WithCode(rec LedgerRecord, code string) LedgerRecord {
	rec.Code = code
	return rec
}

func (p LedgerPolicy) Merge(acc, next LedgerRecord) LedgerRecord {
	return LedgerRecord{
		Code:      acc.Code,
		Name:      reduceText(p.Name, acc.Name, next.Name),
		Unit:      reduceText(p.Unit, acc.Unit, next.Unit),
		TypeLabel: reduceText(p.TypeLabel, acc.TypeLabel, next.TypeLabel),
		Stock:     reduceNumber(p.Stock, acc.Stock, next.Stock),
	}
}

// FloorPolicy names the ReduceOp of every floor inventory field.
type FloorPolicy struct {
	Department        ReduceOp
	ProductName       ReduceOp
	Barcode           ReduceOp
	PLU               ReduceOp
	Unit              ReduceOp
	VATRate           ReduceOp
	Stock             ReduceOp
	LastPurchasePrice ReduceOp
	PurchaseValue     ReduceOp
	Markup            ReduceOp
	MarkupPercent     ReduceOp
	PriceExclVAT      ReduceOp
	PriceInclVAT      ReduceOp
}

// DefaultFloorPolicy keeps the first labels, sums the stock and keeps the
// highest rate, price and markup.
func DefaultFloorPolicy() FloorPolicy {
	return FloorPolicy{
		Department:        First,
		ProductName:       First,
		Barcode:           First,
		PLU:               First,
		Unit:              First,
		VATRate:           Max,
		Stock:             Sum,
		LastPurchasePrice: Max,
		PurchaseValue:     Max,
		Markup:            Max,
		MarkupPercent:     Max,
		PriceExclVAT:      Max,
		PriceInclVAT:      Max,
	}
}

func (p FloorPolicy) Code(rec FloorRecord) string { return rec.Code }

func (p FloorPolicy) WithCode(rec FloorRecord, code string) FloorRecord {
	rec.Code = code
	return rec
}

func (p FloorPolicy) Merge(acc, next FloorRecord) FloorRecord {
	return FloorRecord{
		Code:              acc.Code,
		Department:        reduceText(p.Department, acc.Department, next.Department),
		ProductName:       reduceText(p.ProductName, acc.ProductName, next.ProductName),
		Barcode:           reduceText(p.Barcode, acc.Barcode, next.Barcode),
		PLU:               reduceText(p.PLU, acc.PLU, next.PLU),
		Unit:              reduceText(p.Unit, acc.Unit, next.Unit),
		VATRate:           reduceNumber(p.VATRate, acc.VATRate, next.VATRate),
		Stock:             reduceNumber(p.Stock, acc.Stock, next.Stock),
		LastPurchasePrice: reduceNumber(p.LastPurchasePrice, acc.LastPurchasePrice, next.LastPurchasePrice),
		PurchaseValue:     reduceNumber(p.PurchaseValue, acc.PurchaseValue, next.PurchaseValue),
		Markup:            reduceNumber(p.Markup, acc.Markup, next.Markup),
		MarkupPercent:     reduceNumber(p.MarkupPercent, acc.MarkupPercent, next.MarkupPercent),
		PriceExclVAT:      reduceNumber(p.PriceExclVAT, acc.PriceExclVAT, next.PriceExclVAT),
		PriceInclVAT:      reduceNumber(p.PriceInclVAT, acc.PriceInclVAT, next.PriceInclVAT),
	}
}
