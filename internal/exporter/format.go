package exporter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// formatCell renders one result cell. Decimals keep their exact value and
// absent values become empty fields.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case decimal.Decimal:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = formatCell(v)
	}
	return out
}
