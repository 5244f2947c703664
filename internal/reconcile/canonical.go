package reconcile

import (
	"math/big"
	"strings"
)

// Canonicalize normalizes a raw code into the key used for grouping and
// joining. Codes that parse as a base-10 integer of any size are rewritten in
// canonical form ("007" -> "7", " 42 " -> "42", "+5" -> "5"); every other
// value is returned unchanged. Digit separators are not recognized, so
// "1_000" stays as is.
func Canonicalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	n, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return raw
	}
	return n.String()
}
