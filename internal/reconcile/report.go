package reconcile

import (
	"fmt"
	"strings"
	"sync"
)

// Source identifies one of the three inputs.
type Source int

const (
	SourceSuppliers Source = iota
	SourceLedger
	SourceFloor

	sourceCount
)

// String returns the name the source has in diagnostics.
func (s Source) String() string {
	switch s {
	case SourceSuppliers:
		return "furnizori"
	case SourceLedger:
		return "saga"
	case SourceFloor:
		return "sedona"
	default:
		return "unknown"
	}
}

// DuplicateReport collects duplicate-code diagnostics. Add may be called
// concurrently and in any order; Lines always lists suppliers, then ledger,
// then floor.
type DuplicateReport struct {
	mu    sync.Mutex
	lines [sourceCount]string
}

// NewDuplicateReport returns an empty report.
func NewDuplicateReport() *DuplicateReport {
	return &DuplicateReport{}
}

// Add records the duplicates flagged for a source. Empty lists are ignored.
func (r *DuplicateReport) Add(source Source, duplicates []string) {
	if len(duplicates) == 0 || source < 0 || source >= sourceCount {
		return
	}
	line := fmt.Sprintf("Coduri interne duplicate in %s care au fost agregate: %s. ", source, listLiteral(duplicates))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[source] = line
}

// Lines returns the diagnostics in source order.
func (r *DuplicateReport) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, 0, sourceCount)
	for _, line := range r.lines {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// listLiteral renders codes as a bracketed list of quoted strings, e.g.
// ['1', '1', 'A-7'], the format the error sheet has always used.
func listLiteral(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteLiteral(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func quoteLiteral(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}

	var b strings.Builder
	b.WriteString(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case string(r) == quote:
			b.WriteString(`\` + quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(quote)
	return b.String()
}
