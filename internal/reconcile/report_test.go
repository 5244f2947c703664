package reconcile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateReportMessage(t *testing.T) {
	report := NewDuplicateReport()
	report.Add(SourceLedger, []string{"1", "1", "AB-3"})

	assert.Equal(t, []string{
		"Coduri interne duplicate in saga care au fost agregate: ['1', '1', 'AB-3']. ",
	}, report.Lines())
}

func TestDuplicateReportOrderIsBySource(t *testing.T) {
	report := NewDuplicateReport()
	report.Add(SourceFloor, []string{"3"})
	report.Add(SourceSuppliers, []string{"1"})
	report.Add(SourceLedger, nil)

	assert.Equal(t, []string{
		"Coduri interne duplicate in furnizori care au fost agregate: ['1']. ",
		"Coduri interne duplicate in sedona care au fost agregate: ['3']. ",
	}, report.Lines())
}

func TestDuplicateReportConcurrentAdd(t *testing.T) {
	report := NewDuplicateReport()

	var wg sync.WaitGroup
	for _, s := range []Source{SourceFloor, SourceLedger, SourceSuppliers} {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			report.Add(s, []string{"x"})
		}(s)
	}
	wg.Wait()

	lines := report.Lines()
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "furnizori")
	assert.Contains(t, lines[1], "saga")
	assert.Contains(t, lines[2], "sedona")
}

func TestDuplicateReportEmpty(t *testing.T) {
	assert.Empty(t, NewDuplicateReport().Lines())
}

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "12", want: `'12'`},
		{in: "O'Neil", want: `"O'Neil"`},
		{in: `a'b"c`, want: `'a\'b"c'`},
		{in: `back\slash`, want: `'back\\slash'`},
		{in: "tab\there", want: `'tab\there'`},
		{in: "", want: `''`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteLiteral(tt.in), "input %q", tt.in)
	}
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "furnizori", SourceSuppliers.String())
	assert.Equal(t, "saga", SourceLedger.String())
	assert.Equal(t, "sedona", SourceFloor.String())
	assert.Equal(t, "unknown", Source(9).String())
}
