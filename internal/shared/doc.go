// Package shared holds code used across restock packages that belongs to
// no single layer.
//
// The testutil subpackage provides test helpers only:
//
//	- NewLogger: an slog logger whose records can be asserted on
//	- WriteWorkbook and ReadSheet: excelize fixtures for reader and writer tests
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewLogger(t)
//	    path := testutil.WriteWorkbook(t, "saga.xlsx", []string{"cod", "stoc"}, []any{"1", 4})
//	    // ...
//	    testutil.AssertLogged(t, logs, slog.LevelInfo, "Workbook loaded")
//	}
package shared
