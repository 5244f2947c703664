// Package spreadsheet reads the three source workbooks into reconcile records
// and writes the result workbook, using excelize.
//
// Only the first worksheet of an input workbook is read. Its first row is
// the header row and columns are located by exact header text, so column
// order does not matter. Cells are read raw, without number formatting.
//
// The result workbook has three sheets in a fixed order: Aprovizionare,
// Fara_furnizori and Erori. Tables builds their contents once so the
// workbook writer and the CSV exporter produce the same rows.
package spreadsheet
