package spreadsheet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "restock/internal/errors"
	"restock/internal/reconcile"
)

// TracerName identifies spans emitted by this package.
const TracerName = "restock/spreadsheet"

// InputPaths names the three source workbooks of a run.
type InputPaths struct {
	Sedona    string
	Saga      string
	Suppliers string
}

// Reader loads source workbooks into reconcile records.
type Reader struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewReader creates a Reader. A nil logger falls back to slog.Default().
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger, tracer: otel.Tracer(TracerName)}
}

// ReadInputs loads the three workbooks concurrently. The first failure
// cancels the others and is returned.
func (r *Reader) ReadInputs(ctx context.Context, paths InputPaths) (reconcile.Inputs, error) {
	var in reconcile.Inputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := r.ReadSuppliers(gctx, paths.Suppliers)
		in.Suppliers = records
		return err
	})
	g.Go(func() error {
		records, err := r.ReadLedger(gctx, paths.Saga)
		in.Ledger = records
		return err
	})
	g.Go(func() error {
		records, err := r.ReadFloor(gctx, paths.Sedona)
		in.Floor = records
		return err
	})

	if err := g.Wait(); err != nil {
		return reconcile.Inputs{}, err
	}
	return in, nil
}

// ReadSuppliers reads the supplier master (furnizori).
func (r *Reader) ReadSuppliers(ctx context.Context, path string) ([]reconcile.SupplierRecord, error) {
	s, err := r.load(ctx, "furnizori", path, supplierHeaders)
	if err != nil {
		return nil, err
	}
	records := make([]reconcile.SupplierRecord, 0, len(s.rows))
	for _, row := range s.rows {
		records = append(records, reconcile.SupplierRecord{
			Code:         s.text(row, HeaderCode),
			Name:         s.text(row, HeaderName),
			Unit:         s.text(row, HeaderUnit),
			TypeLabel:    s.text(row, HeaderTypeLabel),
			SupplierName: s.text(row, HeaderSupplierName),
			MinQty:       s.number(ctx, row, HeaderMinQty),
			MaxQty:       s.number(ctx, row, HeaderMaxQty),
		})
	}
	return records, nil
}

// ReadLedger reads the accounting ledger export (saga).
func (r *Reader) ReadLedger(ctx context.Context, path string) ([]reconcile.LedgerRecord, error) {
	s, err := r.load(ctx, "saga", path, ledgerHeaders)
	if err != nil {
		return nil, err
	}
	records := make([]reconcile.LedgerRecord, 0, len(s.rows))
	for _, row := range s.rows {
		records = append(records, reconcile.LedgerRecord{
			Code:      s.text(row, HeaderCode),
			Name:      s.text(row, HeaderName),
			Unit:      s.text(row, HeaderUnit),
			TypeLabel: s.text(row, HeaderTypeLabel),
			Stock:     s.number(ctx, row, HeaderStock),
		})
	}
	return records, nil
}

// ReadFloor reads the point-of-sale inventory export (sedona).
func (r *Reader) ReadFloor(ctx context.Context, path string) ([]reconcile.FloorRecord, error) {
	s, err := r.load(ctx, "sedona", path, floorHeaders)
	if err != nil {
		return nil, err
	}
	records := make([]reconcile.FloorRecord, 0, len(s.rows))
	for _, row := range s.rows {
		records = append(records, reconcile.FloorRecord{
			Code:              s.text(row, HeaderFloorCode),
			Department:        s.text(row, HeaderDepartment),
			ProductName:       s.text(row, HeaderProduct),
			Barcode:           s.text(row, HeaderBarcode),
			PLU:               s.text(row, HeaderPLU),
			Unit:              s.text(row, HeaderFloorUnit),
			VATRate:           s.number(ctx, row, HeaderVATRate),
			Stock:             s.number(ctx, row, HeaderCurrentStock),
			LastPurchasePrice: s.number(ctx, row, HeaderLastPurchasePrice),
			PurchaseValue:     s.number(ctx, row, HeaderPurchaseValue),
			Markup:            s.number(ctx, row, HeaderMarkup),
			MarkupPercent:     s.number(ctx, row, HeaderMarkupPercent),
			PriceExclVAT:      s.number(ctx, row, HeaderPriceExclVAT),
			PriceInclVAT:      s.number(ctx, row, HeaderPriceInclVAT),
		})
	}
	return records, nil
}

// sheet is the data area of a worksheet with its header positions.
type sheet struct {
	source string
	path   string
	index  map[string]int
	rows   []dataRow
	logger *slog.Logger
}

// dataRow is one non-blank row; number is the 1-based worksheet row.
type dataRow struct {
	number int
	cells  []string
}

func (r *Reader) load(ctx context.Context, source, path string, required []string) (*sheet, error) {
	ctx, span := r.tracer.Start(ctx, "spreadsheet.read",
		trace.WithAttributes(attribute.String("source", source), attribute.String("file", path)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open %s workbook", source), err).
			WithContext("file", path)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s workbook has no worksheets", source), nil).
			WithContext("file", path)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s worksheet", source), err).
			WithContext("file", path).WithContext("sheet", name)
	}

	s := &sheet{source: source, path: path, index: make(map[string]int), logger: r.logger}
	if len(rows) > 0 {
		for i, header := range rows[0] {
			header = strings.TrimSpace(header)
			if _, seen := s.index[header]; !seen {
				s.index[header] = i
			}
		}
	}

	var missing []string
	for _, header := range required {
		if _, ok := s.index[header]; !ok {
			missing = append(missing, header)
		}
	}
	if len(missing) > 0 {
		err := apperrors.NewParsingError(
			fmt.Sprintf("%s worksheet is missing columns: %s", source, strings.Join(missing, ", ")), nil).
			WithContext("file", path).WithContext("sheet", name)
		span.RecordError(err)
		return nil, err
	}

	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		s.rows = append(s.rows, dataRow{number: i + 1, cells: rows[i]})
	}

	span.SetAttributes(attribute.Int("rows", len(s.rows)))
	r.logger.InfoContext(ctx, "Workbook loaded",
		slog.String("source", source),
		slog.String("file", path),
		slog.String("sheet", name),
		slog.Int("rows", len(s.rows)))
	return s, nil
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cell returns the trimmed raw value under header. Rows shorter than the
// header row yield "".
func (s *sheet) cell(row dataRow, header string) string {
	idx := s.index[header]
	if idx >= len(row.cells) {
		return ""
	}
	return strings.TrimSpace(row.cells[idx])
}

func (s *sheet) text(row dataRow, header string) string {
	return s.cell(row, header)
}

// number parses a numeric cell. Empty or unparseable cells are absent.
func (s *sheet) number(ctx context.Context, row dataRow, header string) decimal.NullDecimal {
	raw := s.cell(row, header)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := ParseDecimal(raw)
	if err != nil {
		s.logger.DebugContext(ctx, "Unparseable numeric cell treated as empty",
			slog.String("source", s.source),
			slog.Int("row", row.number),
			slog.String("column", header),
			slog.String("value", raw))
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseDecimal parses a raw cell value. A single comma with no point is a
// decimal comma ("12,5" is 12.5). Any other use of commas is ambiguous and
// rejected.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	v := strings.TrimSpace(raw)
	if strings.Contains(v, ",") {
		if strings.Count(v, ",") != 1 || strings.Contains(v, ".") {
			return decimal.Decimal{}, fmt.Errorf("ambiguous number separators in %q", v)
		}
		v = strings.Replace(v, ",", ".", 1)
	}
	return decimal.NewFromString(v)
}
