package reconcile

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"restock/internal/infrastructure"
)

// TracerName is the instrumentation name of the engine's spans.
const TracerName = "restock/reconcile"

// Engine runs the reconciliation pipeline.
type Engine struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	suppliers SupplierPolicy
	ledger    LedgerPolicy
	floor     FloorPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithSupplierPolicy replaces the supplier master policy.
func WithSupplierPolicy(p SupplierPolicy) Option {
	return func(e *Engine) { e.suppliers = p }
}

// WithLedgerPolicy replaces the ledger policy.
func WithLedgerPolicy(p LedgerPolicy) Option {
	return func(e *Engine) { e.ledger = p }
}

// WithFloorPolicy replaces the floor inventory policy.
func WithFloorPolicy(p FloorPolicy) Option {
	return func(e *Engine) { e.floor = p }
}

// WithTracer sets the tracer used for stage spans. The global provider's
// tracer is used by default.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// NewEngine creates an engine with the default policies.
func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		logger:    logger,
		tracer:    otel.Tracer(TracerName),
		suppliers: DefaultSupplierPolicy(),
		ledger:    DefaultLedgerPolicy(),
		floor:     DefaultFloorPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run reconciles the three sources. The only error it returns is the
// context's.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "reconcile.run", trace.WithAttributes(
		attribute.Int("records.suppliers", len(in.Suppliers)),
		attribute.Int("records.ledger", len(in.Ledger)),
		attribute.Int("records.floor", len(in.Floor)),
	))
	defer span.End()

	report := NewDuplicateReport()
	var (
		suppliers []SupplierRecord
		ledger    []LedgerRecord
		floor     []FloorRecord
		stats     Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var dups []string
		suppliers, dups = aggregateSource(gctx, e, SourceSuppliers, in.Suppliers, e.suppliers)
		report.Add(SourceSuppliers, dups)
		stats.Suppliers = SourceStats{Records: len(in.Suppliers), Unique: len(suppliers), Duplicates: len(dups)}
		return gctx.Err()
	})
	g.Go(func() error {
		var dups []string
		ledger, dups = aggregateSource(gctx, e, SourceLedger, in.Ledger, e.ledger)
		report.Add(SourceLedger, dups)
		stats.Ledger = SourceStats{Records: len(in.Ledger), Unique: len(ledger), Duplicates: len(dups)}
		return gctx.Err()
	})
	g.Go(func() error {
		var dups []string
		floor, dups = aggregateSource(gctx, e, SourceFloor, in.Floor, e.floor)
		report.Add(SourceFloor, dups)
		stats.Floor = SourceStats{Records: len(in.Floor), Unique: len(floor), Duplicates: len(dups)}
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	_, joinSpan := e.tracer.Start(ctx, "reconcile.join")
	reconciled := DeriveAll(Join(ledger, floor, suppliers))
	joinSpan.SetAttributes(attribute.Int("records.reconciled", len(reconciled)))
	joinSpan.End()

	e.logger.InfoContext(ctx, "Sources joined",
		slog.Int("ledger", len(ledger)),
		slog.Int("floor", len(floor)),
		slog.Int("suppliers", len(suppliers)),
		slog.Int("reconciled", len(reconciled)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, selectSpan := e.tracer.Start(ctx, "reconcile.select")
	reorders := SelectReorders(reconciled)
	missing := SelectMissingSuppliers(reconciled)
	selectSpan.SetAttributes(
		attribute.Int("records.reorders", len(reorders)),
		attribute.Int("records.missing_suppliers", len(missing)))
	selectSpan.End()

	stats.Reconciled = len(reconciled)
	stats.Reorders = len(reorders)
	stats.MissingSuppliers = len(missing)

	e.logger.InfoContext(ctx, "Reconciliation complete",
		slog.Int("reorders", len(reorders)),
		slog.Int("missing_suppliers", len(missing)),
		slog.Int("error_lines", len(report.Lines())))

	return &Result{
		Reconciled:       reconciled,
		Reorders:         reorders,
		MissingSuppliers: missing,
		Errors:           report.Lines(),
		Stats:            stats,
	}, nil
}

func aggregateSource[T any](ctx context.Context, e *Engine, source Source, records []T, policy Policy[T]) ([]T, []string) {
	ctx, span := e.tracer.Start(ctx, "reconcile.aggregate", trace.WithAttributes(
		attribute.String("source", source.String()),
		attribute.Int("records", len(records)),
	))
	defer span.End()

	out, dups := Aggregate(records, policy)
	span.SetAttributes(attribute.Int("duplicates", len(dups)))

	if len(dups) > 0 {
		infrastructure.AddSpanEvent(ctx, "duplicate_codes", map[string]interface{}{
			"source": source.String(),
			"count":  len(dups),
			"codes":  strings.Join(dups, ","),
		})
		e.logger.WarnContext(ctx, "Duplicate codes aggregated",
			slog.String("source", source.String()),
			slog.Int("duplicates", len(dups)),
			slog.Int("records_in", len(records)),
			slog.Int("records_out", len(out)))
	} else {
		e.logger.DebugContext(ctx, "No duplicate codes",
			slog.String("source", source.String()),
			slog.Int("records", len(records)))
	}
	return out, dups
}
