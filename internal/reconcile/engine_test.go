package reconcile

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"restock/internal/shared/testutil"
)

func sampleInputs() Inputs {
	return Inputs{
		Suppliers: []SupplierRecord{
			{Code: "001", Name: "Lapte", SupplierName: "Lacto SA", MinQty: qty("10"), MaxQty: qty("30")},
			{Code: "2", Name: "Paine", SupplierName: "Brutaria", MinQty: qty("5"), MaxQty: qty("15")},
			{Code: "1", Name: "Lapte 1L", SupplierName: "Alt furnizor", MinQty: qty("8"), MaxQty: qty("40")},
			{Code: "7", Name: "Cafea", TypeLabel: "Marfa", SupplierName: "Bean SRL", MinQty: qty("3"), MaxQty: qty("6")},
		},
		Ledger: []LedgerRecord{
			{Code: "1", Name: "Lapte", Unit: "l", TypeLabel: "Marfa", Stock: qty("2")},
			{Code: "2", Name: "Paine", Unit: "buc", TypeLabel: "Marfa", Stock: qty("9")},
			{Code: "3", Name: "Sare", Unit: "kg", TypeLabel: "Marfa", Stock: qty("1")},
		},
		Floor: []FloorRecord{
			{Code: "1", ProductName: "Lapte UHT", Unit: "buc", Stock: qty("3"), LastPurchasePrice: qty("4.5")},
			{Code: "07", ProductName: "Cafea macinata", Unit: "buc", Stock: qty("1")},
			{Code: "7", ProductName: "Cafea", Unit: "buc", Stock: qty("1"), LastPurchasePrice: qty("20")},
			{Code: "X-1", ProductName: "Punga", Unit: "buc"},
		},
	}
}

func TestEngineRun(t *testing.T) {
	logger, logs := testutil.NewLogger(t)
	engine := NewEngine(logger)

	result, err := engine.Run(context.Background(), sampleInputs())
	require.NoError(t, err)

	codes := make([]string, len(result.Reconciled))
	for i, rec := range result.Reconciled {
		codes[i] = rec.Code
	}
	assert.Equal(t, []string{"1", "2", "3", "7", "X-1"}, codes)

	require.Len(t, result.Reorders, 2)
	coffee := result.Reorders[0]
	assert.Equal(t, "7", coffee.Code)
	assert.Equal(t, "Bean SRL", coffee.SupplierName)
	assert.Equal(t, "Cafea macinata", coffee.Name)
	assert.Equal(t, "Marfa", coffee.TypeLabel)
	assertQty(t, "2", coffee.FloorStock)
	assertQty(t, "20", coffee.LastPurchasePrice)
	assertQty(t, "4", coffee.QuantityToOrder)

	milk := result.Reorders[1]
	assert.Equal(t, "1", milk.Code)
	assert.Equal(t, "Lacto SA", milk.SupplierName)
	assertQty(t, "8", milk.MinQty)
	assertQty(t, "40", milk.MaxQty)
	assert.Truef(t, milk.CompositeStock.Equal(qty("5").Decimal), "composite %s", milk.CompositeStock)
	assertQty(t, "35", milk.QuantityToOrder)

	require.Len(t, result.MissingSuppliers, 2)
	assert.Equal(t, "3", result.MissingSuppliers[0].Code)
	assert.Equal(t, "X-1", result.MissingSuppliers[1].Code)

	assert.Equal(t, []string{
		"Coduri interne duplicate in furnizori care au fost agregate: ['1']. ",
		"Coduri interne duplicate in sedona care au fost agregate: ['7']. ",
	}, result.Errors)

	assert.Equal(t, Stats{
		Suppliers:        SourceStats{Records: 4, Unique: 3, Duplicates: 1},
		Ledger:           SourceStats{Records: 3, Unique: 3, Duplicates: 0},
		Floor:            SourceStats{Records: 4, Unique: 3, Duplicates: 1},
		Reconciled:       5,
		Reorders:         2,
		MissingSuppliers: 2,
	}, result.Stats)

	testutil.AssertLogged(t, logs, slog.LevelWarn, "Duplicate codes aggregated")
	testutil.AssertLogged(t, logs, slog.LevelInfo, "Reconciliation complete")
	testutil.AssertNoErrors(t, logs)
}

func TestEngineRunIsRepeatable(t *testing.T) {
	engine := NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	in := sampleInputs()

	first, err := engine.Run(context.Background(), in)
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleInputs(), in, "inputs must not be mutated")
}

func TestEngineRunEmptyInputs(t *testing.T) {
	result, err := NewEngine(nil).Run(context.Background(), Inputs{})
	require.NoError(t, err)

	assert.Empty(t, result.Reconciled)
	assert.Empty(t, result.Reorders)
	assert.Empty(t, result.MissingSuppliers)
	assert.Empty(t, result.Errors)
}

func TestEngineRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewEngine(nil).Run(ctx, sampleInputs())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestEngineWithPolicies(t *testing.T) {
	ledgerPolicy := DefaultLedgerPolicy()
	ledgerPolicy.Stock = Max

	engine := NewEngine(nil, WithLedgerPolicy(ledgerPolicy))
	result, err := engine.Run(context.Background(), Inputs{
		Ledger: []LedgerRecord{
			{Code: "1", Stock: qty("4")},
			{Code: "1", Stock: qty("6")},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Reconciled, 1)
	assertQty(t, "6", result.Reconciled[0].LedgerStock)
}

func TestEngineRunRecordsDuplicateSpanEvents(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	engine := NewEngine(nil, WithTracer(tp.Tracer(TracerName)))
	_, err := engine.Run(context.Background(), sampleInputs())
	require.NoError(t, err)

	events := make(map[string]string)
	for _, span := range recorder.Ended() {
		if span.Name() != "reconcile.aggregate" {
			continue
		}
		for _, event := range span.Events() {
			if event.Name != "duplicate_codes" {
				continue
			}
			attrs := make(map[string]string)
			for _, kv := range event.Attributes {
				attrs[string(kv.Key)] = kv.Value.Emit()
			}
			events[attrs["source"]] = attrs["codes"]
			assert.Equal(t, "1", attrs["count"])
		}
	}

	assert.Equal(t, map[string]string{"furnizori": "1", "sedona": "7"}, events)
}
