package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock/internal/config"
	"restock/internal/infrastructure"
	"restock/internal/shared/testutil"
)

var (
	supplierHeader = []string{"cod", "denumire", "um", "den_tip", "furnizor", "cantit minima", "cantit maxima"}
	ledgerHeader   = []string{"cod", "denumire", "um", "den_tip", "stoc"}
	floorHeader    = []string{
		"Cod intern", "Departament", "Produs", "Cod de bare", "PLU", "U.M.", "Cota TVA",
		"Stoc curent", "Ultimul pret de achizitie fara TVA", "Valoare achizitie fara TVA",
		"Adaos", "Adaos %", "Pret fara TVA", "Pret cu TVA",
	}
)

// quietRun sends log output to a temp file and resets the global logger
// around the test.
func quietRun(t *testing.T) string {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "restock.log")
	t.Setenv("RESTOCK_LOGGING_OUTPUT", "file")
	t.Setenv("RESTOCK_LOGGING_FILE_PATH", logFile)
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	return logFile
}

type fixtures struct {
	sedona, saga, suppliers string
}

func writeFixtures(t *testing.T) fixtures {
	t.Helper()
	return fixtures{
		suppliers: testutil.WriteWorkbook(t, "furnizori.xlsx", supplierHeader,
			[]any{"001", "Lapte", "l", "Marfa", "Lacto SA", 10, 30},
			[]any{"1", "Lapte 1L", "l", "Marfa", "Alt furnizor", 8, 40},
			[]any{"7", "Cafea", "buc", "Marfa", "Bean SRL", 3, 6},
		),
		saga: testutil.WriteWorkbook(t, "saga.xlsx", ledgerHeader,
			[]any{"1", "Lapte", "l", "Marfa", 2},
			[]any{"3", "Sare", "kg", "Marfa", 1},
		),
		sedona: testutil.WriteWorkbook(t, "sedona.xlsx", floorHeader,
			[]any{"1", "Lactate", "Lapte UHT", nil, nil, "buc", 9, 3, 4.5},
			[]any{"07", "Cafea", "Cafea macinata", nil, nil, "buc", 9, 1},
			[]any{"7", "Cafea", "Cafea", nil, nil, "buc", 9, 1, 20},
		),
	}
}

func TestRunEndToEnd(t *testing.T) {
	logFile := quietRun(t)
	in := writeFixtures(t)
	out := t.TempDir()
	result := filepath.Join(out, "rezultat", "aprovizionare.xlsx")
	csvDir := filepath.Join(out, "csv")
	metricsFile := filepath.Join(out, "metrics", "restock.prom")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-s", in.sedona,
		"--saga", in.saga,
		"-furnizori", in.suppliers,
		"-r", result,
		"-csv-dir", csvDir,
		"-metrics-file", metricsFile,
	}, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stderr.String())

	reorders := testutil.ReadSheet(t, result, config.SheetReorders)
	require.Len(t, reorders, 3)
	assert.Equal(t, "7", reorders[1][0], "Bean SRL sorts before Lacto SA")
	assert.Equal(t, "4", reorders[1][11])
	assert.Equal(t, "1", reorders[2][0])
	assert.Equal(t, "35", reorders[2][11])

	missing := testutil.ReadSheet(t, result, config.SheetMissingSuppliers)
	require.Len(t, missing, 2)
	assert.Equal(t, "3", missing[1][0])

	errs := testutil.ReadSheet(t, result, config.SheetErrors)
	assert.Equal(t, [][]string{
		{"Eroare"},
		{"Coduri interne duplicate in furnizori care au fost agregate: ['1']. "},
		{"Coduri interne duplicate in sedona care au fost agregate: ['7']. "},
	}, errs)

	for _, name := range []string{"aprovizionare.csv", "fara_furnizori.csv", "erori.csv"} {
		assert.FileExists(t, filepath.Join(csvDir, name))
	}

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "restock_reorder_items 2")

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"run_id"`)
	for _, component := range []string{"reader", "engine", "writer", "exporter"} {
		assert.Contains(t, string(logs), `"component":"`+component+`"`)
	}
	assert.Contains(t, string(logs), "Restock run complete")
}

func TestRunMissingInputs(t *testing.T) {
	in := writeFixtures(t)
	missing := filepath.Join(t.TempDir(), "missing.xlsx")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no sedona flag",
			args: []string{"-g", in.saga, "-f", in.suppliers},
			want: "No am gasit fisierul de date pentru Sedona.",
		},
		{
			name: "saga file absent",
			args: []string{"-s", in.sedona, "-g", missing, "-f", in.suppliers},
			want: "No am gasit fisierul de date pentru Saga.",
		},
		{
			name: "default supplier file absent",
			args: []string{"-s", in.sedona, "-g", in.saga},
			want: "No am gasit fisierul de date pentru Furnizatori.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quietRun(t)
			var stderr bytes.Buffer

			code := run(context.Background(), tt.args, &stderr)

			assert.Equal(t, 1, code)
			assert.Equal(t, tt.want+"\n", stderr.String())
		})
	}
}

func TestRunRejectsLegacyWorkbook(t *testing.T) {
	quietRun(t)
	in := writeFixtures(t)
	legacy := filepath.Join(t.TempDir(), "furnizori.xls")
	require.NoError(t, os.WriteFile(legacy, []byte("not a workbook"), 0644))

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-s", in.sedona, "-g", in.saga, "-f", legacy}, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "not an Excel workbook")
}

func TestRunBadFlag(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"-unknown"}, &stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"extra"}, &stderr))
	assert.Equal(t, 0, run(context.Background(), []string{"-h"}, &stderr))
	assert.Contains(t, stderr.String(), "Fisierul cu date pentru Sedona.")
}

func TestParseFlagsAliases(t *testing.T) {
	var stderr bytes.Buffer

	short, err := parseFlags([]string{"-s", "a.xlsx", "-g", "b.xlsx", "-f", "c.xlsx", "-r", "d.xlsx"}, &stderr)
	require.NoError(t, err)
	long, err := parseFlags([]string{"-sedona", "a.xlsx", "--saga", "b.xlsx", "-furnizori", "c.xlsx", "--rezultat", "d.xlsx"}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, short, long)
	assert.Equal(t, "a.xlsx", short.sedona)
	assert.Equal(t, "d.xlsx", short.result)
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Inputs.Saga = "from-config.xlsx"

	applyFlags(cfg, &options{sedona: "s.xlsx", csvDir: "export"})

	assert.Equal(t, "s.xlsx", cfg.Inputs.Sedona)
	assert.Equal(t, "from-config.xlsx", cfg.Inputs.Saga, "empty flags keep config values")
	assert.Equal(t, config.DefaultSuppliersFile, cfg.Inputs.Suppliers)
	assert.Equal(t, "export", cfg.Output.CSVDir)
}
