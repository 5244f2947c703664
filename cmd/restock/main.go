package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"

	"restock/internal/config"
	apperrors "restock/internal/errors"
	"restock/internal/exporter"
	"restock/internal/infrastructure"
	"restock/internal/metrics"
	"restock/internal/reconcile"
	"restock/internal/spreadsheet"
	"restock/internal/validation"
)

// options holds the command line. Empty values leave the config untouched.
type options struct {
	sedona      string
	saga        string
	suppliers   string
	result      string
	csvDir      string
	metricsFile string
	configPath  string
}

// inputCheck pairs an input path with the message printed when it is missing.
type inputCheck struct {
	path    string
	missing string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	stringFlag := func(p *string, short, long, usage string) {
		fs.StringVar(p, short, "", usage)
		fs.StringVar(p, long, "", usage+" (same as -"+short+")")
	}
	stringFlag(&opts.sedona, "s", "sedona", "Fisierul cu date pentru Sedona.")
	stringFlag(&opts.saga, "g", "saga", "Fisierul cu date pentru Saga.")
	stringFlag(&opts.suppliers, "f", "furnizori", "Fisierul cu date pentru furnizori (implicit "+config.DefaultSuppliersFile+").")
	stringFlag(&opts.result, "r", "rezultat", "Fisierul in care se vor scrie rezultate (implicit "+config.DefaultResultFile+").")
	fs.StringVar(&opts.csvDir, "csv-dir", "", "Directory for a CSV copy of the result sheets.")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Prometheus textfile to write run metrics to.")
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (default restock.yaml or configs/restock.yaml if present).")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return nil, errors.New("unexpected arguments")
	}
	return opts, nil
}

// applyFlags lets the command line override loaded configuration.
func applyFlags(cfg *config.Config, opts *options) {
	override := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	override(&cfg.Inputs.Sedona, opts.sedona)
	override(&cfg.Inputs.Saga, opts.saga)
	override(&cfg.Inputs.Suppliers, opts.suppliers)
	override(&cfg.Output.Result, opts.result)
	override(&cfg.Output.CSVDir, opts.csvDir)
	override(&cfg.Metrics.TextfilePath, opts.metricsFile)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	applyFlags(cfg, opts)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureRunID(ctx)

	tracing, err := infrastructure.InitializeTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize tracing", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, span := otel.Tracer(config.AppName).Start(ctx, "restock.run")
	defer span.End()

	paths := cfg.Paths()
	logger.InfoContext(ctx, "Starting restock run",
		slog.String("version", config.AppVersion),
		slog.String("sedona", paths.Sedona),
		slog.String("saga", paths.Saga),
		slog.String("furnizori", paths.Suppliers),
		slog.String("rezultat", paths.Result))

	if err := execute(ctx, logger, paths, stderr); err != nil {
		infrastructure.RecordError(ctx, err)
		if !errors.Is(err, errReported) {
			infrastructure.WithError(logger, err).ErrorContext(ctx, "Restock run failed")
			fmt.Fprintf(stderr, "Eroare: %v\n", err)
		}
		return 1
	}
	return 0
}

// errReported marks failures already explained to the user on stderr.
var errReported = errors.New("reported")

func execute(ctx context.Context, logger *slog.Logger, paths *config.Paths, stderr io.Writer) error {
	started := time.Now()
	validator := validation.NewFileValidator(infrastructure.WithComponent(logger, "validation"))

	for _, check := range []inputCheck{
		{path: paths.Sedona, missing: "No am gasit fisierul de date pentru Sedona."},
		{path: paths.Saga, missing: "No am gasit fisierul de date pentru Saga."},
		{path: paths.Suppliers, missing: "No am gasit fisierul de date pentru Furnizatori."},
	} {
		if err := validator.ValidateExcelFile(check.path); err != nil {
			if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
				fmt.Fprintln(stderr, check.missing)
				return fmt.Errorf("%w: %v", errReported, err)
			}
			return err
		}
	}
	if err := validator.ValidateResultFile(paths.Result); err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return apperrors.NewStorageError("failed to prepare output directories", err)
	}

	in, err := spreadsheet.NewReader(infrastructure.WithComponent(logger, "reader")).ReadInputs(ctx, spreadsheet.InputPaths{
		Sedona:    paths.Sedona,
		Saga:      paths.Saga,
		Suppliers: paths.Suppliers,
	})
	if err != nil {
		return err
	}

	result, err := reconcile.NewEngine(infrastructure.WithComponent(logger, "engine")).Run(ctx, in)
	if err != nil {
		return err
	}

	if err := spreadsheet.NewWriter(infrastructure.WithComponent(logger, "writer")).WriteResult(ctx, paths.Result, result); err != nil {
		return err
	}

	if paths.CSVDir != "" {
		if _, err := exporter.NewResultExporter(infrastructure.WithComponent(logger, "exporter")).ExportResult(ctx, paths.CSVDir, result); err != nil {
			return err
		}
	}

	if paths.MetricsFile != "" {
		recorder := metrics.NewRecorder()
		recorder.Observe(result, time.Since(started), time.Now())
		if err := recorder.WriteTextfile(paths.MetricsFile); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics textfile",
				slog.String("file", paths.MetricsFile),
				slog.String("error", err.Error()))
		}
	}

	logger.InfoContext(ctx, "Restock run complete",
		slog.String("rezultat", paths.Result),
		slog.Int("reorders", result.Stats.Reorders),
		slog.Int("missing_suppliers", result.Stats.MissingSuppliers),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("duration", time.Since(started)))
	return nil
}
