package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/export"
	"github.com/joseph-ayodele/bizledger/internal/importer"
	"github.com/joseph-ayodele/bizledger/internal/period"
	repo "github.com/joseph-ayodele/bizledger/internal/repository"
	"github.com/joseph-ayodele/bizledger/internal/session"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func parseDay(name, value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		printError("Error: invalid --%s date format, use YYYY-MM-DD: %v\n", name, err)
		os.Exit(1)
	}
	return &parsed
}

// options are the parsed command line flags.
type options struct {
	dir      string
	db       string
	out      string
	report   export.Kind
	format   export.Format
	period   period.Token
	from, to *time.Time
	lenient  bool
	identity session.Fixed
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory of CSV/XLSX files to import (required)")
		db       = flag.String("db", ":memory:", "local SQLite path, :memory: keeps nothing")
		out      = flag.String("out", "", "output report path (optional, defaults to parent directory)")
		kind     = flag.String("report", string(export.KindProfitLoss), "report to export")
		format   = flag.String("format", string(export.FormatXLSX), "report format: xlsx or pdf")
		token    = flag.String("period", string(period.CurrentMonth), "report period")
		fromStr  = flag.String("from", "", "custom period start YYYY-MM-DD")
		toStr    = flag.String("to", "", "custom period end YYYY-MM-DD")
		lenient  = flag.Bool("lenient", false, "accept rows that fail the strict column checks")
		ownerStr = flag.String("owner", "", "owner id to import as (optional)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	opts := options{
		dir:      *dir,
		db:       *db,
		out:      *out,
		report:   export.Kind(*kind),
		format:   export.Format(*format),
		period:   period.Token(*token),
		from:     parseDay("from", *fromStr),
		to:       parseDay("to", *toStr),
		lenient:  *lenient,
		identity: session.Fixed(uuid.Nil),
	}
	if opts.from != nil || opts.to != nil {
		opts.period = period.Custom
	}
	if *ownerStr != "" {
		id, err := uuid.Parse(*ownerStr)
		if err != nil {
			printError("Error: invalid --owner: %v\n", err)
			os.Exit(1)
		}
		opts.identity = session.Fixed(id)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	os.Exit(run(context.Background(), opts, logger))
}

// run imports opts.dir and writes the report. It returns the process exit
// code so deferred cleanup runs before the process exits.
func run(ctx context.Context, opts options, logger *slog.Logger) int {
	cfg := common.LoadConfig()
	cfg.Database.DSN = ""
	stores, err := repo.InitStores(ctx, cfg, opts.db, logger)
	if err != nil {
		printError("Error: failed to open local store: %v\n", err)
		return 1
	}
	defer stores.Close()

	sess := session.New(stores.Local, nil, opts.identity, logger)

	var importOpts []importer.Option
	if opts.lenient {
		importOpts = append(importOpts, importer.WithLenientSchemas())
	}
	imp := importer.NewService(sess, logger, importOpts...)

	fmt.Printf("Importing files from: %s\n", opts.dir)
	results, stats, err := imp.ImportDirectory(ctx, opts.dir, true)
	if err != nil {
		printError("Error: import failed: %v\n", err)
		return 1
	}
	for _, r := range results {
		if r.Err != "" {
			printError("  %s: %s\n", r.Path, r.Err)
		}
	}

	exporter := export.NewService(sess, cfg.Report, logger)
	file, err := exporter.Export(ctx, export.Request{
		Kind:        opts.report,
		Format:      opts.format,
		Period:      opts.period,
		CustomStart: opts.from,
		CustomEnd:   opts.to,
	})
	if err != nil {
		printError("Error: export failed: %v\n", err)
		return 1
	}

	out := opts.out
	if out == "" {
		out = filepath.Join(filepath.Dir(filepath.Clean(opts.dir)), file.Name)
	}
	if err := os.WriteFile(out, file.Data, 0o644); err != nil {
		printError("Error: failed to write %s: %v\n", out, err)
		return 1
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Files scanned:   %d\n", stats.Scanned)
	fmt.Printf("  Files matched:   %d\n", stats.Matched)
	fmt.Printf("  Succeeded:       %d\n", stats.Succeeded)
	fmt.Printf("  Failed:          %d\n", stats.Failed)
	fmt.Printf("  Rows inserted:   %d\n", stats.Inserted)
	fmt.Printf("  Report written:  %s (%d bytes)\n", out, len(file.Data))
	return 0
}
