// cmd/pgq/main.go

// pgq runs a single query against the configured database and prints the
// result table.
//
//	pgq -query "SELECT symbol, close FROM bars WHERE symbol = $1" AAPL
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/quantpool/pgtable"
	"github.com/quantpool/pgtable/internal/pkg/config"
	"github.com/quantpool/pgtable/internal/pkg/logger"
	"github.com/quantpool/pgtable/table"
)

func main() {
	var (
		query   = flag.String("query", "", "SQL query to execute (required)")
		format  = flag.String("format", "text", "output format: text, json, csv, xlsx")
		output  = flag.String("output", "", "output file, defaults to stdout")
		timeout = flag.Duration("timeout", 30*time.Second, "query timeout")
	)
	flag.Parse()

	if err := run(*query, *format, *output, *timeout, flag.Args()); err != nil {
		slog.Error("pgq failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(query, format, output string, timeout time.Duration, rawArgs []string) error {
	if query == "" {
		return fmt.Errorf("-query is required")
	}

	slogger := logger.SetupLogger(os.Getenv("LOG_LEVEL"), "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	dsn, err := cfg.ResolveDSN(ctx, slogger)
	if err != nil {
		return err
	}

	db, err := pgtable.New(ctx, &pgtable.Config{
		DSN:            dsn,
		MinConnections: cfg.Database.MinConnections,
		MaxConnections: cfg.Database.MaxConnections,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		return err
	}
	defer db.Close()

	args := make([]any, len(rawArgs))
	for i, a := range rawArgs {
		args[i] = a
	}

	t, err := db.FetchAsTable(ctx, query, args...)
	if err != nil {
		return err
	}

	w, closeFn, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeFn()

	return writeTable(w, t, format)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writeTable(w io.Writer, t *table.Table, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case "csv":
		return t.WriteCSV(w)
	case "xlsx":
		return t.WriteXLSX(w, "Results")
	case "text":
		return writeText(w, t)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, t *table.Table) error {
	if t.IsEmpty() {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, col := range t.Columns() {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for i := 0; i < t.NumRows(); i++ {
		for j, v := range t.Row(i) {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, v)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
