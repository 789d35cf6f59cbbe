package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/shipstream/invoice-extractor/constants"
	"github.com/shipstream/invoice-extractor/internal/async"
	"github.com/shipstream/invoice-extractor/internal/common"
	"github.com/shipstream/invoice-extractor/internal/entity"
	"github.com/shipstream/invoice-extractor/internal/export"
	"github.com/shipstream/invoice-extractor/internal/pdfload"
	"github.com/shipstream/invoice-extractor/internal/pipeline"
	"github.com/shipstream/invoice-extractor/internal/repository"
)

// fileResult is one invoice's outcome, written by exactly one worker.
type fileResult struct {
	path    string
	pages   int
	res     pipeline.Result
	outPath string
	started time.Time
	err     error
}

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	cfg := common.LoadConfig()

	var (
		input    = flag.String("input", "", "PDF invoice or directory of invoices (required)")
		output   = flag.String("output", cfg.Output.Dir, "directory for JSON output")
		xlsxPath = flag.String("xlsx", cfg.Output.XLSXPath, "optional XLSX workbook path for all shipments")
		dbPath   = flag.String("db", cfg.Store.Path, "optional SQLite path for run history")
		workers  = flag.Int("workers", 4, "parallel invoices")
	)
	flag.Parse()

	if *input == "" {
		printError("Error: --input is required\n")
		os.Exit(1)
	}

	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	if err := os.MkdirAll(*output, 0o755); err != nil {
		log.Fatalf("creating output dir: %v", err)
	}

	inputs, err := collectInvoices(*input)
	if err != nil {
		log.Fatalf("collecting inputs: %v", err)
	}
	if len(inputs) == 0 {
		log.Fatalf("no PDF invoices under %s", *input)
	}

	ctx := context.Background()
	loader := pdfload.New(nil)
	pipe := pipeline.New(nil)

	var store *repository.Store
	if *dbPath != "" {
		store, err = repository.Open(*dbPath)
		if err != nil {
			log.Fatalf("opening run store: %v", err)
		}
		defer store.Close()
	}

	// One result slot per input; workers write disjoint slots, and the
	// post-drain pass below walks them in submission order.
	results := make([]fileResult, len(inputs))
	pool := async.NewPool(func(_ context.Context, job async.Job) {
		r := &results[job.Index]
		r.path = job.Path
		r.started = time.Now().UTC()

		pages, err := loader.Load(job.Path)
		if err != nil {
			r.err = common.WrapError(err, "load")
			return
		}
		r.pages = len(pages)
		r.res = pipe.Run(pdfload.Texts(pages))
		r.outPath = export.JSONPath(*output, job.Path)
		r.err = export.WriteJSON(r.outPath, r.res.Shipments)
	}, nil, async.WithWorkers(*workers))

	for i, path := range inputs {
		_ = pool.Enqueue(ctx, async.Job{Index: i, Path: path, SubmittedAt: time.Now()})
	}
	pool.Shutdown(ctx)

	var all []entity.Shipment
	failures := 0
	for _, r := range results {
		if r.err != nil {
			log.Errorw("invoice failed", "path", r.path, "err", r.err)
			failures++
			continue
		}
		for _, w := range r.res.Warnings {
			log.Warnw("extraction warning", "path", r.path, "warning", w)
		}
		log.Infow("invoice done", "path", r.path, "shipments", len(r.res.Shipments), "out", r.outPath)

		if store != nil {
			run := repository.RunFor(r.res.RunID, r.path, r.pages, len(r.res.Shipments), r.res.Warnings, r.started)
			if err := store.SaveRun(ctx, run, r.res.Shipments); err != nil {
				log.Errorw("saving run", "path", r.path, "err", err)
			}
		}
		all = append(all, r.res.Shipments...)
	}

	if *xlsxPath != "" {
		if err := export.NewXLSXWriter(nil).Write(*xlsxPath, all); err != nil {
			log.Fatalf("writing workbook: %v", err)
		}
	}

	if failures > 0 {
		log.Fatalf("%d of %d invoices failed", failures, len(inputs))
	}
}

// collectInvoices accepts a single PDF or a directory and returns the PDF
// paths to process, in lexical order.
func collectInvoices(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(e.Name()))
		if _, ok := constants.AllowedExtensions[ext]; ok {
			out = append(out, filepath.Join(input, e.Name()))
		}
	}
	return out, nil
}
