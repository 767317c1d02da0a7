package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/anssilaukkarinen/bfty/internal/log"
	"github.com/anssilaukkarinen/bfty/internal/storage/sqlite"
	"github.com/anssilaukkarinen/bfty/internal/timegrid"
)

func main() {
	dbPath := flag.String("db", "output/results.db", "Path to the SQLite results database")
	runID := flag.String("run", "", "Run ID to inspect")
	dataset := flag.String("dataset", "", "Dataset name, e.g. jok2004")
	column := flag.String("column", "", "Column to dump as CSV (requires -dataset)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if *runID == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -db <results.db> -run <id> [-dataset <name> [-column <name>]]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := inspect(context.Background(), *dbPath, *runID, *dataset, *column); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func inspect(ctx context.Context, dbPath, runID, dataset, column string) error {
	// The grid is only used for writing; reads take the year from the run.
	grid, err := timegrid.New(timegrid.DefaultReferenceYear)
	if err != nil {
		return err
	}
	store, err := sqlite.Open(dbPath, grid)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s (bfty %s)\n", run.ID, run.Version)
	fmt.Printf("  started  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if !run.FinishedAt.IsZero() {
		fmt.Printf("  finished %s, %d datasets\n", run.FinishedAt.Format("2006-01-02 15:04:05"), run.Datasets)
	}
	fmt.Printf("  reference year %d\n", run.ReferenceYear)

	if dataset == "" {
		return nil
	}

	rain, err := store.AnnualRain(ctx, runID, dataset)
	if err != nil {
		return err
	}
	fmt.Printf("  %s annual wind-driven rain %.2f l/(m2 a)\n", dataset, rain)

	if column == "" {
		return nil
	}

	values, err := store.Series(ctx, runID, dataset, column)
	if err != nil {
		return err
	}

	runGrid, err := timegrid.New(run.ReferenceYear)
	if err != nil {
		return err
	}
	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"time", column}); err != nil {
		return err
	}
	for i, v := range values {
		rec := []string{runGrid.Time(i).Format("2006-01-02T15:04"), strconv.FormatFloat(v, 'g', -1, 64)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
