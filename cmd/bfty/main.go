package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/anssilaukkarinen/bfty/internal/constants"
	"github.com/anssilaukkarinen/bfty/internal/log"
	"github.com/anssilaukkarinen/bfty/internal/pipeline"
	"github.com/anssilaukkarinen/bfty/internal/storage/sqlite"
	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	envFile := flag.String("env", "", "Optional .env file with BFTY_* overrides (default: ./.env if present)")
	only := flag.String("only", "", "Comma-separated dataset names to process (default: all)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("bfty %s\n", constants.Version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := config.LoadEnvFile(*envFile); err != nil {
		log.Errorf("Failed to load environment: %v", err)
		os.Exit(1)
	}

	cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfgData, splitList(*only)); err != nil {
		log.Errorf("Run failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgData *config.ConfigData, only []string) error {
	opts := []pipeline.Option{pipeline.WithLogger(log.GetSugaredLogger())}

	if path := cfgData.Output.SQLitePath; path != "" {
		grid, err := timegrid.New(cfgData.Pipeline.ReferenceYear)
		if err != nil {
			return err
		}
		store, err := sqlite.Open(path, grid)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, pipeline.WithStore(store))
	}

	p, err := pipeline.New(cfgData, opts...)
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx, only)
	if err != nil {
		return err
	}

	for _, r := range summary.Results {
		log.Infow("dataset written",
			"dataset", r.Dataset,
			"pressure_column", r.Pressure.Name,
			"rain_column", r.Rain.Name,
			"annual_rain", r.Rain.AnnualTotal,
		)
	}
	log.Infof("Run %s finished, output in %s", summary.RunID, cfgData.Output.Dir)
	return nil
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider = config.NewYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return cfgData, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
