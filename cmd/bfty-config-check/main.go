package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anssilaukkarinen/bfty/pkg/config"
	"github.com/anssilaukkarinen/bfty/pkg/envelope"
)

func main() {
	var (
		yamlFile = flag.String("config", "config.yaml", "Path to YAML configuration file")
		envFile  = flag.String("env", "", "Optional .env file with BFTY_* overrides")
	)
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration Check")
	fmt.Println("===================")

	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	provider := config.NewYAMLProvider(*yamlFile)
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Configuration is valid")

	fmt.Printf("\nSites (%d):\n", len(cfg.Sites))
	for _, s := range cfg.Sites {
		fmt.Printf("  %-6s %-12s lat %6.2f  lon %6.2f  h %4.0f m  UTC%+.0f\n",
			s.Name, s.Title, s.Latitude, s.Longitude, s.HeightAMSL, s.TimeZone)
	}

	fmt.Printf("\nDatasets (%d):\n", len(cfg.Datasets))
	for _, d := range cfg.Datasets {
		site, err := config.ResolveSite(cfg.Sites, d.Name)
		if err != nil {
			fmt.Printf("  ✗ %s: %v\n", d.Name, err)
			continue
		}
		fmt.Printf("  ✓ %-10s %-20s %s\n", d.Name, d.TitleFor(site), d.File)
	}

	e := cfg.Envelope
	fmt.Println("\nEnvelope:")
	fmt.Printf("  height %.1f m, orientation %.1f°, terrain %s\n", e.Height, e.Orientation, e.Terrain)
	fmt.Printf("  C_T %.2f, O %.2f, W %.2f, freeze threshold %.1f °C, recommended cpi %t\n",
		e.Topography, e.Obstruction, e.Wall, e.FreezeThreshold, e.RecommendedCpi)
	printRoughness("pressure", e, e.PressureMethod)
	printRoughness("rain", e, e.RainMethod)
	fmt.Printf("  columns %s, %s\n", e.PressureName(), e.RainName())

	fmt.Println("\nIndoor:")
	fmt.Printf("  window %d h (centered %t), constant scenario %.1f °C\n",
		cfg.Indoor.Window, cfg.Indoor.Centered, cfg.Indoor.Temperature)

	fmt.Println("\nOutput:")
	fmt.Printf("  dir %s, formats %v\n", cfg.Output.Dir, cfg.Output.Formats)
	if cfg.Output.SQLitePath != "" {
		fmt.Printf("  sqlite %s\n", cfg.Output.SQLitePath)
	}
	if cfg.Output.MetricsFile != "" {
		fmt.Printf("  metrics %s\n", cfg.Output.MetricsFile)
	}
}

func printRoughness(label string, e envelope.Config, m envelope.RoughnessMethod) {
	c, err := envelope.RoughnessCoefficient(e.Height, e.Terrain, m)
	if err != nil {
		fmt.Printf("  %s roughness: %v\n", label, err)
		return
	}
	fmt.Printf("  %s roughness (%s): c_R = %.4f\n", label, m, c)
}
