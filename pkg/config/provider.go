package config

import (
	"github.com/anssilaukkarinen/bfty/internal/types"
	"github.com/anssilaukkarinen/bfty/pkg/envelope"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSites() ([]types.Site, error)
	GetDatasets() ([]DatasetData, error)
	GetEnvelope() (*envelope.Config, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	InputDir string          `yaml:"input_dir"`
	Sites    []types.Site    `yaml:"sites"`
	Datasets []DatasetData   `yaml:"datasets"`
	Envelope envelope.Config `yaml:"envelope"`
	Indoor   IndoorData      `yaml:"indoor"`
	Pipeline PipelineData    `yaml:"pipeline"`
	Output   OutputData      `yaml:"output"`
}

// DatasetData describes one test year and where its hourly table lives
type DatasetData struct {
	Name  string `yaml:"name"`            // e.g. jok2004, matched against site names
	Title string `yaml:"title,omitempty"` // defaults to "<site title> <year>"
	File  string `yaml:"file"`            // relative to input_dir
}

// IndoorData holds the indoor climate settings
type IndoorData struct {
	Window      int     `yaml:"window"`      // averaging window, h
	Temperature float64 `yaml:"temperature"` // constant scenario setpoint, °C
	Centered    bool    `yaml:"centered"`
}

// PipelineData holds run settings
type PipelineData struct {
	Workers       int `yaml:"workers"`
	ReferenceYear int `yaml:"reference_year"`
}

// OutputData holds exporter settings
type OutputData struct {
	Dir         string   `yaml:"dir"`
	Formats     []string `yaml:"formats"`
	SQLitePath  string   `yaml:"sqlite_path,omitempty"`
	MetricsFile string   `yaml:"metrics_file,omitempty"`
}
