package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anssilaukkarinen/bfty/internal/types"
	"github.com/anssilaukkarinen/bfty/pkg/envelope"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig reads the YAML file, fills in defaults, applies environment
// overrides and validates the result.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := Parse(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// Parse decodes a YAML document into a validated configuration.
func Parse(data []byte) (*ConfigData, error) {
	config := Defaults()
	// Envelope and indoor blocks are decoded over their defaults so a
	// partial block only overrides what it names.
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if len(config.Sites) == 0 {
		config.Sites = DefaultSites()
	}
	if len(config.Output.Formats) == 0 {
		config.Output.Formats = DefaultFormats()
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (y *YAMLProvider) loaded() (*ConfigData, error) {
	if y.config == nil {
		return y.LoadConfig()
	}
	return y.config, nil
}

// GetSites returns the site registry
func (y *YAMLProvider) GetSites() ([]types.Site, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return c.Sites, nil
}

// GetDatasets returns the dataset list
func (y *YAMLProvider) GetDatasets() ([]DatasetData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return c.Datasets, nil
}

// GetEnvelope returns the building envelope configuration
func (y *YAMLProvider) GetEnvelope() (*envelope.Config, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Envelope, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}
