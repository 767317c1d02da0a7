// Package envelope computes the exterior loads acting on a building facade:
// the air pressure difference over the envelope from stack and wind effects
// and the wind-driven rain falling on the facade.
package envelope

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownTerrain is returned for a terrain category other than I-IV.
	ErrUnknownTerrain = errors.New("envelope: unknown terrain category")
	// ErrUnknownMethod is returned for an unsupported roughness method.
	ErrUnknownMethod = errors.New("envelope: unknown roughness method")
)

// Default building and site parameters.
const (
	DefaultHeight          = 6.0   // m
	DefaultOrientation     = 180.0 // deg, facade facing south
	DefaultTerrain         = TerrainI
	DefaultTopography      = 1.0
	DefaultObstruction     = 0.8
	DefaultWall            = 0.4
	DefaultFreezeThreshold = -30.0 // °C
)

// Config describes the building and the facade being analysed.
type Config struct {
	Height          float64         `yaml:"height"`      // ground to roof top, m
	Orientation     float64         `yaml:"orientation"` // facade normal, 0 = north, 90 = east
	Terrain         TerrainCategory `yaml:"terrain"`
	Topography      float64         `yaml:"topography"`       // C_T
	Obstruction     float64         `yaml:"obstruction"`      // O
	Wall            float64         `yaml:"wall"`             // W
	FreezeThreshold float64         `yaml:"freeze_threshold"` // precipitation below this is not rain, °C
	RecommendedCpi  bool            `yaml:"recommended_cpi"`  // use cpi = -0.3 throughout

	PressureMethod RoughnessMethod `yaml:"pressure_method"`
	RainMethod     RoughnessMethod `yaml:"rain_method"`
}

// DefaultConfig returns the single-storey south facade in open terrain.
func DefaultConfig() Config {
	return Config{
		Height:          DefaultHeight,
		Orientation:     DefaultOrientation,
		Terrain:         DefaultTerrain,
		Topography:      DefaultTopography,
		Obstruction:     DefaultObstruction,
		Wall:            DefaultWall,
		FreezeThreshold: DefaultFreezeThreshold,
		PressureMethod:  MethodEN1991,
		RainMethod:      MethodISO15927,
	}
}

// Validate checks that the terrain category and both roughness methods are
// known.
func (c Config) Validate() error {
	if _, err := RoughnessCoefficient(c.Height, c.Terrain, c.PressureMethod); err != nil {
		return fmt.Errorf("pressure: %w", err)
	}
	if _, err := RoughnessCoefficient(c.Height, c.Terrain, c.RainMethod); err != nil {
		return fmt.Errorf("wind-driven rain: %w", err)
	}
	if c.Height <= 0 {
		return fmt.Errorf("envelope: building height must be positive, got %v", c.Height)
	}
	return nil
}

// columnName builds names like Pi_I_6.0m_180.0deg.
func (c Config) columnName(prefix string) string {
	return strings.Join([]string{
		prefix,
		string(c.Terrain),
		formatDecimal(c.Height) + "m",
		formatDecimal(c.Orientation) + "deg",
	}, "_")
}

// PressureName is the name of the indoor pressure column.
func (c Config) PressureName() string { return c.columnName("Pi") }

// RainName is the name of the wind-driven rain column.
func (c Config) RainName() string { return c.columnName("WDR") }

// formatDecimal always keeps a decimal point, so 6 becomes "6.0".
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
