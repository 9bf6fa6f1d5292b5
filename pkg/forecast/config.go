package forecast

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ForecastConfig contains all configurable parameters that influence
// forecast outcomes. This centralizes all magic numbers and constants for
// easy adjustment; values can also be supplied from a yaml file.
type ForecastConfig struct {
	// === STORAGE ===
	DbPath string `yaml:"dbPath"` // The location of the sqlite match database

	// === RATING ENGINE ===
	KFactor    float64 `yaml:"kFactor"`    // Elo K factor (default: 20)
	BaseRating float64 `yaml:"baseRating"` // Rating assigned to teams on first sight (default: 1500)

	// === STRENGTH FITTER ===
	FallbackLeagueAverage float64 `yaml:"fallbackLeagueAverage"` // League average goals when no history exists (default: 1.4)
	NeutralFactor         float64 `yaml:"neutralFactor"`         // Attack/defense factor for teams with no data (default: 1.0)

	// === FORECASTER ===
	HomeAdvantage float64 `yaml:"homeAdvantage"` // Multiplier applied to the home side's goal rate (default: 1.05)
	TopScorelines int     `yaml:"topScorelines"` // Number of ranked scorelines emitted per prediction (default: 6)
}

// ScoreGridBound is the inclusive per-side goal bound of the scoreline grid.
// The grid is deliberately truncated at 6 rather than summed to infinity;
// Poisson mass beyond 6 goals per side is negligible at realistic rates.
// Fixed rather than configurable so that ranked scorelines are reproducible.
const ScoreGridBound = 6

// DefaultForecastConfig returns the default configuration with all standard values
func DefaultForecastConfig() *ForecastConfig {
	return &ForecastConfig{
		DbPath: "matches.db",

		KFactor:    20.0,
		BaseRating: 1500.0,

		FallbackLeagueAverage: 1.4,
		NeutralFactor:         1.0,

		HomeAdvantage: 1.05,
		TopScorelines: 6,
	}
}

// Global configuration instance
var Config *ForecastConfig

func init() {
	Config = DefaultForecastConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *ForecastConfig) error {
	if err := ValidateConfig(newConfig); err != nil {
		return err
	}
	Config = newConfig
	return nil
}

// LoadConfig reads a yaml config file over the top of the defaults and
// installs the result as the global configuration
func LoadConfig(path string) (*ForecastConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultForecastConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := UpdateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *ForecastConfig) error {
	if config.KFactor <= 0 || config.KFactor > 100 {
		return fmt.Errorf("KFactor must be between 0 and 100, got: %f", config.KFactor)
	}

	if config.BaseRating <= 0 {
		return fmt.Errorf("BaseRating must be positive, got: %f", config.BaseRating)
	}

	if config.FallbackLeagueAverage <= 0 {
		return fmt.Errorf("FallbackLeagueAverage must be positive, got: %f", config.FallbackLeagueAverage)
	}

	if config.NeutralFactor <= 0 {
		return fmt.Errorf("NeutralFactor must be positive, got: %f", config.NeutralFactor)
	}

	if config.HomeAdvantage < 1.0 || config.HomeAdvantage > 1.5 {
		return fmt.Errorf("HomeAdvantage should be between 1.0 and 1.5, got: %f", config.HomeAdvantage)
	}

	maxScorelines := (ScoreGridBound + 1) * (ScoreGridBound + 1)
	if config.TopScorelines < 1 || config.TopScorelines > maxScorelines {
		return fmt.Errorf("TopScorelines must be between 1 and %d, got: %d", maxScorelines, config.TopScorelines)
	}

	return nil
}
