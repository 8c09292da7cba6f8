// Package config handles map generator configuration loading and management.
package config

import "github.com/Faultbox/midgard-mapgen/pkg/heightfield"

// Config holds all generator settings.
type Config struct {
	Map     MapConfig     `yaml:"map"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Height  HeightConfig  `yaml:"height"`
	Terrain TerrainConfig `yaml:"terrain"`
	Logging LoggingConfig `yaml:"logging"`
}

// MapConfig holds the map extent and seed point sampling settings.
type MapConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	MinDistance float64 `yaml:"min_distance"` // Minimum spacing between seed points
	MaxTries    int     `yaml:"max_tries"`    // Poisson candidates per active point
	Seed        int64   `yaml:"seed"`         // 0 picks a time-based seed
}

// MeshConfig holds half-edge construction and repair tolerances.
type MeshConfig struct {
	KeyPrecision        int     `yaml:"key_precision"` // Decimal digits in vertex keys
	DegenerateTolerance float64 `yaml:"degenerate_tolerance"`
	OppositeTolerance   float64 `yaml:"opposite_tolerance"`
	Snap                bool    `yaml:"snap"`
	SnapDistance        float64 `yaml:"snap_distance"`
	MaxFanIterations    int     `yaml:"max_fan_iterations"`
}

// HeightConfig selects the elevation source.
type HeightConfig struct {
	File  string                  `yaml:"file"` // HFD file; empty generates noise
	Noise heightfield.NoiseConfig `yaml:"noise"`
}

// TerrainConfig holds region typing and river settings.
type TerrainConfig struct {
	SeaLevel          float64 `yaml:"sea_level"`
	SnowLevel         float64 `yaml:"snow_level"`
	MountainRelief    float64 `yaml:"mountain_relief"` // Corner height spread that makes a mountain
	RiverSources      int     `yaml:"river_sources"`
	RiverMinElevation float64 `yaml:"river_min_elevation"`
	Settlements       int     `yaml:"settlements"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Width:       512,
			Height:      512,
			MinDistance: 16,
			MaxTries:    30,
			Seed:        0,
		},
		Mesh: MeshConfig{
			KeyPrecision:        3,
			DegenerateTolerance: 0.001,
			OppositeTolerance:   0.01,
			Snap:                true,
			SnapDistance:        1.0,
			MaxFanIterations:    16,
		},
		Height: HeightConfig{
			File:  "",
			Noise: heightfield.DefaultNoiseConfig(),
		},
		Terrain: TerrainConfig{
			SeaLevel:          0,
			SnowLevel:         60,
			MountainRelief:    12,
			RiverSources:      20,
			RiverMinElevation: 30,
			Settlements:       8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
