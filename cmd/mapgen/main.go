// Package main is the entry point for the Midgard map generator.
package main

import (
	"fmt"
	stdmath "math"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/internal/config"
	"github.com/Faultbox/midgard-mapgen/internal/logger"
	"github.com/Faultbox/midgard-mapgen/internal/mesh"
	"github.com/Faultbox/midgard-mapgen/internal/sampling"
	"github.com/Faultbox/midgard-mapgen/internal/terrain"
	"github.com/Faultbox/midgard-mapgen/internal/tessellation"
	"github.com/Faultbox/midgard-mapgen/pkg/heightfield"
	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Map Generator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.WriteConfig() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	seed := cfg.Map.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	rect := math.NewRect(0, 0, cfg.Map.Width, cfg.Map.Height)

	start := time.Now()
	seeds := sampling.Poisson(rng, rect, sampling.Config{
		MinDistance: cfg.Map.MinDistance,
		MaxTries:    cfg.Map.MaxTries,
	})
	logger.Info("seeds sampled", zap.Int("count", len(seeds)), zap.Int64("seed", seed))

	var provider tessellation.Provider = tessellation.Fortune{}
	diagram, err := provider.Tessellate(seeds, rect)
	if err != nil {
		return fmt.Errorf("tessellate: %w", err)
	}

	m, err := mesh.Build(diagram, meshOptions(cfg.Mesh))
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}

	field, err := loadHeights(cfg, rect, seed)
	if err != nil {
		return err
	}
	updated := m.ApplyHeights(field)
	lo, hi := field.Range()
	logger.Info("heights applied",
		zap.Int("positions", updated),
		zap.Float64("min", lo), zap.Float64("max", hi))

	if err := m.Validate(); err != nil {
		logger.Warn("mesh has defects", zap.Error(err))
	}

	tcfg := terrainConfig(cfg.Terrain)
	counts := terrain.Classify(m, tcfg)
	length := terrain.Rivers(m, tcfg, rng)

	stats := m.Stats()
	fields := []zap.Field{
		zap.Int("faces", stats.Faces),
		zap.Int("vertices", stats.Vertices),
		zap.Int("edges", stats.Edges),
		zap.Int("errorFaces", stats.ErrorFaces),
		zap.Int("snapped", stats.Snapped),
		zap.Int("riverLength", length),
		zap.Duration("elapsed", time.Since(start)),
	}
	for t := mesh.NodeOpenWater; t <= mesh.NodeError; t++ {
		if n := counts[t]; n > 0 {
			fields = append(fields, zap.Int(t.String(), n))
		}
	}
	logger.Info("map generated", fields...)
	return nil
}

// loadHeights reads the configured height field, or generates one covering
// every mesh position including the far border.
func loadHeights(cfg *config.Config, rect math.Rect, seed int64) (*heightfield.Grid, error) {
	if cfg.Height.File != "" {
		grid, err := heightfield.ParseFile(cfg.Height.File)
		if err != nil {
			return nil, fmt.Errorf("load height field: %w", err)
		}
		if float64(grid.Width) <= rect.Width() || float64(grid.Height) <= rect.Height() {
			logger.Warn("height field smaller than the map, uncovered positions stay at 0",
				zap.Int("width", grid.Width), zap.Int("height", grid.Height))
		}
		return grid, nil
	}

	w := int(stdmath.Floor(rect.Width())) + 1
	h := int(stdmath.Floor(rect.Height())) + 1
	grid, err := heightfield.GeneratePerlin(w, h, cfg.Height.Noise, seed)
	if err != nil {
		return nil, fmt.Errorf("generate height field: %w", err)
	}
	return grid, nil
}

func meshOptions(c config.MeshConfig) mesh.Options {
	return mesh.Options{
		KeyPrecision:        c.KeyPrecision,
		DegenerateTolerance: c.DegenerateTolerance,
		OppositeTolerance:   c.OppositeTolerance,
		Snap:                c.Snap,
		SnapDistance:        c.SnapDistance,
		MaxFanIterations:    c.MaxFanIterations,
	}
}

func terrainConfig(c config.TerrainConfig) terrain.Config {
	return terrain.Config{
		SeaLevel:          c.SeaLevel,
		SnowLevel:         c.SnowLevel,
		MountainRelief:    c.MountainRelief,
		Settlements:       c.Settlements,
		RiverSources:      c.RiverSources,
		RiverMinElevation: c.RiverMinElevation,
	}
}
