package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for settings the pipeline cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the settings describe a buildable map.
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("%w: map size %vx%v", ErrInvalidConfig, c.Map.Width, c.Map.Height)
	}
	if c.Map.MinDistance <= 0 {
		return fmt.Errorf("%w: min_distance must be positive", ErrInvalidConfig)
	}
	if c.Mesh.KeyPrecision < 1 || c.Mesh.KeyPrecision > 9 {
		return fmt.Errorf("%w: key_precision %d out of range 1..9", ErrInvalidConfig, c.Mesh.KeyPrecision)
	}
	if c.Mesh.OppositeTolerance < c.Mesh.DegenerateTolerance {
		return fmt.Errorf("%w: opposite_tolerance must not be tighter than degenerate_tolerance", ErrInvalidConfig)
	}
	if c.Mesh.Snap && c.Mesh.SnapDistance <= 0 {
		return fmt.Errorf("%w: snap_distance must be positive when snapping", ErrInvalidConfig)
	}
	return nil
}
