package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagSeed        = flag.Int64("seed", 0, "Random seed (0 keeps the configured seed)")
	flagWidth       = flag.Float64("width", 0, "Map width")
	flagHeight      = flag.Float64("height", 0, "Map height")
	flagNoSnap      = flag.Bool("no-snap", false, "Disable the vertex snapping repair pass")
	flagHeightfield = flag.String("heightfield", "", "Path to an HFD height field")
	flagWriteConfig = flag.Bool("write-config", false, "Save the effective config to the config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfig reports whether --write-config was given.
func WriteConfig() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Map.Seed = *flagSeed
	}
	if *flagWidth > 0 {
		cfg.Map.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Map.Height = *flagHeight
	}
	if *flagNoSnap {
		cfg.Mesh.Snap = false
	}
	if *flagHeightfield != "" {
		cfg.Height.File = *flagHeightfield
	}
}
