// hftool is a CLI utility for working with HFD height field files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/midgard-mapgen/pkg/heightfield"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "generate", "gen":
		cmdGenerate(args)
	case "sample":
		cmdSample(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hftool - HFD height field utility

Usage:
  hftool <command> [options]

Commands:
  info <file.hfd>                       Show height field information
  generate [-w N -h N -seed N] <file>   Write a Perlin noise height field
  sample <file.hfd> <x> <y>             Print the elevation at a cell

Examples:
  hftool generate -w 513 -h 513 -seed 42 terrain.hfd
  hftool info terrain.hfd
  hftool sample terrain.hfd 100 200`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hftool info <file.hfd>")
		os.Exit(1)
	}

	grid, err := heightfield.ParseFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lo, hi := grid.Range()
	fmt.Printf("File:    %s\n", args[0])
	fmt.Printf("Version: %s\n", grid.Version)
	fmt.Printf("Size:    %dx%d\n", grid.Width, grid.Height)
	fmt.Printf("Range:   %.2f .. %.2f\n", lo, hi)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	width := fs.Int("w", 513, "Grid width")
	height := fs.Int("h", 513, "Grid height")
	seed := fs.Int64("seed", 1, "Noise seed")
	def := heightfield.DefaultNoiseConfig()
	octaves := fs.Int("octaves", int(def.Octaves), "Noise octaves")
	scale := fs.Float64("scale", def.Scale, "Grid cells per noise unit")
	amplitude := fs.Float64("amplitude", def.Amplitude, "Peak elevation swing")
	offset := fs.Float64("offset", def.Offset, "Elevation added to every cell")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hftool generate [-w N -h N -seed N] <file.hfd>")
		os.Exit(1)
	}

	cfg := def
	cfg.Octaves = int32(*octaves)
	cfg.Scale = *scale
	cfg.Amplitude = *amplitude
	cfg.Offset = *offset

	grid, err := heightfield.GeneratePerlin(*width, *height, cfg, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := grid.WriteFile(fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	lo, hi := grid.Range()
	fmt.Printf("Wrote %s (%dx%d, %.2f .. %.2f)\n", fs.Arg(0), grid.Width, grid.Height, lo, hi)
}

func cmdSample(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: hftool sample <file.hfd> <x> <y>")
		os.Exit(1)
	}

	x, errX := strconv.Atoi(args[1])
	y, errY := strconv.Atoi(args[2])
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "Error: coordinates must be integers")
		os.Exit(1)
	}

	grid, err := heightfield.ParseFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v, ok := grid.At(x, y)
	if !ok {
		fmt.Fprintf(os.Stderr, "(%d, %d) is outside the %dx%d grid\n", x, y, grid.Width, grid.Height)
		os.Exit(1)
	}
	fmt.Printf("%.4f\n", v)
}
