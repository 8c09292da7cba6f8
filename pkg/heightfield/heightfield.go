// Package heightfield provides elevation grids and the HFD file format.
package heightfield

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// HFD format errors.
var (
	ErrInvalidMagic       = errors.New("invalid HFD magic: expected 'HFLD'")
	ErrUnsupportedVersion = errors.New("unsupported HFD version")
	ErrTruncatedData      = errors.New("truncated HFD data")
	ErrInvalidDimensions  = errors.New("invalid height field dimensions")
)

const (
	magic        = "HFLD"
	headerSize   = 14
	maxDimension = 8192
)

// Version represents the HFD file version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentVersion is written by Encode.
var CurrentVersion = Version{Major: 1, Minor: 0}

// Grid is a row-major grid of elevations addressed by non-negative integer
// coordinates.
type Grid struct {
	Version Version
	Width   int
	Height  int
	Values  []float32
}

// New returns a zeroed grid.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		Version: CurrentVersion,
		Width:   width,
		Height:  height,
		Values:  make([]float32, width*height),
	}, nil
}

// At returns the elevation at (x, y).
// ok is false if the coordinates are out of bounds.
func (g *Grid) At(x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return float64(g.Values[y*g.Width+x]), true
}

// Set stores an elevation. Out of bounds writes are ignored.
func (g *Grid) Set(x, y int, v float64) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Values[y*g.Width+x] = float32(v)
}

// Range returns the minimum and maximum elevation in the grid.
func (g *Grid) Range() (min, max float64) {
	if len(g.Values) == 0 {
		return 0, 0
	}

	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range g.Values {
		min = math.Min(min, float64(v))
		max = math.Max(max, float64(v))
	}
	return min, max
}

// Parse parses an HFD file from raw bytes.
func Parse(data []byte) (*Grid, error) {
	if len(data) < headerSize {
		return nil, ErrTruncatedData
	}

	if string(data[0:4]) != magic {
		return nil, ErrInvalidMagic
	}

	// Version is stored as [minor, major]
	version := Version{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedData)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedData)
	}

	g, err := New(int(width), int(height))
	if err != nil {
		return nil, err
	}
	g.Version = version

	if err := binary.Read(r, binary.LittleEndian, g.Values); err != nil {
		return nil, fmt.Errorf("%w: reading %d elevations", ErrTruncatedData, len(g.Values))
	}

	return g, nil
}

// ParseFile parses an HFD file from disk.
func ParseFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading HFD file: %w", err)
	}
	return Parse(data)
}

// Encode serializes the grid in HFD format.
func (g *Grid) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.Grow(headerSize + 4*len(g.Values))

	buf.WriteString(magic)
	buf.WriteByte(CurrentVersion.Minor)
	buf.WriteByte(CurrentVersion.Major)

	// bytes.Buffer writes cannot fail
	_ = binary.Write(buf, binary.LittleEndian, uint32(g.Width))
	_ = binary.Write(buf, binary.LittleEndian, uint32(g.Height))
	_ = binary.Write(buf, binary.LittleEndian, g.Values)

	return buf.Bytes()
}

// WriteFile writes the grid to path, creating parent directories as needed.
func (g *Grid) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, g.Encode(), 0644)
}
