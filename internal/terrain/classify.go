// Package terrain assigns region types and river flow to a finished mesh.
package terrain

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/internal/logger"
	"github.com/Faultbox/midgard-mapgen/internal/mesh"
)

// Config holds region typing and river thresholds.
type Config struct {
	SeaLevel       float64
	SnowLevel      float64
	MountainRelief float64 // Corner height spread that makes a mountain
	Settlements    int

	RiverSources      int
	RiverMinElevation float64
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		SeaLevel:          0,
		SnowLevel:         60,
		MountainRelief:    12,
		Settlements:       8,
		RiverSources:      20,
		RiverMinElevation: 30,
	}
}

// Classify sets the node type of every face from its elevation and relief
// and returns how many faces ended up with each type. Faces tagged
// NodeError keep their tag.
//
// Faces below sea level are salt water when they reach the map border
// through other faces below sea level, and open water otherwise.
func Classify(m *mesh.Mesh, cfg Config) map[mesh.NodeType]int {
	faces := m.Faces()

	below := make(map[mesh.FaceID]bool)
	var queue []mesh.FaceID
	for _, f := range faces {
		if m.Face(f).Type == mesh.NodeError || m.Elevation(f) >= cfg.SeaLevel {
			continue
		}
		below[f] = true
		m.SetNodeType(f, mesh.NodeOpenWater)
		if m.IsBoundary(f) {
			m.SetNodeType(f, mesh.NodeSaltWater)
			queue = append(queue, f)
		}
	}

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		for _, n := range m.NeighborFaces(f) {
			if below[n] && m.Face(n).Type == mesh.NodeOpenWater {
				m.SetNodeType(n, mesh.NodeSaltWater)
				queue = append(queue, n)
			}
		}
	}

	for _, f := range faces {
		if below[f] || m.Face(f).Type == mesh.NodeError {
			continue
		}
		m.SetNodeType(f, landType(m, f, cfg))
	}

	settled := placeSettlements(m, faces, cfg.Settlements)

	counts := make(map[mesh.NodeType]int)
	for _, f := range faces {
		counts[m.Face(f).Type]++
	}
	logger.Named("terrain").Debug("faces classified",
		zap.Int("saltWater", counts[mesh.NodeSaltWater]),
		zap.Int("openWater", counts[mesh.NodeOpenWater]),
		zap.Int("coastal", counts[mesh.NodeCoastal]),
		zap.Int("mountain", counts[mesh.NodeMountain]),
		zap.Int("snow", counts[mesh.NodeSnow]),
		zap.Int("settlements", settled))
	return counts
}

func landType(m *mesh.Mesh, f mesh.FaceID, cfg Config) mesh.NodeType {
	switch {
	case m.Elevation(f) >= cfg.SnowLevel:
		return mesh.NodeSnow
	case m.HeightDifference(f) >= cfg.MountainRelief:
		return mesh.NodeMountain
	}
	for _, n := range m.NeighborFaces(f) {
		if m.Face(n).Type == mesh.NodeSaltWater {
			return mesh.NodeCoastal
		}
	}
	return mesh.NodeGrassland
}

// placeSettlements turns the flattest grassland faces into settlements,
// never two side by side.
func placeSettlements(m *mesh.Mesh, faces []mesh.FaceID, limit int) int {
	var candidates []mesh.FaceID
	for _, f := range faces {
		if m.Face(f).Type == mesh.NodeGrassland {
			candidates = append(candidates, f)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return m.HeightDifference(candidates[i]) < m.HeightDifference(candidates[j])
	})

	placed := 0
next:
	for _, f := range candidates {
		if placed >= limit {
			break
		}
		for _, n := range m.NeighborFaces(f) {
			if m.Face(n).Type == mesh.NodeSettlement {
				continue next
			}
		}
		m.SetNodeType(f, mesh.NodeSettlement)
		placed++
	}
	return placed
}
