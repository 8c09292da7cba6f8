package terrain

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/internal/logger"
	"github.com/Faultbox/midgard-mapgen/internal/mesh"
)

// Rivers traces up to cfg.RiverSources rivers downhill from random high
// vertices, adding one unit of water to every edge each river crosses. A
// river ends in a pit, on a vertex it already crossed, or at a vertex
// touching water. It returns the number of edges crossed by all rivers.
func Rivers(m *mesh.Mesh, cfg Config, rng *rand.Rand) int {
	var sources []mesh.VertexID
	for _, v := range m.Vertices() {
		if m.VertexElevation(v) >= cfg.RiverMinElevation && !touchesWater(m, v) {
			sources = append(sources, v)
		}
	}
	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > cfg.RiverSources {
		sources = sources[:cfg.RiverSources]
	}

	total := 0
	for _, src := range sources {
		total += traceRiver(m, src)
	}

	logger.Named("terrain").Debug("rivers traced",
		zap.Int("sources", len(sources)),
		zap.Int("length", total))
	return total
}

func traceRiver(m *mesh.Mesh, v mesh.VertexID) int {
	visited := map[mesh.VertexID]bool{v: true}
	length := 0
	for !touchesWater(m, v) {
		e := m.DownslopeEdge(v)
		if e == mesh.NoEdge {
			break
		}
		next := m.Edge(e).Dest
		if visited[next] {
			break
		}
		m.AddWater(e, 1)
		visited[next] = true
		v = next
		length++
	}
	return length
}

func touchesWater(m *mesh.Mesh, v mesh.VertexID) bool {
	for _, f := range m.VertexFaces(v) {
		if m.Face(f).Type.IsWater() {
			return true
		}
	}
	return false
}
