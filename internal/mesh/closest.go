package mesh

import (
	"sync"

	"github.com/peterstace/simplefeatures/rtree"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// closestIndex is a spatial index over face centers, built on first use.
type closestIndex struct {
	once sync.Once
	tree *rtree.RTree
}

// ClosestFace returns the face whose center is nearest to p horizontally.
func (m *Mesh) ClosestFace(p math.Vec2) FaceID {
	m.closest.once.Do(func() {
		items := make([]rtree.BulkItem, len(m.faces))
		for i, f := range m.faces {
			items[i] = rtree.BulkItem{Box: pointBox(f.Center.XZ()), RecordID: i}
		}
		m.closest.tree = rtree.BulkLoad(items)
	})

	best := NoFace
	_ = m.closest.tree.PrioritySearch(pointBox(p), func(id int) error {
		best = FaceID(id)
		return rtree.Stop
	})
	return best
}

func pointBox(p math.Vec2) rtree.Box {
	return rtree.Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}
