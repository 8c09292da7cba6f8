// Package mesh builds and repairs the half-edge terrain mesh.
//
// Vertices, half-edges and faces live in arenas owned by a Mesh and refer to
// each other by index. A face's half-edges form a cycle through Next and
// Prev; Opposite links a half-edge to its antiparallel twin on the
// neighboring face, or is NoEdge on the outer border.
package mesh

import (
	"fmt"
	"sync"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// VertexID indexes Mesh vertices.
type VertexID int

// EdgeID indexes Mesh half-edges.
type EdgeID int

// FaceID indexes Mesh faces.
type FaceID int

// Missing references.
const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoFace   FaceID   = -1
)

// NodeType classifies a face.
type NodeType uint8

// Face classifications.
const (
	NodeOpenWater NodeType = iota
	NodeSaltWater
	NodeGrassland
	NodeMountain
	NodeSettlement
	NodeCoastal
	NodeSnow
	// NodeError marks a face whose topology failed a construction check.
	// Consumers must not trust its edges.
	NodeError
)

// String returns a human-readable node type name.
func (t NodeType) String() string {
	switch t {
	case NodeOpenWater:
		return "OpenWater"
	case NodeSaltWater:
		return "SaltWater"
	case NodeGrassland:
		return "Grassland"
	case NodeMountain:
		return "Mountain"
	case NodeSettlement:
		return "Settlement"
	case NodeCoastal:
		return "Coastal"
	case NodeSnow:
		return "Snow"
	case NodeError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWater returns true for open and salt water.
func (t NodeType) IsWater() bool {
	return t == NodeOpenWater || t == NodeSaltWater
}

// Vertex is a mesh corner.
type Vertex struct {
	Position math.Vec3
	// Leaving is one half-edge starting at this vertex; the entry point of
	// its fan.
	Leaving EdgeID

	removed bool
}

// Removed reports whether snapping merged this vertex away.
func (v Vertex) Removed() bool {
	return v.removed
}

// HalfEdge is a directed edge on the boundary of one face. Its start vertex
// is the destination of Prev.
type HalfEdge struct {
	Dest     VertexID
	Next     EdgeID
	Prev     EdgeID
	Opposite EdgeID // NoEdge on the outer border
	Face     FaceID
	// Water is the flow carried along this edge.
	Water float64

	removed bool
}

// Removed reports whether snapping deleted this half-edge.
func (e HalfEdge) Removed() bool {
	return e.removed
}

// Face is a mesh cell around a seed point.
type Face struct {
	Center math.Vec3
	Start  EdgeID
	Type   NodeType

	cache *faceCache
}

// faceCache holds lazily derived face values. Both are pure functions of the
// corner positions, so concurrent first reads compute them once.
type faceCache struct {
	reliefOnce sync.Once
	relief     float64

	boundsOnce sync.Once
	bounds     math.Rect
}

// Options controls construction and repair.
type Options struct {
	// KeyPrecision is the number of decimal digits that identify a vertex.
	KeyPrecision int
	// DegenerateTolerance is the distance under which two segment
	// endpoints are the same point.
	DegenerateTolerance float64
	// OppositeTolerance is the distance allowed between the far endpoints
	// of two twin half-edges. It must be looser than DegenerateTolerance.
	OppositeTolerance float64
	// Snap enables the vertex snapping repair pass.
	Snap bool
	// SnapDistance is the longest edge snapping may collapse.
	SnapDistance float64
	// MaxFanIterations bounds vertex fan walks.
	MaxFanIterations int
}

// DefaultOptions returns the default tolerances.
func DefaultOptions() Options {
	return Options{
		KeyPrecision:        math.DefaultKeyPrecision,
		DegenerateTolerance: 0.001,
		OppositeTolerance:   0.01,
		Snap:                true,
		SnapDistance:        1.0,
		MaxFanIterations:    16,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.KeyPrecision <= 0 {
		o.KeyPrecision = def.KeyPrecision
	}
	if o.DegenerateTolerance <= 0 {
		o.DegenerateTolerance = def.DegenerateTolerance
	}
	if o.OppositeTolerance <= 0 {
		o.OppositeTolerance = def.OppositeTolerance
	}
	if o.SnapDistance <= 0 {
		o.SnapDistance = def.SnapDistance
	}
	if o.MaxFanIterations <= 0 {
		o.MaxFanIterations = def.MaxFanIterations
	}
	return o
}

// Stats summarizes a mesh.
type Stats struct {
	Vertices      int
	Faces         int
	Edges         int
	BoundaryEdges int
	ErrorFaces    int
	Snapped       int
}
