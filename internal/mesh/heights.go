package mesh

import stdmath "math"

// HeightSampler is a grid of elevations addressed by integer coordinates.
type HeightSampler interface {
	At(x, y int) (float64, bool)
}

// ApplyHeights sets the elevation of every vertex and face center from h,
// sampled at the floor of the horizontal position. Positions outside h keep
// their elevation. It returns the number of positions updated.
func (m *Mesh) ApplyHeights(h HeightSampler) int {
	updated := 0
	for i := range m.vertices {
		v := &m.vertices[i]
		if v.removed {
			continue
		}
		if y, ok := sample(h, v.Position.X, v.Position.Z); ok {
			v.Position = v.Position.WithElevation(y)
			updated++
		}
	}
	for i := range m.faces {
		f := &m.faces[i]
		if y, ok := sample(h, f.Center.X, f.Center.Z); ok {
			f.Center = f.Center.WithElevation(y)
			updated++
		}
		f.cache = &faceCache{}
	}
	return updated
}

func sample(h HeightSampler, x, z float64) (float64, bool) {
	if x < 0 || z < 0 {
		return 0, false
	}
	return h.At(int(stdmath.Floor(x)), int(stdmath.Floor(z)))
}
