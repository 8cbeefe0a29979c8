// Package geometry defines the shape vocabulary of the engine and
// lowers shapes into the vertex streams that meshes upload.
package geometry

import (
	"github.com/algonents/wilhelm-renderer/gfx"
)

// Geometry is a tessellated vertex stream on the CPU side. Vertices
// holds VertexSize float32 values per vertex, position first, texture
// coordinates after it when VertexSize is 4.
type Geometry struct {
	Vertices   []float32
	Topology   gfx.Topology
	VertexSize int
}

// VertexCount returns the number of vertices in the stream.
func (g Geometry) VertexCount() int {
	if g.VertexSize == 0 {
		return 0
	}
	return len(g.Vertices) / g.VertexSize
}

// IsEmpty reports whether the stream has no vertices.
func (g Geometry) IsEmpty() bool {
	return g.VertexCount() == 0
}

// Tessellation is the output of lowering a shape: a fill stream, a
// stroke stream, or both, depending on the shape and its style.
type Tessellation struct {
	Fill   Geometry
	Stroke Geometry
}
