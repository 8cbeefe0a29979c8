package geometry

import (
	"math"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
)

// Segment counts for curved outlines.
const (
	circleSegments  = 100
	ellipseSegments = 64
	arcSegments     = 64
	cornerSegments  = 8
)

// Tessellate lowers a shape into vertex streams in local coordinates.
// Fillable shapes emit a fill stream when the style fills and a stroke
// stream when it strokes. Lines and polylines are outlines by nature
// and always emit only a stroke stream. Point clouds always emit a
// fill stream with point topology. Text lowers through a font face
// instead, which owns the glyph metrics.
func Tessellate(s Shape) (Tessellation, error) {
	width := s.style.Width()

	switch s.kind {
	case KindPoint:
		return Tessellation{
			Fill: Geometry{Vertices: []float32{0, 0}, Topology: gfx.Points, VertexSize: 2},
		}, nil

	case KindMultiPoint:
		return Tessellation{
			Fill: Geometry{Vertices: flatten(s.points), Topology: gfx.Points, VertexSize: 2},
		}, nil

	case KindLine, KindPolyline:
		return Tessellation{
			Stroke: strokePolyline(s.points, width, false),
		}, nil

	case KindArc:
		points := arcPoints(s.radiusX, s.start, s.sweep, arcSegments)
		var out Tessellation
		if s.style.HasFill() {
			out.Fill = fan(glm.Vec2{}, points)
		}
		if s.style.HasStroke() {
			out.Stroke = strokePolyline(points, width, false)
		}
		return out, nil

	case KindTriangle:
		var out Tessellation
		if s.style.HasFill() {
			out.Fill = Geometry{Vertices: flatten(s.points), Topology: gfx.Triangles, VertexSize: 2}
		}
		if s.style.HasStroke() {
			out.Stroke = strokePolyline(s.points, width, true)
		}
		return out, nil

	case KindRectangle:
		var out Tessellation
		if s.style.HasFill() {
			out.Fill = Geometry{
				Vertices:   []float32{0, 0, s.width, 0, 0, s.height, s.width, s.height},
				Topology:   gfx.TriangleStrip,
				VertexSize: 2,
			}
		}
		if s.style.HasStroke() {
			out.Stroke = strokePolyline(rectOutline(s.width, s.height), width, true)
		}
		return out, nil

	case KindRoundedRectangle:
		perimeter := roundedRectPerimeter(s.width, s.height, s.radiusX)
		var out Tessellation
		if s.style.HasFill() {
			out.Fill = fan(glm.Vec2{s.width / 2, s.height / 2}, perimeter)
		}
		if s.style.HasStroke() {
			out.Stroke = strokePolyline(perimeter, width, false)
		}
		return out, nil

	case KindCircle:
		perimeter := ellipsePerimeter(s.radiusX, s.radiusX, circleSegments)
		var out Tessellation
		if s.style.HasFill() {
			out.Fill = fan(glm.Vec2{}, perimeter)
		}
		if s.style.HasStroke() {
			out.Stroke = strokePolyline(perimeter, width, false)
		}
		return out, nil

	case KindEllipse:
		perimeter := ellipsePerimeter(s.radiusX, s.radiusY, ellipseSegments)
		var out Tessellation
		if s.style.HasFill() {
			out.Fill = fan(glm.Vec2{}, perimeter)
		}
		if s.style.HasStroke() {
			out.Stroke = strokePolyline(perimeter, width, false)
		}
		return out, nil

	case KindPolygon:
		var out Tessellation
		if s.style.HasFill() {
			out.Fill = Geometry{Vertices: flatten(s.points), Topology: gfx.TriangleFan, VertexSize: 2}
		}
		if s.style.HasStroke() {
			out.Stroke = strokePolyline(s.points, width, true)
		}
		return out, nil

	case KindImage:
		halfW, halfH := s.width/2, s.height/2
		return Tessellation{
			Fill: Geometry{
				Vertices: []float32{
					-halfW, -halfH, 0, 0,
					halfW, -halfH, 1, 0,
					-halfW, halfH, 0, 1,
					halfW, halfH, 1, 1,
				},
				Topology:   gfx.TriangleStrip,
				VertexSize: 4,
			},
		}, nil

	case KindText:
		return Tessellation{}, ErrTextShape

	default:
		return Tessellation{}, ErrUnknownKind
	}
}

func flatten(points []glm.Vec2) []float32 {
	verts := make([]float32, 0, 2*len(points))
	for _, p := range points {
		verts = append(verts, p.X(), p.Y())
	}
	return verts
}

func fan(center glm.Vec2, perimeter []glm.Vec2) Geometry {
	verts := make([]float32, 0, 2*(len(perimeter)+1))
	verts = append(verts, center.X(), center.Y())
	for _, p := range perimeter {
		verts = append(verts, p.X(), p.Y())
	}
	return Geometry{Vertices: verts, Topology: gfx.TriangleFan, VertexSize: 2}
}

// ellipsePerimeter walks the full ellipse once, repeating the first
// point at the end to close the loop. Angles run counterclockwise,
// which is clockwise on a y down screen.
func ellipsePerimeter(radiusX, radiusY float32, segments int) []glm.Vec2 {
	points := make([]glm.Vec2, 0, segments+1)
	for idx := 0; idx < segments; idx++ {
		angle := 2 * math.Pi * float64(idx) / float64(segments)
		points = append(points, glm.Vec2{
			radiusX * float32(math.Cos(angle)),
			-radiusY * float32(math.Sin(angle)),
		})
	}
	// Close on the first point exactly, sin(2π) lands next to zero
	// instead of on it.
	return append(points, points[0])
}

func arcPoints(radius, start, sweep float32, segments int) []glm.Vec2 {
	span := normalizeSweep(sweep)
	points := make([]glm.Vec2, 0, segments+1)
	for idx := 0; idx <= segments; idx++ {
		angle := float64(start) + float64(span)*float64(idx)/float64(segments)
		points = append(points, glm.Vec2{
			radius * float32(math.Cos(angle)),
			-radius * float32(math.Sin(angle)),
		})
	}
	return points
}

func normalizeSweep(sweep float32) float32 {
	span := math.Mod(float64(sweep), 2*math.Pi)
	if span < 0 {
		span += 2 * math.Pi
	}
	return float32(span)
}

func rectOutline(width, height float32) []glm.Vec2 {
	return []glm.Vec2{{0, 0}, {width, 0}, {width, height}, {0, height}}
}

// roundedRectPerimeter walks the four quarter circle corners in top
// left, top right, bottom right, bottom left order and closes the loop
// with the first point.
func roundedRectPerimeter(width, height, radius float32) []glm.Vec2 {
	corners := []struct {
		cx, cy float32
		from   float64
	}{
		{radius, radius, math.Pi},
		{width - radius, radius, 1.5 * math.Pi},
		{width - radius, height - radius, 0},
		{radius, height - radius, 0.5 * math.Pi},
	}
	points := make([]glm.Vec2, 0, 4*(cornerSegments+1)+1)
	for _, corner := range corners {
		for idx := 0; idx <= cornerSegments; idx++ {
			angle := corner.from + 0.5*math.Pi*float64(idx)/float64(cornerSegments)
			points = append(points, glm.Vec2{
				corner.cx + radius*float32(math.Cos(angle)),
				corner.cy + radius*float32(math.Sin(angle)),
			})
		}
	}
	return append(points, points[0])
}

// strokePolyline expands a point list into one flat quad per segment.
// Joins stay butt shaped on purpose, segments do not know about each
// other. Zero length segments are skipped, so a degenerate input
// yields an empty stream.
func strokePolyline(points []glm.Vec2, width float32, closed bool) Geometry {
	if len(points) < 2 {
		return Geometry{Topology: gfx.Triangles, VertexSize: 2}
	}
	if closed && points[0] != points[len(points)-1] {
		points = append(append(make([]glm.Vec2, 0, len(points)+1), points...), points[0])
	}

	half := width / 2
	verts := make([]float32, 0, 12*(len(points)-1))
	for idx := 0; idx+1 < len(points); idx++ {
		a, b := points[idx], points[idx+1]
		dir := b.Sub(a)
		length := dir.Len()
		if length == 0 {
			continue
		}
		nx := -dir.Y() / length * half
		ny := dir.X() / length * half
		verts = append(verts,
			a.X()-nx, a.Y()-ny,
			a.X()+nx, a.Y()+ny,
			b.X()+nx, b.Y()+ny,

			a.X()-nx, a.Y()-ny,
			b.X()+nx, b.Y()+ny,
			b.X()-nx, b.Y()-ny,
		)
	}
	return Geometry{Vertices: verts, Topology: gfx.Triangles, VertexSize: 2}
}
