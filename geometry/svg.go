package geometry

import (
	"math"
	"strings"

	"github.com/algonents/wilhelm-renderer/utility/svg"
)

// ToSVG lowers the shape to an svg element in world coordinates.
func (s Shape) ToSVG() (svg.Element, error) {
	x, y := s.position.X(), s.position.Y()

	switch s.kind {
	case KindPoint:
		e := svg.Element{Name: "circle"}
		e.SetAttr("cx", svg.Number(x))
		e.SetAttr("cy", svg.Number(y))
		e.SetAttr("r", svg.Number(s.style.Width()/2))
		e.SetAttr("fill", s.style.LineColor().Hex())
		return e, nil

	case KindMultiPoint:
		group := svg.Element{Name: "g"}
		for _, p := range s.points {
			dot := svg.Element{Name: "circle"}
			dot.SetAttr("cx", svg.Number(x+p.X()))
			dot.SetAttr("cy", svg.Number(y+p.Y()))
			dot.SetAttr("r", svg.Number(s.style.Width()/2))
			dot.SetAttr("fill", s.style.LineColor().Hex())
			group.AddChild(dot)
		}
		return group, nil

	case KindLine:
		e := svg.Element{Name: "line"}
		e.SetAttr("x1", svg.Number(x+s.points[0].X()))
		e.SetAttr("y1", svg.Number(y+s.points[0].Y()))
		e.SetAttr("x2", svg.Number(x+s.points[1].X()))
		e.SetAttr("y2", svg.Number(y+s.points[1].Y()))
		e.SetAttr("stroke", s.style.LineColor().Hex())
		e.SetAttr("stroke-width", svg.Number(s.style.Width()))
		return e, nil

	case KindPolyline:
		e := svg.Element{Name: "polyline"}
		e.SetAttr("points", s.pointList())
		e.SetAttr("fill", "none")
		e.SetAttr("stroke", s.style.LineColor().Hex())
		e.SetAttr("stroke-width", svg.Number(s.style.Width()))
		return e, nil

	case KindArc:
		e := svg.Element{Name: "path"}
		e.SetAttr("d", s.arcPath())
		s.paintAttrs(&e)
		return e, nil

	case KindTriangle, KindPolygon:
		e := svg.Element{Name: "polygon"}
		e.SetAttr("points", s.pointList())
		s.paintAttrs(&e)
		return e, nil

	case KindRectangle, KindRoundedRectangle:
		e := svg.Element{Name: "rect"}
		e.SetAttr("x", svg.Number(x))
		e.SetAttr("y", svg.Number(y))
		e.SetAttr("width", svg.Number(s.width))
		e.SetAttr("height", svg.Number(s.height))
		if s.kind == KindRoundedRectangle {
			e.SetAttr("rx", svg.Number(s.radiusX))
		}
		s.paintAttrs(&e)
		return e, nil

	case KindCircle:
		e := svg.Element{Name: "circle"}
		e.SetAttr("cx", svg.Number(x))
		e.SetAttr("cy", svg.Number(y))
		e.SetAttr("r", svg.Number(s.radiusX))
		s.paintAttrs(&e)
		return e, nil

	case KindEllipse:
		e := svg.Element{Name: "ellipse"}
		e.SetAttr("cx", svg.Number(x))
		e.SetAttr("cy", svg.Number(y))
		e.SetAttr("rx", svg.Number(s.radiusX))
		e.SetAttr("ry", svg.Number(s.radiusY))
		s.paintAttrs(&e)
		return e, nil

	case KindImage:
		e := svg.Element{Name: "image"}
		e.SetAttr("x", svg.Number(x-s.width/2))
		e.SetAttr("y", svg.Number(y-s.height/2))
		e.SetAttr("width", svg.Number(s.width))
		e.SetAttr("height", svg.Number(s.height))
		e.SetAttr("href", s.source)
		return e, nil

	case KindText:
		e := svg.Element{Name: "text"}
		e.SetAttr("x", svg.Number(x))
		e.SetAttr("y", svg.Number(y+s.textSize))
		e.SetAttr("font-size", svg.Number(s.textSize))
		e.SetAttr("fill", s.style.FillColor.Hex())
		e.Text = s.text
		return e, nil

	default:
		return svg.Element{}, ErrUnknownKind
	}
}

func (s Shape) pointList() string {
	var b strings.Builder
	for idx, p := range s.points {
		if idx > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(svg.Number(s.position.X() + p.X()))
		b.WriteByte(',')
		b.WriteString(svg.Number(s.position.Y() + p.Y()))
	}
	return b.String()
}

// arcPath emits a move plus one arc command. The engine sweeps
// counterclockwise on a y down screen, which is the svg sweep flag 0
// direction.
func (s Shape) arcPath() string {
	span := normalizeSweep(s.sweep)
	startX := s.position.X() + s.radiusX*float32(math.Cos(float64(s.start)))
	startY := s.position.Y() - s.radiusX*float32(math.Sin(float64(s.start)))
	end := float64(s.start + span)
	endX := s.position.X() + s.radiusX*float32(math.Cos(end))
	endY := s.position.Y() - s.radiusX*float32(math.Sin(end))

	large := "0"
	if span > math.Pi {
		large = "1"
	}
	parts := []string{
		"M", svg.Number(startX), svg.Number(startY),
		"A", svg.Number(s.radiusX), svg.Number(s.radiusX),
		"0", large, "0",
		svg.Number(endX), svg.Number(endY),
	}
	return strings.Join(parts, " ")
}

func (s Shape) paintAttrs(e *svg.Element) {
	if s.style.HasFill() {
		e.SetAttr("fill", s.style.FillColor.Hex())
	} else {
		e.SetAttr("fill", "none")
	}
	if s.style.HasStroke() {
		e.SetAttr("stroke", s.style.StrokeColor.Hex())
		e.SetAttr("stroke-width", svg.Number(s.style.Width()))
	}
}
