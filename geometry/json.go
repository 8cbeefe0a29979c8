package geometry

import (
	"encoding/json"
	"errors"
	"fmt"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
)

// ErrDocumentKind is returned when a document names a shape kind that
// does not exist.
var ErrDocumentKind = errors.New("document names an unknown shape kind")

type styleDocument struct {
	Mode        string  `json:"mode"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float32 `json:"stroke_width,omitempty"`
}

type shapeDocument struct {
	Kind     string        `json:"kind"`
	Style    styleDocument `json:"style"`
	X        float32       `json:"x,omitempty"`
	Y        float32       `json:"y,omitempty"`
	Points   [][2]float32  `json:"points,omitempty"`
	Width    float32       `json:"width,omitempty"`
	Height   float32       `json:"height,omitempty"`
	RadiusX  float32       `json:"radius_x,omitempty"`
	RadiusY  float32       `json:"radius_y,omitempty"`
	Start    float32       `json:"start,omitempty"`
	Sweep    float32       `json:"sweep,omitempty"`
	Text     string        `json:"text,omitempty"`
	TextSize float32       `json:"text_size,omitempty"`
	Source   string        `json:"source,omitempty"`
}

// MarshalJSON encodes the shape with world coordinates, point list
// shapes carry their points in world space.
func (s Shape) MarshalJSON() ([]byte, error) {
	doc := shapeDocument{
		Kind:     s.kind.String(),
		Style:    encodeStyle(s.style),
		X:        s.position.X(),
		Y:        s.position.Y(),
		Width:    s.width,
		Height:   s.height,
		RadiusX:  s.radiusX,
		RadiusY:  s.radiusY,
		Start:    s.start,
		Sweep:    s.sweep,
		Text:     s.text,
		TextSize: s.textSize,
		Source:   s.source,
	}
	for _, p := range s.points {
		world := p.Add(s.position)
		doc.Points = append(doc.Points, [2]float32{world.X(), world.Y()})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a shape through its constructor, so document
// contents go through the same validation as API calls.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var doc shapeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	style, err := decodeStyle(doc.Style)
	if err != nil {
		return err
	}

	points := make([]glm.Vec2, len(doc.Points))
	for idx, p := range doc.Points {
		points[idx] = glm.Vec2{p[0], p[1]}
	}

	var shape Shape
	switch doc.Kind {
	case "point":
		shape = NewPoint(doc.X, doc.Y, style)
	case "multipoint":
		shape, err = NewMultiPoint(points, style)
	case "line":
		if len(points) != 2 {
			return ErrTooFewPoints
		}
		shape = NewLine(points[0].X(), points[0].Y(), points[1].X(), points[1].Y(), style)
	case "polyline":
		shape, err = NewPolyline(points, style)
	case "arc":
		shape, err = NewArc(doc.X, doc.Y, doc.RadiusX, doc.Start, doc.Sweep, style)
	case "triangle":
		if len(points) != 3 {
			return ErrTooFewPoints
		}
		shape = NewTriangle(points[0], points[1], points[2], style)
	case "rectangle":
		shape, err = NewRectangle(doc.X, doc.Y, doc.Width, doc.Height, style)
	case "rounded_rectangle":
		shape, err = NewRoundedRectangle(doc.X, doc.Y, doc.Width, doc.Height, doc.RadiusX, style)
	case "circle":
		shape, err = NewCircle(doc.X, doc.Y, doc.RadiusX, style)
	case "ellipse":
		shape, err = NewEllipse(doc.X, doc.Y, doc.RadiusX, doc.RadiusY, style)
	case "polygon":
		shape, err = NewPolygon(points, style)
	case "image":
		shape, err = NewImage(doc.X, doc.Y, doc.Width, doc.Height, doc.Source)
	case "text":
		shape, err = NewText(doc.X, doc.Y, doc.Text, doc.TextSize, style)
	default:
		return fmt.Errorf("%w: %q", ErrDocumentKind, doc.Kind)
	}
	if err != nil {
		return err
	}
	*s = shape
	return nil
}

func encodeStyle(style Style) styleDocument {
	doc := styleDocument{Mode: style.Mode.String()}
	if style.HasFill() {
		doc.Fill = style.FillColor.Hex()
	}
	if style.HasStroke() {
		doc.Stroke = style.StrokeColor.Hex()
		doc.StrokeWidth = style.StrokeWidth
	}
	return doc
}

func decodeStyle(doc styleDocument) (Style, error) {
	var style Style
	switch doc.Mode {
	case "", "fill":
		style.Mode = Fill
	case "stroke":
		style.Mode = Stroke
	case "fill_and_stroke":
		style.Mode = FillAndStroke
	default:
		return Style{}, fmt.Errorf("unknown style mode %q", doc.Mode)
	}
	if doc.Fill != "" {
		c, err := gfx.ParseHexColor(doc.Fill)
		if err != nil {
			return Style{}, err
		}
		style.FillColor = c
	}
	if doc.Stroke != "" {
		c, err := gfx.ParseHexColor(doc.Stroke)
		if err != nil {
			return Style{}, err
		}
		style.StrokeColor = c
	}
	style.StrokeWidth = doc.StrokeWidth
	return style, nil
}
