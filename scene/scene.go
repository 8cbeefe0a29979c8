// Package scene reads and writes shape documents. A document is the
// JSON interchange form of a drawing, Shapes lowers it into engine
// shapes and ToSVG renders it without a GPU in reach.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/utility/svg"
)

// StyleNode is the document form of a paint style. Colors use the hex
// notations, an empty color is black.
type StyleNode struct {
	Mode   string  `json:"mode"`
	Fill   string  `json:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
	Width  float32 `json:"width,omitempty"`
}

// Node is one shape entry. A single struct carries every variant, the
// kind decides which fields count. Point lists are absolute document
// coordinates.
type Node struct {
	Kind  string     `json:"kind"`
	Style *StyleNode `json:"style,omitempty"`

	X float32 `json:"x,omitempty"`
	Y float32 `json:"y,omitempty"`

	Points [][2]float32 `json:"points,omitempty"`

	Width  float32 `json:"width,omitempty"`
	Height float32 `json:"height,omitempty"`

	Radius  float32 `json:"radius,omitempty"`
	RadiusX float32 `json:"radius_x,omitempty"`
	RadiusY float32 `json:"radius_y,omitempty"`

	Start float32 `json:"start,omitempty"`
	Sweep float32 `json:"sweep,omitempty"`

	Text     string  `json:"text,omitempty"`
	TextSize float32 `json:"text_size,omitempty"`
	Source   string  `json:"source,omitempty"`
}

// Document is a complete drawing in its interchange form.
type Document struct {
	Width      float32 `json:"width"`
	Height     float32 `json:"height"`
	Background string  `json:"background,omitempty"`
	Nodes      []Node  `json:"shapes"`
}

// Decode reads a JSON document.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.New("json.Decode(): " + err.Error())
	}
	return &d, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

// Shapes lowers every node through the shape constructors, which also
// validates the document.
func (d *Document) Shapes() ([]geometry.Shape, error) {
	shapes := make([]geometry.Shape, 0, len(d.Nodes))
	for idx, node := range d.Nodes {
		shape, err := node.Shape()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %s", idx, err.Error())
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// Add appends a shape in document form.
func (d *Document) Add(s geometry.Shape) error {
	node, err := NodeOf(s)
	if err != nil {
		return err
	}
	d.Nodes = append(d.Nodes, node)
	return nil
}

// BackgroundColor parses the background color. A document without one
// is white.
func (d *Document) BackgroundColor() (gfx.Color, error) {
	if d.Background == "" {
		return gfx.White, nil
	}
	return gfx.ParseHexColor(d.Background)
}

// ToSVG renders the document as a standalone svg drawing.
func (d *Document) ToSVG() ([]byte, error) {
	background, err := d.BackgroundColor()
	if err != nil {
		return nil, err
	}
	rect := svg.Element{Name: "rect"}
	rect.SetAttr("width", "100%")
	rect.SetAttr("height", "100%")
	rect.SetAttr("fill", background.Hex())

	doc := svg.Document{
		Width:    d.Width,
		Height:   d.Height,
		Elements: []svg.Element{rect},
	}
	shapes, err := d.Shapes()
	if err != nil {
		return nil, err
	}
	for _, shape := range shapes {
		element, err := shape.ToSVG()
		if err != nil {
			return nil, err
		}
		doc.Elements = append(doc.Elements, element)
	}
	return doc.Marshal()
}

// Shape lowers the node through the shape constructors.
func (n Node) Shape() (geometry.Shape, error) {
	style := geometry.FillStyle(gfx.Black)
	if n.Style != nil {
		var err error
		if style, err = n.Style.style(); err != nil {
			return geometry.Shape{}, err
		}
	}

	switch n.Kind {
	case "point":
		return geometry.NewPoint(n.X, n.Y, style), nil
	case "multipoint":
		return geometry.NewMultiPoint(n.vecPoints(), style)
	case "line":
		points := n.vecPoints()
		if len(points) != 2 {
			return geometry.Shape{}, fmt.Errorf("line carries %d points", len(points))
		}
		return geometry.NewLine(points[0].X(), points[0].Y(), points[1].X(), points[1].Y(), style), nil
	case "polyline":
		return geometry.NewPolyline(n.vecPoints(), style)
	case "arc":
		return geometry.NewArc(n.X, n.Y, n.Radius, n.Start, n.Sweep, style)
	case "triangle":
		points := n.vecPoints()
		if len(points) != 3 {
			return geometry.Shape{}, fmt.Errorf("triangle carries %d points", len(points))
		}
		return geometry.NewTriangle(points[0], points[1], points[2], style), nil
	case "rectangle":
		return geometry.NewRectangle(n.X, n.Y, n.Width, n.Height, style)
	case "rounded_rectangle":
		return geometry.NewRoundedRectangle(n.X, n.Y, n.Width, n.Height, n.Radius, style)
	case "circle":
		return geometry.NewCircle(n.X, n.Y, n.Radius, style)
	case "ellipse":
		return geometry.NewEllipse(n.X, n.Y, n.RadiusX, n.RadiusY, style)
	case "polygon":
		return geometry.NewPolygon(n.vecPoints(), style)
	case "image":
		return geometry.NewImage(n.X, n.Y, n.Width, n.Height, n.Source)
	case "text":
		return geometry.NewText(n.X, n.Y, n.Text, n.TextSize, style)
	}
	return geometry.Shape{}, fmt.Errorf("unknown shape kind %q", n.Kind)
}

// NodeOf raises a shape into its document form.
func NodeOf(s geometry.Shape) (Node, error) {
	pos := s.Position()
	node := Node{Kind: s.Kind().String()}
	if s.Kind() != geometry.KindImage {
		node.Style = styleNode(s.Style())
	}

	switch s.Kind() {
	case geometry.KindPoint:
		node.X, node.Y = pos.X(), pos.Y()
	case geometry.KindMultiPoint, geometry.KindLine, geometry.KindPolyline,
		geometry.KindTriangle, geometry.KindPolygon:
		node.Points = absolutePoints(s)
	case geometry.KindArc:
		node.X, node.Y = pos.X(), pos.Y()
		node.Radius, _ = s.Radii()
		node.Start, node.Sweep = s.Angles()
	case geometry.KindRectangle:
		node.X, node.Y = pos.X(), pos.Y()
		node.Width, node.Height = s.Size()
	case geometry.KindRoundedRectangle:
		node.X, node.Y = pos.X(), pos.Y()
		node.Width, node.Height = s.Size()
		node.Radius, _ = s.Radii()
	case geometry.KindCircle:
		node.X, node.Y = pos.X(), pos.Y()
		node.Radius, _ = s.Radii()
	case geometry.KindEllipse:
		node.X, node.Y = pos.X(), pos.Y()
		node.RadiusX, node.RadiusY = s.Radii()
	case geometry.KindImage:
		node.X, node.Y = pos.X(), pos.Y()
		node.Width, node.Height = s.Size()
		node.Source = s.Source()
	case geometry.KindText:
		node.X, node.Y = pos.X(), pos.Y()
		node.Text = s.Text()
		node.TextSize = s.TextSize()
	default:
		return Node{}, geometry.ErrUnknownKind
	}
	return node, nil
}

func (n StyleNode) style() (geometry.Style, error) {
	fill, stroke := gfx.Black, gfx.Black
	var err error
	if n.Fill != "" {
		if fill, err = gfx.ParseHexColor(n.Fill); err != nil {
			return geometry.Style{}, err
		}
	}
	if n.Stroke != "" {
		if stroke, err = gfx.ParseHexColor(n.Stroke); err != nil {
			return geometry.Style{}, err
		}
	}

	switch n.Mode {
	case "fill", "":
		return geometry.FillStyle(fill), nil
	case "stroke":
		return geometry.StrokeStyle(stroke, n.Width), nil
	case "fill_and_stroke":
		return geometry.FillAndStrokeStyle(fill, stroke, n.Width), nil
	}
	return geometry.Style{}, fmt.Errorf("unknown style mode %q", n.Mode)
}

func styleNode(s geometry.Style) *StyleNode {
	node := &StyleNode{Mode: s.Mode.String()}
	if s.HasFill() {
		node.Fill = s.FillColor.Hex()
	}
	if s.HasStroke() {
		node.Stroke = s.StrokeColor.Hex()
		node.Width = s.StrokeWidth
	}
	return node
}

func (n Node) vecPoints() []glm.Vec2 {
	points := make([]glm.Vec2, len(n.Points))
	for idx, p := range n.Points {
		points[idx] = glm.Vec2{p[0], p[1]}
	}
	return points
}

func absolutePoints(s geometry.Shape) [][2]float32 {
	pos := s.Position()
	local := s.Points()
	points := make([][2]float32, len(local))
	for idx, p := range local {
		points[idx] = [2]float32{pos.X() + p.X(), pos.Y() + p.Y()}
	}
	return points
}
