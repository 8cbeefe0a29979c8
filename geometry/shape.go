package geometry

import (
	"errors"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
)

var (
	// ErrTooFewPoints is returned when a point list cannot describe
	// the shape it was given to.
	ErrTooFewPoints = errors.New("not enough points for shape")

	// ErrDimension is returned for negative sizes, radii and text
	// sizes.
	ErrDimension = errors.New("shape dimension out of range")

	// ErrCornerRadius is returned when rounded corners do not fit the
	// rectangle.
	ErrCornerRadius = errors.New("corner radius does not fit rectangle")

	// ErrUnknownKind is returned when a shape value carries no valid
	// variant, for example the zero value.
	ErrUnknownKind = errors.New("unknown shape kind")

	// ErrTextShape is returned by Tessellate for text shapes, which
	// lower through a font face instead.
	ErrTextShape = errors.New("text shapes tessellate through a font face")
)

// Kind discriminates the shape variants.
type Kind int

// The closed set of shape variants.
const (
	KindPoint Kind = iota + 1
	KindMultiPoint
	KindLine
	KindPolyline
	KindArc
	KindTriangle
	KindRectangle
	KindRoundedRectangle
	KindCircle
	KindEllipse
	KindPolygon
	KindImage
	KindText
)

var kindNames = map[Kind]string{
	KindPoint:            "point",
	KindMultiPoint:       "multipoint",
	KindLine:             "line",
	KindPolyline:         "polyline",
	KindArc:              "arc",
	KindTriangle:         "triangle",
	KindRectangle:        "rectangle",
	KindRoundedRectangle: "rounded_rectangle",
	KindCircle:           "circle",
	KindEllipse:          "ellipse",
	KindPolygon:          "polygon",
	KindImage:            "image",
	KindText:             "text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// StyleMode selects which of the fill and stroke passes a shape draws.
type StyleMode int

// Supported style modes.
const (
	Fill StyleMode = iota
	Stroke
	FillAndStroke
)

var modeNames = map[StyleMode]string{
	Fill:          "fill",
	Stroke:        "stroke",
	FillAndStroke: "fill_and_stroke",
}

func (m StyleMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// MinStrokeWidth is the thinnest stroke the engine draws. Narrower
// widths are widened to it, never rejected.
const MinStrokeWidth = 1.0

// Style describes how a shape is painted.
type Style struct {
	Mode        StyleMode
	FillColor   gfx.Color
	StrokeColor gfx.Color
	StrokeWidth float32
}

// FillStyle paints the shape interior only.
func FillStyle(c gfx.Color) Style {
	return Style{Mode: Fill, FillColor: c}
}

// StrokeStyle paints the shape outline only.
func StrokeStyle(c gfx.Color, width float32) Style {
	return Style{Mode: Stroke, StrokeColor: c, StrokeWidth: width}
}

// FillAndStrokeStyle paints interior and outline.
func FillAndStrokeStyle(fill, stroke gfx.Color, width float32) Style {
	return Style{Mode: FillAndStroke, FillColor: fill, StrokeColor: stroke, StrokeWidth: width}
}

// HasFill reports whether the style paints the interior.
func (s Style) HasFill() bool {
	return s.Mode == Fill || s.Mode == FillAndStroke
}

// HasStroke reports whether the style paints the outline.
func (s Style) HasStroke() bool {
	return s.Mode == Stroke || s.Mode == FillAndStroke
}

// Width returns the stroke width, never below MinStrokeWidth.
func (s Style) Width() float32 {
	if s.StrokeWidth < MinStrokeWidth {
		return MinStrokeWidth
	}
	return s.StrokeWidth
}

// LineColor returns the color outlines and points draw with: the
// stroke color when the style strokes, the fill color otherwise.
func (s Style) LineColor() gfx.Color {
	if s.HasStroke() {
		return s.StrokeColor
	}
	return s.FillColor
}

// Shape is one variant of the closed shape set together with its
// style. Geometric parameters are stored in local coordinates, the
// world position of the anchor is kept separately so meshes can rotate
// shapes about their natural pivot. Circles, ellipses, arcs and images
// anchor at their center, every point list anchors at its first point
// and rectangles at their top left corner.
type Shape struct {
	kind     Kind
	style    Style
	position glm.Vec2

	points []glm.Vec2

	width  float32
	height float32

	radiusX float32
	radiusY float32
	start   float32
	sweep   float32

	text     string
	textSize float32
	source   string
}

// NewPoint creates a single point shape at x, y.
func NewPoint(x, y float32, style Style) Shape {
	return Shape{kind: KindPoint, style: style, position: glm.Vec2{x, y}}
}

// NewMultiPoint creates a point cloud anchored at the first point.
func NewMultiPoint(points []glm.Vec2, style Style) (Shape, error) {
	if len(points) < 1 {
		return Shape{}, ErrTooFewPoints
	}
	return Shape{
		kind:     KindMultiPoint,
		style:    style,
		position: points[0],
		points:   rebase(points),
	}, nil
}

// NewLine creates a line segment anchored at its first endpoint. A
// zero length line is legal and tessellates to nothing.
func NewLine(x1, y1, x2, y2 float32, style Style) Shape {
	return Shape{
		kind:     KindLine,
		style:    style,
		position: glm.Vec2{x1, y1},
		points:   []glm.Vec2{{0, 0}, {x2 - x1, y2 - y1}},
	}
}

// NewPolyline creates an open line strip anchored at the first point.
func NewPolyline(points []glm.Vec2, style Style) (Shape, error) {
	if len(points) < 2 {
		return Shape{}, ErrTooFewPoints
	}
	return Shape{
		kind:     KindPolyline,
		style:    style,
		position: points[0],
		points:   rebase(points),
	}, nil
}

// NewArc creates a circular arc around center x, y. Angles are in
// radians, measured counterclockwise from the positive x axis in a
// y down coordinate system. The sweep is normalized into [0, 2π).
func NewArc(x, y, radius, start, sweep float32, style Style) (Shape, error) {
	if radius < 0 {
		return Shape{}, ErrDimension
	}
	return Shape{
		kind:     KindArc,
		style:    style,
		position: glm.Vec2{x, y},
		radiusX:  radius,
		radiusY:  radius,
		start:    start,
		sweep:    sweep,
	}, nil
}

// NewTriangle creates a triangle anchored at its first corner.
func NewTriangle(p1, p2, p3 glm.Vec2, style Style) Shape {
	return Shape{
		kind:     KindTriangle,
		style:    style,
		position: p1,
		points:   rebase([]glm.Vec2{p1, p2, p3}),
	}
}

// NewRectangle creates an axis aligned rectangle anchored at its top
// left corner. Zero sizes are legal.
func NewRectangle(x, y, width, height float32, style Style) (Shape, error) {
	if width < 0 || height < 0 {
		return Shape{}, ErrDimension
	}
	return Shape{
		kind:     KindRectangle,
		style:    style,
		position: glm.Vec2{x, y},
		width:    width,
		height:   height,
	}, nil
}

// NewRoundedRectangle creates a rectangle with quarter circle corners.
// The corner radius has to fit both half extents.
func NewRoundedRectangle(x, y, width, height, radius float32, style Style) (Shape, error) {
	if width < 0 || height < 0 || radius < 0 {
		return Shape{}, ErrDimension
	}
	if 2*radius > width || 2*radius > height {
		return Shape{}, ErrCornerRadius
	}
	return Shape{
		kind:     KindRoundedRectangle,
		style:    style,
		position: glm.Vec2{x, y},
		width:    width,
		height:   height,
		radiusX:  radius,
		radiusY:  radius,
	}, nil
}

// NewCircle creates a circle around center x, y. A zero radius is
// legal and tessellates to a degenerate fan.
func NewCircle(x, y, radius float32, style Style) (Shape, error) {
	if radius < 0 {
		return Shape{}, ErrDimension
	}
	return Shape{
		kind:     KindCircle,
		style:    style,
		position: glm.Vec2{x, y},
		radiusX:  radius,
		radiusY:  radius,
	}, nil
}

// NewEllipse creates an axis aligned ellipse around center x, y.
func NewEllipse(x, y, radiusX, radiusY float32, style Style) (Shape, error) {
	if radiusX < 0 || radiusY < 0 {
		return Shape{}, ErrDimension
	}
	return Shape{
		kind:     KindEllipse,
		style:    style,
		position: glm.Vec2{x, y},
		radiusX:  radiusX,
		radiusY:  radiusY,
	}, nil
}

// NewPolygon creates a closed polygon anchored at its first point. The
// fill is a fan about that point, so concave inputs fill like the
// original convex hull segments seen from it.
func NewPolygon(points []glm.Vec2, style Style) (Shape, error) {
	if len(points) < 3 {
		return Shape{}, ErrTooFewPoints
	}
	return Shape{
		kind:     KindPolygon,
		style:    style,
		position: points[0],
		points:   rebase(points),
	}, nil
}

// NewImage creates an image quad anchored at its center. The source
// names where the pixels come from, it is carried along for loaders
// and documents and not interpreted here.
func NewImage(x, y, width, height float32, source string) (Shape, error) {
	if width < 0 || height < 0 {
		return Shape{}, ErrDimension
	}
	return Shape{
		kind:     KindImage,
		position: glm.Vec2{x, y},
		width:    width,
		height:   height,
		source:   source,
	}, nil
}

// NewText creates a text run anchored at the top left of its box. The
// style fill color is the glyph color.
func NewText(x, y float32, text string, size float32, style Style) (Shape, error) {
	if size <= 0 {
		return Shape{}, ErrDimension
	}
	return Shape{
		kind:     KindText,
		style:    style,
		position: glm.Vec2{x, y},
		text:     text,
		textSize: size,
	}, nil
}

// Kind returns the shape variant.
func (s Shape) Kind() Kind {
	return s.kind
}

// Style returns the paint style.
func (s Shape) Style() Style {
	return s.style
}

// Position returns the world position of the shape anchor.
func (s Shape) Position() glm.Vec2 {
	return s.position
}

// Points returns a copy of the local point list of point, line and
// polygon shapes.
func (s Shape) Points() []glm.Vec2 {
	points := make([]glm.Vec2, len(s.points))
	copy(points, s.points)
	return points
}

// Size returns width and height of rectangle and image shapes.
func (s Shape) Size() (float32, float32) {
	return s.width, s.height
}

// Radii returns the x and y radii. Circles, arcs and rounded
// rectangle corners report the same value twice.
func (s Shape) Radii() (float32, float32) {
	return s.radiusX, s.radiusY
}

// Angles returns the start angle and sweep of arc shapes in radians.
func (s Shape) Angles() (float32, float32) {
	return s.start, s.sweep
}

// Text returns the content of text shapes.
func (s Shape) Text() string {
	return s.text
}

// TextSize returns the pixel size of text shapes.
func (s Shape) TextSize() float32 {
	return s.textSize
}

// Source returns the pixel source of image shapes.
func (s Shape) Source() string {
	return s.source
}

func rebase(points []glm.Vec2) []glm.Vec2 {
	local := make([]glm.Vec2, len(points))
	for idx, p := range points {
		local[idx] = p.Sub(points[0])
	}
	return local
}
