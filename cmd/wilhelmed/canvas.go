package main

import (
	"math"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gtk"
	log "github.com/sirupsen/logrus"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
)

// onDraw paints the open document. The canvas shares the document
// coordinate system, origin top left with y growing downward.
func onDraw(canvas *gtk.DrawingArea, cr *cairo.Context) {
	background := gfx.White
	if document != nil {
		if color, err := document.BackgroundColor(); err == nil {
			background = color
		}
	}
	setColor(cr, background)
	cr.Paint()

	if document == nil {
		return
	}
	shapes, err := document.Shapes()
	if err != nil {
		log.Error(err)
		return
	}
	for _, shape := range shapes {
		drawShape(cr, shape)
	}
}

func setColor(cr *cairo.Context, c gfx.Color) {
	cr.SetSourceRGBA(float64(c.R), float64(c.G), float64(c.B), float64(c.A))
}

// paint fills and strokes the current path according to the style.
func paint(cr *cairo.Context, style geometry.Style) {
	if style.HasFill() && style.HasStroke() {
		setColor(cr, style.FillColor)
		cr.FillPreserve()
		setColor(cr, style.StrokeColor)
		cr.SetLineWidth(float64(style.Width()))
		cr.Stroke()
		return
	}
	if style.HasFill() {
		setColor(cr, style.FillColor)
		cr.Fill()
		return
	}
	setColor(cr, style.StrokeColor)
	cr.SetLineWidth(float64(style.Width()))
	cr.Stroke()
}

func drawShape(cr *cairo.Context, shape geometry.Shape) {
	style := shape.Style()
	position := shape.Position()
	x, y := float64(position.X()), float64(position.Y())

	switch shape.Kind() {
	case geometry.KindPoint:
		cr.NewPath()
		cr.Arc(x, y, float64(style.Width())/2, 0, 2*math.Pi)
		setColor(cr, style.LineColor())
		cr.Fill()

	case geometry.KindMultiPoint:
		setColor(cr, style.LineColor())
		for _, p := range shape.Points() {
			cr.NewPath()
			cr.Arc(x+float64(p.X()), y+float64(p.Y()), float64(style.Width())/2, 0, 2*math.Pi)
			cr.Fill()
		}

	case geometry.KindLine, geometry.KindPolyline:
		cr.NewPath()
		for idx, p := range shape.Points() {
			if idx == 0 {
				cr.MoveTo(x+float64(p.X()), y+float64(p.Y()))
			} else {
				cr.LineTo(x+float64(p.X()), y+float64(p.Y()))
			}
		}
		setColor(cr, style.LineColor())
		cr.SetLineWidth(float64(style.Width()))
		cr.Stroke()

	case geometry.KindArc:
		radius, _ := shape.Radii()
		start, sweep := shape.Angles()
		// The engine sweeps counterclockwise on a y down canvas, which
		// runs the cairo angle backwards.
		cr.NewPath()
		cr.ArcNegative(x, y, float64(radius), -float64(start), -float64(start+sweep))
		paint(cr, style)

	case geometry.KindTriangle, geometry.KindPolygon:
		cr.NewPath()
		for idx, p := range shape.Points() {
			if idx == 0 {
				cr.MoveTo(x+float64(p.X()), y+float64(p.Y()))
			} else {
				cr.LineTo(x+float64(p.X()), y+float64(p.Y()))
			}
		}
		cr.ClosePath()
		paint(cr, style)

	case geometry.KindRectangle:
		width, height := shape.Size()
		cr.NewPath()
		cr.Rectangle(x, y, float64(width), float64(height))
		paint(cr, style)

	case geometry.KindRoundedRectangle:
		width, height := shape.Size()
		radius, _ := shape.Radii()
		roundedRectPath(cr, x, y, float64(width), float64(height), float64(radius))
		paint(cr, style)

	case geometry.KindCircle:
		radius, _ := shape.Radii()
		cr.NewPath()
		cr.Arc(x, y, float64(radius), 0, 2*math.Pi)
		paint(cr, style)

	case geometry.KindEllipse:
		radiusX, radiusY := shape.Radii()
		cr.Save()
		cr.Translate(x, y)
		cr.Scale(float64(radiusX), float64(radiusY))
		cr.NewPath()
		cr.Arc(0, 0, 1, 0, 2*math.Pi)
		cr.Restore()
		paint(cr, style)

	case geometry.KindImage:
		// TODO: render the pixbuf instead of a placeholder.
		width, height := shape.Size()
		w, h := float64(width), float64(height)
		cr.NewPath()
		cr.Rectangle(x-w/2, y-h/2, w, h)
		setColor(cr, gfx.RGB(0.8, 0.8, 0.8))
		cr.FillPreserve()
		setColor(cr, gfx.RGB(0.4, 0.4, 0.4))
		cr.SetLineWidth(1)
		cr.Stroke()
		cr.MoveTo(x-w/2, y-h/2)
		cr.LineTo(x+w/2, y+h/2)
		cr.MoveTo(x+w/2, y-h/2)
		cr.LineTo(x-w/2, y+h/2)
		cr.Stroke()

	case geometry.KindText:
		cr.SelectFontFace("sans", cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
		cr.SetFontSize(float64(shape.TextSize()))
		setColor(cr, style.FillColor)
		cr.MoveTo(x, y+float64(shape.TextSize()))
		cr.ShowText(shape.Text())
	}
}

// roundedRectPath traces a rectangle with circular corners.
func roundedRectPath(cr *cairo.Context, x, y, width, height, radius float64) {
	cr.NewPath()
	cr.Arc(x+width-radius, y+radius, radius, -math.Pi/2, 0)
	cr.Arc(x+width-radius, y+height-radius, radius, 0, math.Pi/2)
	cr.Arc(x+radius, y+height-radius, radius, math.Pi/2, math.Pi)
	cr.Arc(x+radius, y+radius, radius, math.Pi, 1.5*math.Pi)
	cr.ClosePath()
}
