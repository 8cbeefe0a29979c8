package geometry_test

import (
	"strings"
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/utility/svg"
)

func lower(t *testing.T, shape geometry.Shape) string {
	element, err := shape.ToSVG()
	if err != nil {
		t.Fatalf("lowering failed: %s", err.Error())
	}
	doc := svg.Document{Width: 200, Height: 100, Elements: []svg.Element{element}}
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %s", err.Error())
	}
	return string(data)
}

func TestCircleToSVG(t *testing.T) {
	shape, err := geometry.NewCircle(50, 60, 12, geometry.FillAndStrokeStyle(gfx.Red, gfx.Black, 2))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	out := lower(t, shape)
	t.Log(out)

	for _, want := range []string{`<circle`, `cx="50"`, `cy="60"`, `r="12"`, `fill="#FF0000"`, `stroke="#000000"`, `stroke-width="2"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestLineToSVG(t *testing.T) {
	out := lower(t, geometry.NewLine(10, 10, 40, 30, geometry.StrokeStyle(gfx.Blue, 3)))
	for _, want := range []string{`<line`, `x1="10"`, `y1="10"`, `x2="40"`, `y2="30"`, `stroke="#0000FF"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestPolygonToSVG(t *testing.T) {
	shape, err := geometry.NewPolygon([]glm.Vec2{{10, 10}, {30, 10}, {20, 25}}, geometry.FillStyle(gfx.Green))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	out := lower(t, shape)
	if !strings.Contains(out, `points="10,10 30,10 20,25"`) {
		t.Errorf("expected world space points, got %s", out)
	}
}

func TestRoundedRectangleToSVG(t *testing.T) {
	shape, err := geometry.NewRoundedRectangle(5, 5, 40, 30, 4, geometry.FillStyle(gfx.White))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	out := lower(t, shape)
	if !strings.Contains(out, `rx="4"`) {
		t.Errorf("expected corner radius attribute, got %s", out)
	}
}

func TestTextToSVG(t *testing.T) {
	shape, err := geometry.NewText(10, 20, "Bern", 14, geometry.FillStyle(gfx.Black))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	out := lower(t, shape)
	if !strings.Contains(out, ">Bern</text>") {
		t.Errorf("expected text content, got %s", out)
	}
	if !strings.Contains(out, `y="34"`) {
		t.Errorf("expected the baseline below the anchor, got %s", out)
	}
}

func TestStrokeOnlyLeavesFillNone(t *testing.T) {
	shape, err := geometry.NewCircle(0, 0, 5, geometry.StrokeStyle(gfx.Red, 1))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	out := lower(t, shape)
	if !strings.Contains(out, `fill="none"`) {
		t.Errorf("stroke only shapes should not fill, got %s", out)
	}
}
