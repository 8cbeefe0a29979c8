package scene_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/scene"
)

func TestDocumentRoundTrip(t *testing.T) {
	doc := &scene.Document{Width: 200, Height: 100, Background: "#FFFFFF"}

	circle, err := geometry.NewCircle(50, 50, 10, geometry.FillAndStrokeStyle(gfx.Red, gfx.Black, 2))
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	polygon, err := geometry.NewPolygon([]glm.Vec2{{10, 10}, {30, 10}, {20, 30}}, geometry.FillStyle(gfx.Green))
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	label, err := geometry.NewText(5, 5, "legend", 12, geometry.FillStyle(gfx.Black))
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	for _, shape := range []geometry.Shape{
		circle,
		geometry.NewLine(0, 0, 200, 100, geometry.StrokeStyle(gfx.Blue, 1)),
		polygon,
		label,
	} {
		if err := doc.Add(shape); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	var buffer bytes.Buffer
	if err := doc.Encode(&buffer); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	t.Logf("document:\n%s", buffer.String())

	decoded, err := scene.Decode(&buffer)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, doc) {
		t.Errorf("round trip changed the document:\n%#v\n%#v", decoded, doc)
	}

	shapes, err := decoded.Shapes()
	if err != nil {
		t.Fatalf("Shapes: %v", err)
	}
	if len(shapes) != 4 {
		t.Fatalf("lowered %d shapes", len(shapes))
	}
	if shapes[0].Kind() != geometry.KindCircle {
		t.Errorf("shapes[0] = %v", shapes[0].Kind())
	}
	if got := shapes[2].Position(); got != (glm.Vec2{10, 10}) {
		t.Errorf("polygon anchor = %v", got)
	}
	if got := shapes[2].Points()[1]; got != (glm.Vec2{20, 0}) {
		t.Errorf("polygon local point = %v", got)
	}
	if shapes[3].Text() != "legend" || shapes[3].TextSize() != 12 {
		t.Errorf("text round trip lost content: %q at %g", shapes[3].Text(), shapes[3].TextSize())
	}
}

func TestDecodeLowersStyles(t *testing.T) {
	input := `{
		"width": 100, "height": 100,
		"shapes": [
			{"kind": "circle", "x": 10, "y": 10, "radius": 5,
			 "style": {"mode": "stroke", "stroke": "#336699", "width": 3}},
			{"kind": "rectangle", "x": 0, "y": 0, "width": 10, "height": 10}
		]
	}`
	doc, err := scene.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	shapes, err := doc.Shapes()
	if err != nil {
		t.Fatalf("Shapes: %v", err)
	}

	style := shapes[0].Style()
	if style.HasFill() || !style.HasStroke() {
		t.Errorf("stroke style lowered to mode %v", style.Mode)
	}
	if style.StrokeWidth != 3 {
		t.Errorf("stroke width = %g", style.StrokeWidth)
	}
	want := gfx.Color{R: 0x33 / 255.0, G: 0x66 / 255.0, B: 0x99 / 255.0, A: 1}
	if style.StrokeColor != want {
		t.Errorf("stroke color = %v, want %v", style.StrokeColor, want)
	}

	// A node without a style falls back to a black fill.
	if got := shapes[1].Style(); !got.HasFill() || got.FillColor != gfx.Black {
		t.Errorf("default style = %+v", got)
	}
}

func TestShapesValidate(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"negative radius", `{"shapes": [{"kind": "circle", "radius": -5}]}`},
		{"unknown kind", `{"shapes": [{"kind": "blob"}]}`},
		{"short polygon", `{"shapes": [{"kind": "polygon", "points": [[0, 0], [1, 1]]}]}`},
		{"line point count", `{"shapes": [{"kind": "line", "points": [[0, 0], [1, 1], [2, 2]]}]}`},
		{"bad color", `{"shapes": [{"kind": "point", "style": {"mode": "fill", "fill": "red"}}]}`},
		{"bad mode", `{"shapes": [{"kind": "point", "style": {"mode": "dotted"}}]}`},
	}
	for _, tc := range cases {
		doc, err := scene.Decode(strings.NewReader(tc.input))
		if err != nil {
			t.Fatalf("%s: Decode: %v", tc.name, err)
		}
		if _, err := doc.Shapes(); err == nil {
			t.Errorf("%s: lowering did not fail", tc.name)
		} else {
			t.Logf("%s: %v", tc.name, err)
		}
	}
}

func TestBackgroundColor(t *testing.T) {
	doc := &scene.Document{}
	color, err := doc.BackgroundColor()
	if err != nil || color != gfx.White {
		t.Errorf("unset background = %v, %v", color, err)
	}

	doc.Background = "#000000"
	color, err = doc.BackgroundColor()
	if err != nil || color != gfx.Black {
		t.Errorf("black background = %v, %v", color, err)
	}

	doc.Background = "night"
	if _, err := doc.BackgroundColor(); err == nil {
		t.Error("malformed background parsed")
	}
}

func TestToSVG(t *testing.T) {
	doc := &scene.Document{Width: 200, Height: 100, Background: "#112233"}
	circle, err := geometry.NewCircle(50, 50, 10, geometry.FillStyle(gfx.Red))
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	if err := doc.Add(circle); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := doc.Add(geometry.NewLine(0, 0, 200, 100, geometry.StrokeStyle(gfx.Black, 2))); err != nil {
		t.Fatalf("Add: %v", err)
	}

	out, err := doc.ToSVG()
	if err != nil {
		t.Fatalf("ToSVG: %v", err)
	}
	rendered := string(out)
	t.Logf("svg:\n%s", rendered)
	for _, want := range []string{
		`<svg`, `width="200"`, `height="100"`,
		`fill="#112233"`, `<circle`, `<line`,
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("svg output lacks %s", want)
		}
	}
	if !strings.HasPrefix(rendered, "<?xml") {
		t.Error("svg output lacks the xml header")
	}
}

func TestNodeOfUnknownKind(t *testing.T) {
	if _, err := scene.NodeOf(geometry.Shape{}); err != geometry.ErrUnknownKind {
		t.Errorf("zero shape: err = %v", err)
	}
}
