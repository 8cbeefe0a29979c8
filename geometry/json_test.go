package geometry_test

import (
	"encoding/json"
	"strings"
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
)

func TestShapeJSONRoundTrip(t *testing.T) {
	shapes := []geometry.Shape{
		geometry.NewPoint(3, 4, geometry.FillStyle(gfx.White)),
		geometry.NewLine(0, 0, 10, 5, geometry.StrokeStyle(gfx.Red, 2)),
	}
	circle, err := geometry.NewCircle(50, 60, 12, geometry.FillAndStrokeStyle(gfx.Green, gfx.Black, 1.5))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	polygon, err := geometry.NewPolygon([]glm.Vec2{{0, 0}, {20, 0}, {10, 15}}, geometry.FillStyle(gfx.Blue))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	shapes = append(shapes, circle, polygon)

	for _, shape := range shapes {
		data, err := json.Marshal(shape)
		if err != nil {
			t.Fatalf("marshal %s: %s", shape.Kind(), err.Error())
		}
		t.Logf("%s: %s", shape.Kind(), data)

		var decoded geometry.Shape
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %s", shape.Kind(), err.Error())
		}
		if decoded.Kind() != shape.Kind() {
			t.Errorf("kind changed across the round trip: %s became %s", shape.Kind(), decoded.Kind())
		}
		if decoded.Position() != shape.Position() {
			t.Errorf("%s position changed: %v became %v", shape.Kind(), shape.Position(), decoded.Position())
		}
		if decoded.Style().Mode != shape.Style().Mode {
			t.Errorf("%s style mode changed", shape.Kind())
		}
	}
}

func TestShapeJSONValidates(t *testing.T) {
	var shape geometry.Shape

	err := json.Unmarshal([]byte(`{"kind":"polygon","points":[[0,0],[1,1]]}`), &shape)
	if err != geometry.ErrTooFewPoints {
		t.Errorf("expected point count validation to run, got %v", err)
	}

	err = json.Unmarshal([]byte(`{"kind":"blob"}`), &shape)
	if err == nil || !strings.Contains(err.Error(), "unknown shape kind") {
		t.Errorf("expected unknown kind error, got %v", err)
	}
}

func TestShapeJSONPointsAreWorldSpace(t *testing.T) {
	shape, err := geometry.NewPolyline([]glm.Vec2{{10, 10}, {20, 10}}, geometry.StrokeStyle(gfx.Red, 1))
	if err != nil {
		t.Fatalf("constructor failed: %s", err.Error())
	}
	data, err := json.Marshal(shape)
	if err != nil {
		t.Fatalf("marshal failed: %s", err.Error())
	}
	if !strings.Contains(string(data), "[10,10]") || !strings.Contains(string(data), "[20,10]") {
		t.Errorf("expected world coordinates in the document, got %s", data)
	}
}
