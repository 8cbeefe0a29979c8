// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"math"
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/core"
)

func vecNear(a, b glm.Vec2, eps float32) bool {
	return math.Abs(float64(a.X()-b.X())) < float64(eps) &&
		math.Abs(float64(a.Y()-b.Y())) < float64(eps)
}

func TestCameraRoundTrip(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	camera.Center = glm.Vec2{37.5, -120}
	camera.Scale = 2.5

	points := []glm.Vec2{{0, 0}, {37.5, -120}, {-500, 300}, {0.25, 0.75}}
	for _, p := range points {
		back := camera.ScreenToWorld(camera.WorldToScreen(p))
		if !vecNear(back, p, 1e-3) {
			t.Errorf("round trip moved %v to %v", p, back)
		}
	}

	mid := camera.WorldToScreen(camera.Center)
	if !vecNear(mid, glm.Vec2{400, 300}, 1e-4) {
		t.Errorf("center projects to %v, want viewport middle", mid)
	}
}

func TestViewMatrixMatchesWorldToScreen(t *testing.T) {
	camera := core.NewCamera2D(1024, 768)
	camera.Center = glm.Vec2{-3, 8}
	camera.Scale = 0.5

	for _, p := range []glm.Vec2{{0, 0}, {100, -40}, {-3, 8}} {
		byMatrix := camera.ViewMatrix().Mul4x1(glm.Vec4{p.X(), p.Y(), 0, 1})
		direct := camera.WorldToScreen(p)
		if !vecNear(glm.Vec2{byMatrix.X(), byMatrix.Y()}, direct, 1e-3) {
			t.Errorf("matrix maps %v to (%g, %g), WorldToScreen says %v",
				p, byMatrix.X(), byMatrix.Y(), direct)
		}
	}
}

func TestPanScreenFollowsCursor(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	camera.Scale = 4

	cursor := glm.Vec2{200, 450}
	grabbed := camera.ScreenToWorld(cursor)

	delta := glm.Vec2{60, -25}
	camera.PanScreen(delta)

	now := camera.ScreenToWorld(cursor.Add(delta))
	if !vecNear(now, grabbed, 1e-3) {
		t.Errorf("grabbed world point drifted from %v to %v", grabbed, now)
	}
}

func TestPanMovesCenter(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	camera.Center = glm.Vec2{10, 10}
	camera.Pan(glm.Vec2{-4, 6})
	if !vecNear(camera.Center, glm.Vec2{6, 16}, 1e-6) {
		t.Errorf("center = %v, want (6, 16)", camera.Center)
	}
}

func TestZoomAtKeepsCursorWorldFixed(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	camera.Center = glm.Vec2{50, 50}
	camera.Scale = 1.5

	cursor := glm.Vec2{612, 130}
	before := camera.ScreenToWorld(cursor)

	camera.ZoomAt(cursor, 2)
	if after := camera.ScreenToWorld(cursor); !vecNear(after, before, 1e-3) {
		t.Errorf("zoom in moved the cursor world point from %v to %v", before, after)
	}
	if math.Abs(float64(camera.Scale-3)) > 1e-6 {
		t.Errorf("scale = %g, want 3", camera.Scale)
	}

	camera.ZoomAt(cursor, 0.25)
	if after := camera.ScreenToWorld(cursor); !vecNear(after, before, 1e-3) {
		t.Errorf("zoom out moved the cursor world point from %v to %v", before, after)
	}
}

func TestZoomKeepsViewportCenter(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	camera.Center = glm.Vec2{7, 7}
	camera.Zoom(3)
	if !vecNear(camera.Center, glm.Vec2{7, 7}, 1e-6) {
		t.Errorf("center moved to %v", camera.Center)
	}
	if camera.Scale != 3 {
		t.Errorf("scale = %g, want 3", camera.Scale)
	}
}

func TestWorldBounds(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	camera.Scale = 2

	min, max := camera.WorldBounds()
	if !vecNear(min, glm.Vec2{-200, -150}, 1e-3) {
		t.Errorf("min = %v, want (-200, -150)", min)
	}
	if !vecNear(max, glm.Vec2{200, 150}, 1e-3) {
		t.Errorf("max = %v, want (200, 150)", max)
	}
}

func TestControllerWheelGlides(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	controller := core.NewCameraController(camera)

	cursor := glm.Vec2{600, 150}
	target := camera.ScreenToWorld(cursor)
	controller.Wheel(cursor, 2)

	if camera.Scale != 1 {
		t.Fatalf("scale moved to %g before any Update", camera.Scale)
	}

	for idx := 0; idx < 240; idx++ {
		controller.Update(1.0 / 60.0)
	}

	want := float32(math.Pow(core.ZoomSensitivity, 2))
	if math.Abs(float64(camera.Scale-want)) > 1e-3 {
		t.Errorf("scale settled at %g, want %g", camera.Scale, want)
	}
	if now := camera.ScreenToWorld(cursor); !vecNear(now, target, 1e-2) {
		t.Errorf("cursor world point drifted from %v to %v", target, now)
	}
	t.Logf("scale %g after glide, cursor world point %v", camera.Scale, camera.ScreenToWorld(cursor))
}

func TestControllerDrag(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	camera.Scale = 2
	controller := core.NewCameraController(camera)

	start := glm.Vec2{400, 300}
	grabbed := camera.ScreenToWorld(start)

	controller.BeginDrag(start)
	if !controller.Dragging() {
		t.Fatal("Dragging() = false after BeginDrag")
	}
	moved := glm.Vec2{480, 260}
	controller.MoveTo(moved)
	controller.EndDrag()

	if now := camera.ScreenToWorld(moved); !vecNear(now, grabbed, 1e-3) {
		t.Errorf("dragged world point drifted from %v to %v", grabbed, now)
	}

	// Settling afterwards must not undo the pan.
	for idx := 0; idx < 120; idx++ {
		controller.Update(1.0 / 60.0)
	}
	if now := camera.ScreenToWorld(moved); !vecNear(now, grabbed, 1e-2) {
		t.Errorf("glide undid the drag, world point moved to %v", now)
	}
}

func TestControllerIgnoresMoveWithoutDrag(t *testing.T) {
	camera := core.NewCamera2D(800, 600)
	controller := core.NewCameraController(camera)

	controller.MoveTo(glm.Vec2{700, 700})
	if !vecNear(camera.Center, glm.Vec2{0, 0}, 1e-6) {
		t.Errorf("hover moved the camera to %v", camera.Center)
	}
}
