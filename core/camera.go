// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"math"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Camera2D maps between world and screen coordinates. The world point
// Center appears in the middle of the viewport, Scale is pixels per
// world unit and ScreenSize is the viewport in pixels. Screen space
// has its origin top left with y growing downward.
type Camera2D struct {
	Center     glm.Vec2
	Scale      float32
	ScreenSize glm.Vec2
}

// NewCamera2D creates a camera over a viewport, centered on the world
// origin at scale one.
func NewCamera2D(screenWidth, screenHeight float32) *Camera2D {
	return &Camera2D{
		Scale:      1,
		ScreenSize: glm.Vec2{screenWidth, screenHeight},
	}
}

// WorldToScreen projects a world point to pixels.
func (c *Camera2D) WorldToScreen(p glm.Vec2) glm.Vec2 {
	return p.Sub(c.Center).Mul(c.Scale).Add(c.ScreenSize.Mul(0.5))
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera2D) ScreenToWorld(p glm.Vec2) glm.Vec2 {
	return p.Sub(c.ScreenSize.Mul(0.5)).Mul(1 / c.Scale).Add(c.Center)
}

// Pan moves the camera center by a world space delta.
func (c *Camera2D) Pan(delta glm.Vec2) {
	c.Center = c.Center.Add(delta)
}

// PanScreen moves the view by a pixel delta the way dragging does:
// the content follows the cursor, so the center moves the other way.
func (c *Camera2D) PanScreen(delta glm.Vec2) {
	c.Center = c.Center.Sub(delta.Mul(1 / c.Scale))
}

// Zoom multiplies the scale, anchored on the viewport center.
func (c *Camera2D) Zoom(factor float32) {
	c.Scale *= factor
}

// ZoomAt multiplies the scale while keeping the world point under the
// given screen position where it is.
func (c *Camera2D) ZoomAt(screen glm.Vec2, factor float32) {
	before := c.ScreenToWorld(screen)
	c.Scale *= factor
	after := c.ScreenToWorld(screen)
	c.Center = c.Center.Add(before.Sub(after))
}

// WorldBounds returns the world rectangle the viewport sees, as its
// minimum and maximum corners.
func (c *Camera2D) WorldBounds() (glm.Vec2, glm.Vec2) {
	topLeft := c.ScreenToWorld(glm.Vec2{})
	bottomRight := c.ScreenToWorld(c.ScreenSize)
	min := glm.Vec2{
		float32(math.Min(float64(topLeft.X()), float64(bottomRight.X()))),
		float32(math.Min(float64(topLeft.Y()), float64(bottomRight.Y()))),
	}
	max := glm.Vec2{
		float32(math.Max(float64(topLeft.X()), float64(bottomRight.X()))),
		float32(math.Max(float64(topLeft.Y()), float64(bottomRight.Y()))),
	}
	return min, max
}

// Resize updates the viewport size. The center stays fixed, the view
// gains or loses margin.
func (c *Camera2D) Resize(width, height float32) {
	c.ScreenSize = glm.Vec2{width, height}
}

// ViewMatrix is WorldToScreen as a matrix for the vertex stage.
func (c *Camera2D) ViewMatrix() glm.Mat4 {
	center := glm.Translate3D(c.ScreenSize.X()/2, c.ScreenSize.Y()/2, 0)
	scale := glm.Scale3D(c.Scale, c.Scale, 1)
	focus := glm.Translate3D(-c.Center.X(), -c.Center.Y(), 0)
	return center.Mul4(scale).Mul4(focus)
}

const (
	// ZoomSensitivity is the scale factor one wheel notch applies.
	ZoomSensitivity = 1.1

	// ZoomSmoothness shapes the glide toward the zoom target, higher
	// values settle faster.
	ZoomSmoothness = 6.0
)

// CameraController drives a camera from pointer input. Dragging pans
// immediately, wheel zooming glides the scale toward its target so
// repeated notches read as one smooth motion.
type CameraController struct {
	Camera *Camera2D

	dragging   bool
	lastCursor glm.Vec2

	targetScale  float32
	targetCenter glm.Vec2
}

// NewCameraController wraps a camera, adopting its current scale and
// center as the glide targets.
func NewCameraController(camera *Camera2D) *CameraController {
	return &CameraController{
		Camera:       camera,
		targetScale:  camera.Scale,
		targetCenter: camera.Center,
	}
}

// BeginDrag starts panning from a cursor position in pixels.
func (cc *CameraController) BeginDrag(cursor glm.Vec2) {
	cc.dragging = true
	cc.lastCursor = cursor
}

// EndDrag stops panning.
func (cc *CameraController) EndDrag() {
	cc.dragging = false
}

// Dragging reports whether a drag is in progress.
func (cc *CameraController) Dragging() bool {
	return cc.dragging
}

// MoveTo follows the cursor, panning the camera while a drag is
// active. The glide target moves along so a pending zoom keeps the
// pan.
func (cc *CameraController) MoveTo(cursor glm.Vec2) {
	if !cc.dragging {
		return
	}
	delta := cursor.Sub(cc.lastCursor)
	cc.lastCursor = cursor
	cc.Camera.PanScreen(delta)
	cc.targetCenter = cc.targetCenter.Sub(delta.Mul(1 / cc.Camera.Scale))
}

// Wheel zooms about the cursor, positive notches zoom in. The new
// scale and center become glide targets for Update.
func (cc *CameraController) Wheel(cursor glm.Vec2, notches float32) {
	factor := float32(math.Pow(ZoomSensitivity, float64(notches)))

	// Resolve where the camera would land if the zoom applied at
	// once, then let Update glide there.
	probe := Camera2D{
		Center:     cc.targetCenter,
		Scale:      cc.targetScale,
		ScreenSize: cc.Camera.ScreenSize,
	}
	probe.ZoomAt(cursor, factor)
	cc.targetScale = probe.Scale
	cc.targetCenter = probe.Center
}

// Update advances the glide by dt seconds. The step is framerate
// independent, the remaining distance decays exponentially.
func (cc *CameraController) Update(dt float32) {
	t := 1 - float32(math.Exp(float64(-ZoomSmoothness*dt)))
	cc.Camera.Scale += (cc.targetScale - cc.Camera.Scale) * t
	cc.Camera.Center = cc.Camera.Center.Add(cc.targetCenter.Sub(cc.Camera.Center).Mul(t))
}
