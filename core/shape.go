// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/font"
	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/mesh"
)

var (
	// ErrNoStroke is returned when per-instance stroke colors arrive
	// for a style that never strokes.
	ErrNoStroke = errors.New("shape style has no stroke component")

	// ErrNotText is returned when a text constructor receives a shape
	// of another kind.
	ErrNotText = errors.New("shape is not a text shape")
)

// ShapeRenderable binds a shape to its mesh and shader program so it
// can draw. Construction tessellates once, afterwards the shape moves
// through its transform alone. The caller owns the renderable and has
// to Release it.
type ShapeRenderable struct {
	shape    geometry.Shape
	mesh     *mesh.Mesh
	registry *ShaderRegistry
	program  string

	// Screen anchored renderables keep their world anchor here and
	// project it at draw time, their mesh stays at the origin.
	anchor         glm.Vec2
	screenAnchored bool

	released bool
}

// NewShapeRenderable tessellates a shape and uploads its mesh. Text
// shapes go through NewTextRenderable instead, they need a font face.
func NewShapeRenderable(device gfx.Device, registry *ShaderRegistry, shape geometry.Shape) (*ShapeRenderable, error) {
	tess, err := geometry.Tessellate(shape)
	if err != nil {
		return nil, err
	}
	m, err := mesh.New(device, tess)
	if err != nil {
		return nil, err
	}

	program := ShapeShader
	if shape.Kind() == geometry.KindImage {
		program = TextureShader
	}
	m.SetProgram(program)
	m.SetPosition(shape.Position())

	style := shape.Style()
	switch shape.Kind() {
	case geometry.KindPoint, geometry.KindMultiPoint:
		m.SetColor(style.LineColor())
		m.SetPointSize(style.Width())
	case geometry.KindImage:
		// The texture carries the color, the white default leaves it
		// unmodulated.
	default:
		m.SetColor(style.FillColor)
		m.SetStrokeColor(style.LineColor())
	}

	if _, err := registry.Acquire(program); err != nil {
		m.Release()
		return nil, err
	}
	return &ShapeRenderable{shape: shape, mesh: m, registry: registry, program: program}, nil
}

// NewTextRenderable lowers a text shape through a font face into a
// glyph quad mesh sampling the face's atlas. The text draws screen
// anchored: its world position projects through the camera but the
// glyphs keep their pixel size at every zoom.
func NewTextRenderable(device gfx.Device, registry *ShaderRegistry, face *font.Face, shape geometry.Shape) (*ShapeRenderable, error) {
	if shape.Kind() != geometry.KindText {
		return nil, ErrNotText
	}

	geom, err := face.Geometry(shape.Text())
	if err != nil {
		return nil, err
	}
	m, err := mesh.New(device, geometry.Tessellation{Fill: geom})
	if err != nil {
		return nil, err
	}

	m.SetProgram(TextShader)
	m.SetTexture(face.Texture())
	m.SetScale(shape.TextSize() / face.Size())

	style := shape.Style()
	color := style.FillColor
	if !style.HasFill() {
		color = style.StrokeColor
	}
	m.SetColor(color)

	if _, err := registry.Acquire(TextShader); err != nil {
		m.Release()
		return nil, err
	}
	return &ShapeRenderable{
		shape:          shape,
		mesh:           m,
		registry:       registry,
		program:        TextShader,
		anchor:         shape.Position(),
		screenAnchored: true,
	}, nil
}

// Kind returns the wrapped shape kind.
func (s *ShapeRenderable) Kind() geometry.Kind {
	return s.shape.Kind()
}

// Style returns the style the shape was built with.
func (s *ShapeRenderable) Style() geometry.Style {
	return s.shape.Style()
}

// Mesh exposes the mesh for direct tweaks like attaching a texture.
func (s *ShapeRenderable) Mesh() *mesh.Mesh {
	return s.mesh
}

// SetPosition moves the shape anchor in world space.
func (s *ShapeRenderable) SetPosition(p glm.Vec2) {
	if s.screenAnchored {
		s.anchor = p
		return
	}
	s.mesh.SetPosition(p)
}

// Position returns the world anchor.
func (s *ShapeRenderable) Position() glm.Vec2 {
	if s.screenAnchored {
		return s.anchor
	}
	return s.mesh.Position()
}

// SetScale sets the uniform scale about the shape anchor.
func (s *ShapeRenderable) SetScale(scale float32) {
	s.mesh.SetScale(scale)
}

// Scale returns the uniform scale factor.
func (s *ShapeRenderable) Scale() float32 {
	return s.mesh.Scale()
}

// SetRotation sets the rotation about the shape anchor in radians.
func (s *ShapeRenderable) SetRotation(radians float32) {
	s.mesh.SetRotation(radians)
}

// Rotation returns the rotation in radians.
func (s *ShapeRenderable) Rotation() float32 {
	return s.mesh.Rotation()
}

// CreateInstances sizes the renderable for count instances.
func (s *ShapeRenderable) CreateInstances(count int) error {
	return s.mesh.EnableInstancing(count)
}

// Instances returns the configured instance count.
func (s *ShapeRenderable) Instances() int {
	return s.mesh.Instances()
}

// SetInstancePositions uploads one world offset per instance.
func (s *ShapeRenderable) SetInstancePositions(offsets []glm.Vec2) error {
	return s.mesh.SetInstanceOffsets(offsets)
}

// SetInstanceColors uploads per-instance fill colors. A zero alpha
// color keeps the shape's own color for that instance.
func (s *ShapeRenderable) SetInstanceColors(colors []gfx.Color) error {
	return s.mesh.SetInstanceColors(colors)
}

// SetInstanceStrokeColors uploads per-instance stroke colors. The
// style has to stroke for these to mean anything.
func (s *ShapeRenderable) SetInstanceStrokeColors(colors []gfx.Color) error {
	if !s.shape.Style().HasStroke() {
		return ErrNoStroke
	}
	return s.mesh.SetInstanceStrokeColors(colors)
}

// Released reports whether the renderable gave up its resources.
func (s *ShapeRenderable) Released() bool {
	return s.released
}

// Release frees the mesh and returns the shader reference, exactly
// once.
func (s *ShapeRenderable) Release() {
	if s.released {
		return
	}
	s.released = true
	s.mesh.Release()
	s.registry.Release(s.program)
}

// draw picks the draw path the renderable is configured for.
func (s *ShapeRenderable) draw(r *OpenGLRenderer, camera *Camera2D) error {
	if s.released {
		return mesh.ErrReleased
	}
	if s.screenAnchored {
		return r.DrawMeshAt(s.mesh, camera.WorldToScreen(s.anchor))
	}
	if s.mesh.Instances() > 0 {
		return r.DrawMeshInstanced(camera, s.mesh)
	}
	return r.DrawMesh(camera, s.mesh)
}
