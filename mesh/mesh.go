// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package mesh owns the device side of tessellated geometry: one
// vertex array with its vertex buffers, plus the transform and color
// state a draw needs.
package mesh

import (
	"errors"
	"sync"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
)

// Attribute locations shared by every shader program.
const (
	AttribPosition            = 0
	AttribInstanceOffset      = 1
	AttribInstanceColor       = 2
	AttribInstanceStrokeColor = 3
)

// DefaultProgram is the shader program name meshes draw with unless
// SetProgram picks another one.
const DefaultProgram = "shape"

var (
	// ErrInstanceCount is returned when instance data does not match
	// the configured instance count, or the count itself is not
	// positive.
	ErrInstanceCount = errors.New("instance data does not match instance count")

	// ErrNotInstanced is returned when instance data arrives before
	// instancing was enabled.
	ErrNotInstanced = errors.New("instancing not enabled on mesh")

	// ErrReleased is returned when a released mesh is used.
	ErrReleased = errors.New("mesh already released")

	// ErrVertexLayout is returned for vertex streams the attribute
	// plan cannot describe.
	ErrVertexLayout = errors.New("unsupported vertex layout")
)

// Mesh pairs one vertex array with its device buffers. The fill and
// stroke streams of a tessellation share a single vertex buffer and
// draw as two ranges, the fill range first. Meshes may share shader
// programs but never buffers. Input handling code can move a mesh
// while the render loop reads it, so the transform and color state is
// guarded.
type Mesh struct {
	device gfx.Device

	vao     gfx.VertexArray
	vertex  gfx.Buffer
	offsets gfx.Buffer
	colors  gfx.Buffer
	strokes gfx.Buffer

	fillTopology   gfx.Topology
	fillCount      int
	strokeTopology gfx.Topology
	strokeCount    int
	vertexSize     int
	instances      int
	program        string

	mutex       sync.RWMutex
	position    glm.Vec2
	scale       float32
	rotation    float32
	color       gfx.Color
	strokeColor gfx.Color
	pointSize   float32
	texture     gfx.Texture

	released bool
}

// New uploads a tessellation and creates the vertex array describing
// it. The returned mesh owns both until Release. Fill and stroke
// streams have to agree on their vertex layout, a tessellation with
// neither stream yields a mesh that draws nothing.
func New(device gfx.Device, tess geometry.Tessellation) (*Mesh, error) {
	vertexSize := 2
	for _, geom := range []geometry.Geometry{tess.Fill, tess.Stroke} {
		if geom.IsEmpty() {
			continue
		}
		if geom.VertexSize != 2 && geom.VertexSize != 4 {
			return nil, ErrVertexLayout
		}
		vertexSize = geom.VertexSize
	}
	if !tess.Fill.IsEmpty() && !tess.Stroke.IsEmpty() && tess.Fill.VertexSize != tess.Stroke.VertexSize {
		return nil, ErrVertexLayout
	}

	m := &Mesh{
		device:         device,
		fillTopology:   tess.Fill.Topology,
		fillCount:      tess.Fill.VertexCount(),
		strokeTopology: tess.Stroke.Topology,
		strokeCount:    tess.Stroke.VertexCount(),
		vertexSize:     vertexSize,
		program:        DefaultProgram,
		scale:          1,
		color:          gfx.White,
		strokeColor:    gfx.White,
		pointSize:      1,
	}

	vertices := make([]float32, 0, len(tess.Fill.Vertices)+len(tess.Stroke.Vertices))
	vertices = append(vertices, tess.Fill.Vertices...)
	vertices = append(vertices, tess.Stroke.Vertices...)

	m.vao = device.CreateVertexArray()
	device.BindVertexArray(m.vao)

	m.vertex = device.CreateBuffer()
	device.BindArrayBuffer(m.vertex)
	device.ArrayBufferData(vertices, gfx.StaticDraw)
	device.EnableVertexAttrib(AttribPosition)
	device.VertexAttribPointer(AttribPosition, vertexSize, vertexSize, 0)

	device.BindVertexArray(0)
	return m, nil
}

// VertexArray returns the device handle draws bind.
func (m *Mesh) VertexArray() gfx.VertexArray {
	return m.vao
}

// FillTopology returns how the fill range assembles.
func (m *Mesh) FillTopology() gfx.Topology {
	return m.fillTopology
}

// FillCount returns the vertex count of the fill range.
func (m *Mesh) FillCount() int {
	return m.fillCount
}

// StrokeTopology returns how the stroke range assembles.
func (m *Mesh) StrokeTopology() gfx.Topology {
	return m.strokeTopology
}

// StrokeCount returns the vertex count of the stroke range, which
// starts right after the fill range.
func (m *Mesh) StrokeCount() int {
	return m.strokeCount
}

// VertexCount returns the total vertex count of both ranges.
func (m *Mesh) VertexCount() int {
	return m.fillCount + m.strokeCount
}

// Textured reports whether the vertex stream carries texture
// coordinates.
func (m *Mesh) Textured() bool {
	return m.vertexSize == 4
}

// Instances returns the configured instance count, zero when the mesh
// draws singly.
func (m *Mesh) Instances() int {
	return m.instances
}

// SetProgram names the shader program the mesh draws with.
func (m *Mesh) SetProgram(name string) {
	m.mutex.Lock()
	m.program = name
	m.mutex.Unlock()
}

// Program returns the shader program name.
func (m *Mesh) Program() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.program
}

// SetPosition moves the mesh anchor in world space.
func (m *Mesh) SetPosition(p glm.Vec2) {
	m.mutex.Lock()
	m.position = p
	m.mutex.Unlock()
}

// Position returns the world position of the mesh anchor.
func (m *Mesh) Position() glm.Vec2 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.position
}

// SetScale sets the uniform scale factor.
func (m *Mesh) SetScale(scale float32) {
	m.mutex.Lock()
	m.scale = scale
	m.mutex.Unlock()
}

// Scale returns the uniform scale factor.
func (m *Mesh) Scale() float32 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.scale
}

// SetRotation sets the rotation about the local origin in radians.
func (m *Mesh) SetRotation(radians float32) {
	m.mutex.Lock()
	m.rotation = radians
	m.mutex.Unlock()
}

// Rotation returns the rotation in radians.
func (m *Mesh) Rotation() float32 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.rotation
}

// SetColor sets the fill pass color.
func (m *Mesh) SetColor(c gfx.Color) {
	m.mutex.Lock()
	m.color = c
	m.mutex.Unlock()
}

// Color returns the fill pass color.
func (m *Mesh) Color() gfx.Color {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.color
}

// SetStrokeColor sets the stroke pass color.
func (m *Mesh) SetStrokeColor(c gfx.Color) {
	m.mutex.Lock()
	m.strokeColor = c
	m.mutex.Unlock()
}

// StrokeColor returns the stroke pass color.
func (m *Mesh) StrokeColor() gfx.Color {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.strokeColor
}

// SetPointSize sets the rasterized size of point topology ranges.
func (m *Mesh) SetPointSize(size float32) {
	m.mutex.Lock()
	m.pointSize = size
	m.mutex.Unlock()
}

// PointSize returns the rasterized size of point topology ranges.
func (m *Mesh) PointSize() float32 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.pointSize
}

// SetTexture attaches a texture the mesh samples. The mesh does not
// own it and Release leaves it alone.
func (m *Mesh) SetTexture(t gfx.Texture) {
	m.mutex.Lock()
	m.texture = t
	m.mutex.Unlock()
}

// Texture returns the attached texture, zero when there is none.
func (m *Mesh) Texture() gfx.Texture {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.texture
}

// ModelMatrix composes the local to world transform. Vertices rotate
// about the local origin, scale uniformly and then translate to the
// world position.
func (m *Mesh) ModelMatrix() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	translate := glm.Translate3D(m.position.X(), m.position.Y(), 0)
	rotate := glm.HomogRotate3DZ(m.rotation)
	scale := glm.Scale3D(m.scale, m.scale, 1)
	return translate.Mul4(rotate).Mul4(scale)
}

// Released reports whether the device objects are gone.
func (m *Mesh) Released() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.released
}

// Release frees the vertex array and every buffer exactly once. Later
// calls are no-ops, the handles are cleared on the first one.
func (m *Mesh) Release() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.released {
		return
	}
	m.released = true

	m.device.DeleteBuffer(m.vertex)
	if m.offsets != 0 {
		m.device.DeleteBuffer(m.offsets)
	}
	if m.colors != 0 {
		m.device.DeleteBuffer(m.colors)
	}
	if m.strokes != 0 {
		m.device.DeleteBuffer(m.strokes)
	}
	m.device.DeleteVertexArray(m.vao)

	m.vertex, m.offsets, m.colors, m.strokes = 0, 0, 0, 0
	m.vao = 0
	m.instances = 0
}
