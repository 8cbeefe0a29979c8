// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/mesh"
)

// OpenGLRenderer implements Renderer on a gfx device with a top left
// pixel projection. It acquires programs from a shader registry it
// does not own.
type OpenGLRenderer struct {
	device   gfx.Device
	registry *ShaderRegistry

	acquired   map[string]programEntry
	projection glm.Mat4

	width  int
	height int
}

// programEntry caches a program handle with its uniform locations so
// draws skip the name lookups.
type programEntry struct {
	program gfx.Program

	model      int32
	view       int32
	projection int32
	color      int32
	useStroke  int32
	sampler    int32
}

// NewOpenGLRenderer creates a renderer drawing through device with
// programs from registry. It needs to be initialised with
// Initialise() before use.
func NewOpenGLRenderer(device gfx.Device, registry *ShaderRegistry, cfg RendererConfiguration) Renderer {
	return &OpenGLRenderer{
		device:   device,
		registry: registry,
		acquired: make(map[string]programEntry),
		width:    cfg.ScreenWidth,
		height:   cfg.ScreenHeight,
	}
}

// Initialise implements interface
func (r *OpenGLRenderer) Initialise() error {
	if err := r.registry.RegisterDefaults(); err != nil {
		return errors.New("ShaderRegistry.RegisterDefaults(): " + err.Error())
	}
	for _, name := range []string{ShapeShader, TextureShader, TextShader} {
		if _, err := r.program(name); err != nil {
			return err
		}
	}

	r.device.EnableBlending()
	r.Resize(r.width, r.height)
	return nil
}

// Clear implements interface
func (r *OpenGLRenderer) Clear(c gfx.Color) {
	r.device.ClearColor(c)
	r.device.Clear()
}

// Resize implements interface
func (r *OpenGLRenderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.device.Viewport(0, 0, width, height)
	r.projection = glm.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// DrawMesh implements interface
func (r *OpenGLRenderer) DrawMesh(camera *Camera2D, m *mesh.Mesh) error {
	return r.draw(camera.ViewMatrix(), m, false)
}

// DrawMeshAt implements interface
func (r *OpenGLRenderer) DrawMeshAt(m *mesh.Mesh, screen glm.Vec2) error {
	view := glm.Translate3D(screen.X(), screen.Y(), 0)
	return r.draw(view, m, false)
}

// DrawMeshInstanced implements interface
func (r *OpenGLRenderer) DrawMeshInstanced(camera *Camera2D, m *mesh.Mesh) error {
	return r.draw(camera.ViewMatrix(), m, true)
}

// DrawShape implements interface
func (r *OpenGLRenderer) DrawShape(camera *Camera2D, shape *ShapeRenderable) error {
	return shape.draw(r, camera)
}

// Destroy implements interface
func (r *OpenGLRenderer) Destroy() {
	for name := range r.acquired {
		r.registry.Release(name)
		delete(r.acquired, name)
	}
}

// program resolves a cached program entry, acquiring a registry
// reference on first use.
func (r *OpenGLRenderer) program(name string) (programEntry, error) {
	if entry, ok := r.acquired[name]; ok {
		return entry, nil
	}

	program, err := r.registry.Acquire(name)
	if err != nil {
		return programEntry{}, err
	}
	entry := programEntry{
		program:    program,
		model:      r.device.UniformLocation(program, "u_model"),
		view:       r.device.UniformLocation(program, "u_view"),
		projection: r.device.UniformLocation(program, "u_projection"),
		color:      r.device.UniformLocation(program, "u_color"),
		useStroke:  r.device.UniformLocation(program, "u_useStroke"),
		sampler:    r.device.UniformLocation(program, "u_texture"),
	}
	r.acquired[name] = entry
	return entry, nil
}

// draw runs the fill and stroke passes of one mesh under a view
// matrix.
func (r *OpenGLRenderer) draw(view glm.Mat4, m *mesh.Mesh, instanced bool) error {
	if m == nil || m.VertexCount() == 0 {
		return nil
	}
	if m.Released() {
		return mesh.ErrReleased
	}
	instances := m.Instances()
	if instanced && instances == 0 {
		return mesh.ErrNotInstanced
	}

	entry, err := r.program(m.Program())
	if err != nil {
		return err
	}

	dev := r.device
	dev.UseProgram(entry.program)
	dev.UniformMatrix4(entry.projection, r.projection)
	dev.UniformMatrix4(entry.view, view)
	dev.UniformMatrix4(entry.model, m.ModelMatrix())
	dev.BindVertexArray(m.VertexArray())

	if m.Textured() {
		dev.ActiveTexture(0)
		dev.BindTexture(m.Texture())
		dev.Uniform1i(entry.sampler, 0)
	}
	if m.FillTopology() == gfx.Points && m.FillCount() > 0 {
		dev.PointSize(m.PointSize())
	}

	if !instanced {
		// Disabled instance attributes read their constant value,
		// which persists across draws on the context. Zero the alpha
		// of both color streams so the fragment stage falls back to
		// the uniform color.
		dev.VertexAttrib4f(mesh.AttribInstanceColor, 0, 0, 0, 0)
		dev.VertexAttrib4f(mesh.AttribInstanceStrokeColor, 0, 0, 0, 0)
	}

	if count := m.FillCount(); count > 0 {
		c := m.Color()
		dev.Uniform4f(entry.color, c.R, c.G, c.B, c.A)
		dev.Uniform1i(entry.useStroke, 0)
		if instanced {
			dev.DrawArraysInstanced(m.FillTopology(), 0, count, instances)
		} else {
			dev.DrawArrays(m.FillTopology(), 0, count)
		}
	}
	if count := m.StrokeCount(); count > 0 {
		c := m.StrokeColor()
		dev.Uniform4f(entry.color, c.R, c.G, c.B, c.A)
		dev.Uniform1i(entry.useStroke, 1)
		if instanced {
			dev.DrawArraysInstanced(m.StrokeTopology(), m.FillCount(), count, instances)
		} else {
			dev.DrawArrays(m.StrokeTopology(), m.FillCount(), count)
		}
	}

	dev.BindVertexArray(0)
	return nil
}
