// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core ties the engine together: cameras, projections, the
// shader registry and the renderer that draws meshes through them.
package core

import (
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/mesh"
)

// Renderer describes the drawing machinery. It's created only with
// internal values set, it needs to be initialised with Initialise()
// before use.
type Renderer interface {
	// Initialise compiles the default shader programs and prepares
	// device state. Has to run on the thread owning the context
	// before any draw.
	Initialise() error

	// Clear starts a frame by wiping the viewport to a color.
	Clear(c gfx.Color)

	// Resize updates the pixel viewport and projection.
	Resize(width, height int)

	// DrawMesh draws one mesh through the camera, fill range first,
	// stroke range second.
	DrawMesh(camera *Camera2D, m *mesh.Mesh) error

	// DrawMeshAt draws one mesh anchored at a fixed screen position,
	// bypassing the camera scale. Screen anchored labels use it.
	DrawMeshAt(m *mesh.Mesh, screen glm.Vec2) error

	// DrawMeshInstanced draws every configured instance of a mesh
	// through the camera.
	DrawMeshInstanced(camera *Camera2D, m *mesh.Mesh) error

	// DrawShape draws a shape renderable, picking the single or
	// instanced path from its configuration.
	DrawShape(camera *Camera2D, shape *ShapeRenderable) error

	// Destroy returns the renderer's shader references. Meshes stay
	// with their creators and keep their own release duty.
	Destroy()
}
