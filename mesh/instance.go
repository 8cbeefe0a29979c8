// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mesh

import (
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
)

// EnableInstancing sizes the mesh for count instances, creating the
// per-instance buffers on first use. Calling it again resizes the
// streams in place, previously uploaded instance data is discarded.
// Instancing setup belongs on the thread owning the device context.
func (m *Mesh) EnableInstancing(count int) error {
	if m.Released() {
		return ErrReleased
	}
	if count < 1 {
		return ErrInstanceCount
	}

	m.device.BindVertexArray(m.vao)
	if m.offsets == 0 {
		m.offsets = m.instanceAttrib(AttribInstanceOffset, 2)
		m.colors = m.instanceAttrib(AttribInstanceColor, 4)
		m.strokes = m.instanceAttrib(AttribInstanceStrokeColor, 4)
	}

	m.device.BindArrayBuffer(m.offsets)
	m.device.AllocArrayBuffer(2*count, gfx.DynamicDraw)
	m.device.BindArrayBuffer(m.colors)
	m.device.AllocArrayBuffer(4*count, gfx.DynamicDraw)
	m.device.BindArrayBuffer(m.strokes)
	m.device.AllocArrayBuffer(4*count, gfx.DynamicDraw)
	m.device.BindVertexArray(0)

	m.instances = count
	return nil
}

// instanceAttrib creates one per-instance buffer and wires it to an
// attribute location advancing once per instance.
func (m *Mesh) instanceAttrib(location uint32, components int) gfx.Buffer {
	buffer := m.device.CreateBuffer()
	m.device.BindArrayBuffer(buffer)
	m.device.EnableVertexAttrib(location)
	m.device.VertexAttribPointer(location, components, components, 0)
	m.device.VertexAttribDivisor(location, 1)
	return buffer
}

// SetInstanceOffsets uploads one world space offset per instance. The
// slice length has to match the configured instance count exactly.
func (m *Mesh) SetInstanceOffsets(offsets []glm.Vec2) error {
	data := make([]float32, 0, 2*len(offsets))
	for _, offset := range offsets {
		data = append(data, offset.X(), offset.Y())
	}
	return m.uploadInstanceData(m.offsets, 2, len(offsets), data)
}

// SetInstanceColors uploads one fill color per instance. A color with
// zero alpha stands for no override, those instances keep the mesh
// color.
func (m *Mesh) SetInstanceColors(colors []gfx.Color) error {
	return m.uploadInstanceData(m.colors, 4, len(colors), flattenColors(colors))
}

// SetInstanceStrokeColors uploads one stroke color per instance, with
// the same zero alpha convention as SetInstanceColors.
func (m *Mesh) SetInstanceStrokeColors(colors []gfx.Color) error {
	return m.uploadInstanceData(m.strokes, 4, len(colors), flattenColors(colors))
}

// uploadInstanceData replaces one instance stream. The buffer storage
// is orphaned before the copy so a draw in flight keeps its old copy.
func (m *Mesh) uploadInstanceData(buffer gfx.Buffer, components, count int, data []float32) error {
	if m.Released() {
		return ErrReleased
	}
	if m.instances == 0 {
		return ErrNotInstanced
	}
	if count != m.instances {
		return ErrInstanceCount
	}

	m.device.BindArrayBuffer(buffer)
	m.device.AllocArrayBuffer(components*m.instances, gfx.DynamicDraw)
	m.device.ArrayBufferSubData(0, data)
	return nil
}

func flattenColors(colors []gfx.Color) []float32 {
	data := make([]float32, 0, 4*len(colors))
	for _, c := range colors {
		data = append(data, c.R, c.G, c.B, c.A)
	}
	return data
}
