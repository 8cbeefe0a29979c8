// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mesh_test

import (
	"math"
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/gfx/gfxtest"
	"github.com/algonents/wilhelm-renderer/mesh"
)

func quadTessellation() geometry.Tessellation {
	return geometry.Tessellation{
		Fill: geometry.Geometry{
			Vertices:   []float32{0, 0, 10, 0, 0, 10, 10, 10},
			Topology:   gfx.TriangleStrip,
			VertexSize: 2,
		},
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMeshUploadsGeometry(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, quadTessellation())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	buffers, arrays, _, _ := device.Created()
	if buffers != 1 || arrays != 1 {
		t.Errorf("expected 1 buffer and 1 vertex array, got %d and %d", buffers, arrays)
	}
	if m.FillCount() != 4 || m.StrokeCount() != 0 {
		t.Errorf("expected 4 fill and 0 stroke vertices, got %d and %d", m.FillCount(), m.StrokeCount())
	}
	if m.FillTopology() != gfx.TriangleStrip {
		t.Errorf("fill topology = %d", m.FillTopology())
	}
	if m.Textured() {
		t.Error("plain quad reported as textured")
	}
	if device.CallIndex("VertexAttribPointer(0, 2, 2, 0)") < 0 {
		t.Error("position attribute was not described")
	}
}

func TestMeshConcatenatesStreams(t *testing.T) {
	device := gfxtest.New()
	tess := geometry.Tessellation{
		Fill: geometry.Geometry{
			Vertices:   []float32{0, 0, 4, 0, 4, 4},
			Topology:   gfx.Triangles,
			VertexSize: 2,
		},
		Stroke: geometry.Geometry{
			Vertices:   []float32{9, 9, 8, 8},
			Topology:   gfx.Triangles,
			VertexSize: 2,
		},
	}
	m, err := mesh.New(device, tess)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.FillCount() != 3 || m.StrokeCount() != 2 {
		t.Fatalf("range counts = %d and %d", m.FillCount(), m.StrokeCount())
	}
	if m.VertexCount() != 5 {
		t.Errorf("VertexCount() = %d, want 5", m.VertexCount())
	}

	contents := device.BufferContents(gfx.Buffer(2))
	if len(contents) != 10 {
		t.Fatalf("uploaded %d floats, want 10", len(contents))
	}
	if contents[6] != 9 || contents[7] != 9 {
		t.Errorf("stroke range does not follow the fill range: %v", contents)
	}
}

func TestMeshRejectsBadLayout(t *testing.T) {
	device := gfxtest.New()

	_, err := mesh.New(device, geometry.Tessellation{
		Fill: geometry.Geometry{Vertices: []float32{0, 0, 0}, Topology: gfx.Points, VertexSize: 3},
	})
	if err != mesh.ErrVertexLayout {
		t.Errorf("vertex size 3: err = %v, want ErrVertexLayout", err)
	}

	_, err = mesh.New(device, geometry.Tessellation{
		Fill:   geometry.Geometry{Vertices: []float32{0, 0, 0, 0}, Topology: gfx.Triangles, VertexSize: 4},
		Stroke: geometry.Geometry{Vertices: []float32{0, 0}, Topology: gfx.Triangles, VertexSize: 2},
	})
	if err != mesh.ErrVertexLayout {
		t.Errorf("mismatched streams: err = %v, want ErrVertexLayout", err)
	}
}

func TestEmptyTessellation(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, geometry.Tessellation{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.VertexCount() != 0 {
		t.Errorf("VertexCount() = %d, want 0", m.VertexCount())
	}
	m.Release()
	if alive := device.AliveBuffers(); alive != 0 {
		t.Errorf("%d buffers alive after release", alive)
	}
}

func TestReleaseExactlyOnce(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, quadTessellation())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.EnableInstancing(8); err != nil {
		t.Fatalf("EnableInstancing: %v", err)
	}

	m.Release()
	deletes := device.CallCount("DeleteBuffer")
	if deletes != 4 {
		t.Errorf("first release deleted %d buffers, want 4", deletes)
	}

	m.Release()
	if device.CallCount("DeleteBuffer") != deletes {
		t.Error("second release issued more buffer deletes")
	}
	if device.DoubleFrees != 0 {
		t.Errorf("device saw %d double frees", device.DoubleFrees)
	}
	if device.AliveBuffers() != 0 || device.AliveVertexArrays() != 0 {
		t.Error("device objects survived release")
	}
	if !m.Released() {
		t.Error("Released() = false after release")
	}
}

func TestUseAfterRelease(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, quadTessellation())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Release()

	if err := m.EnableInstancing(4); err != mesh.ErrReleased {
		t.Errorf("EnableInstancing after release: err = %v, want ErrReleased", err)
	}
	if err := m.SetInstanceOffsets(make([]glm.Vec2, 4)); err != mesh.ErrReleased {
		t.Errorf("SetInstanceOffsets after release: err = %v, want ErrReleased", err)
	}
}

func TestInstanceDataContract(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, quadTessellation())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := m.SetInstanceOffsets(make([]glm.Vec2, 3)); err != mesh.ErrNotInstanced {
		t.Errorf("upload before enable: err = %v, want ErrNotInstanced", err)
	}
	if err := m.EnableInstancing(0); err != mesh.ErrInstanceCount {
		t.Errorf("EnableInstancing(0): err = %v, want ErrInstanceCount", err)
	}
	if err := m.EnableInstancing(3); err != nil {
		t.Fatalf("EnableInstancing: %v", err)
	}

	if err := m.SetInstanceOffsets(make([]glm.Vec2, 2)); err != mesh.ErrInstanceCount {
		t.Errorf("short offsets: err = %v, want ErrInstanceCount", err)
	}
	if err := m.SetInstanceColors(make([]gfx.Color, 4)); err != mesh.ErrInstanceCount {
		t.Errorf("long colors: err = %v, want ErrInstanceCount", err)
	}
	if err := m.SetInstanceStrokeColors(make([]gfx.Color, 1)); err != mesh.ErrInstanceCount {
		t.Errorf("short stroke colors: err = %v, want ErrInstanceCount", err)
	}

	if err := m.SetInstanceOffsets([]glm.Vec2{{0, 0}, {5, 5}, {10, 10}}); err != nil {
		t.Errorf("matching offsets: %v", err)
	}
	if err := m.SetInstanceColors(make([]gfx.Color, 3)); err != nil {
		t.Errorf("matching colors: %v", err)
	}
	if m.Instances() != 3 {
		t.Errorf("Instances() = %d, want 3", m.Instances())
	}
}

func TestInstanceUpdateOrphansStorage(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, quadTessellation())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.EnableInstancing(2); err != nil {
		t.Fatalf("EnableInstancing: %v", err)
	}

	device.ResetCalls()
	if err := m.SetInstanceOffsets([]glm.Vec2{{1, 2}, {3, 4}}); err != nil {
		t.Fatalf("SetInstanceOffsets: %v", err)
	}

	alloc := device.CallIndex("AllocArrayBuffer(4 floats")
	sub := device.CallIndex("ArrayBufferSubData(0, 4 floats)")
	if alloc < 0 || sub < 0 {
		t.Fatalf("upload did not orphan then copy, calls: %v", device.Calls)
	}
	if alloc > sub {
		t.Error("storage was copied before it was orphaned")
	}
}

func TestInstancingResize(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, quadTessellation())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.EnableInstancing(2); err != nil {
		t.Fatalf("EnableInstancing: %v", err)
	}
	buffers, _, _, _ := device.Created()

	if err := m.EnableInstancing(16); err != nil {
		t.Fatalf("resize: %v", err)
	}
	after, _, _, _ := device.Created()
	if after != buffers {
		t.Errorf("resize created %d new buffers", after-buffers)
	}
	if err := m.SetInstanceOffsets(make([]glm.Vec2, 16)); err != nil {
		t.Errorf("upload after resize: %v", err)
	}
}

func TestModelMatrixTransformOrder(t *testing.T) {
	device := gfxtest.New()
	m, err := mesh.New(device, quadTessellation())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.SetPosition(glm.Vec2{100, 100})
	m.SetRotation(math.Pi / 2)
	m.SetScale(2)

	local := glm.Vec4{10, 0, 0, 1}
	world := m.ModelMatrix().Mul4x1(local)
	if !near(world.X(), 100) || !near(world.Y(), 120) {
		t.Errorf("local (10,0) landed at (%g, %g), want (100, 120)", world.X(), world.Y())
	}

	origin := m.ModelMatrix().Mul4x1(glm.Vec4{0, 0, 0, 1})
	if !near(origin.X(), 100) || !near(origin.Y(), 100) {
		t.Errorf("local origin landed at (%g, %g), want (100, 100)", origin.X(), origin.Y())
	}
}

func TestManyMeshLifecycle(t *testing.T) {
	device := gfxtest.New()

	meshes := make([]*mesh.Mesh, 0, 1000)
	for idx := 0; idx < 1000; idx++ {
		m, err := mesh.New(device, quadTessellation())
		if err != nil {
			t.Fatalf("New #%d: %v", idx, err)
		}
		if idx%3 == 0 {
			if err := m.EnableInstancing(4); err != nil {
				t.Fatalf("EnableInstancing #%d: %v", idx, err)
			}
		}
		meshes = append(meshes, m)
	}
	for _, m := range meshes {
		m.Release()
	}

	if alive := device.AliveBuffers(); alive != 0 {
		t.Errorf("%d buffers still alive", alive)
	}
	if alive := device.AliveVertexArrays(); alive != 0 {
		t.Errorf("%d vertex arrays still alive", alive)
	}
	createdBuffers, createdArrays, _, _ := device.Created()
	deletedBuffers, deletedArrays, _, _ := device.Deleted()
	if createdBuffers != deletedBuffers || createdArrays != deletedArrays {
		t.Errorf("created %d/%d, deleted %d/%d", createdBuffers, createdArrays, deletedBuffers, deletedArrays)
	}
	if device.DoubleFrees != 0 {
		t.Errorf("device saw %d double frees", device.DoubleFrees)
	}
	t.Logf("cycled %d buffers and %d vertex arrays", createdBuffers, createdArrays)
}
