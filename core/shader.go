// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gobuffalo/packr"

	"github.com/algonents/wilhelm-renderer/gfx"
)

// Names of the programs RegisterDefaults compiles.
const (
	// ShapeShader fills and strokes plain geometry.
	ShapeShader = "shape"

	// TextureShader samples an RGBA texture over a quad.
	TextureShader = "texture"

	// TextShader reads glyph coverage from a single channel atlas.
	TextShader = "text"
)

const (
	vertexSuffix   = ".vert"
	fragmentSuffix = ".frag"
)

// ErrShaderUnknown is returned when a program name was never
// registered, or its last reference is already gone.
var ErrShaderUnknown = errors.New("shader program not registered")

// ShaderRegistry compiles and owns shader programs by name. Programs
// are reference counted: registering holds the first reference,
// Acquire takes another, Release returns one, and the program is
// deleted when the last reference is gone. There is no process wide
// registry, whoever creates one owns it.
type ShaderRegistry struct {
	device gfx.Device

	mutex     sync.Mutex
	programs  map[string]*programRef
	destroyed bool
}

type programRef struct {
	program gfx.Program
	count   int
}

// NewShaderRegistry creates an empty registry compiling on device.
func NewShaderRegistry(device gfx.Device) *ShaderRegistry {
	return &ShaderRegistry{
		device:   device,
		programs: make(map[string]*programRef),
	}
}

// Register compiles a program under a name and keeps the registry's
// own reference to it. Names are stable identities, registering one
// twice is an error.
func (r *ShaderRegistry) Register(name, vertexSource, fragmentSource string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.programs[name]; ok {
		return errors.New("shader program " + name + " already registered")
	}
	program, err := r.device.CreateProgram(name, vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	r.programs[name] = &programRef{program: program, count: 1}
	return nil
}

// Registered reports whether a name currently resolves to a program.
func (r *ShaderRegistry) Registered(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, ok := r.programs[name]
	return ok
}

// Acquire returns the program compiled under name and takes a
// reference on it. Every Acquire needs a matching Release.
func (r *ShaderRegistry) Acquire(name string) (gfx.Program, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ref, ok := r.programs[name]
	if !ok {
		return 0, ErrShaderUnknown
	}
	ref.count++
	return ref.program, nil
}

// Release drops one reference on a name. The program is deleted and
// the name forgotten when the last reference is gone.
func (r *ShaderRegistry) Release(name string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.releaseLocked(name)
}

func (r *ShaderRegistry) releaseLocked(name string) error {
	ref, ok := r.programs[name]
	if !ok {
		return ErrShaderUnknown
	}
	ref.count--
	if ref.count == 0 {
		r.device.DeleteProgram(ref.program)
		delete(r.programs, name)
	}
	return nil
}

// RegisterDefaults compiles the built in programs from the embedded
// sources. Names that already resolve are left alone, so it is safe
// to call on a registry carrying overrides.
func (r *ShaderRegistry) RegisterDefaults() error {
	box := packr.NewBox("./shaders")
	for _, name := range []string{ShapeShader, TextureShader, TextShader} {
		if r.Registered(name) {
			continue
		}
		vertex, err := box.FindString(name + vertexSuffix)
		if err != nil {
			return err
		}
		fragment, err := box.FindString(name + fragmentSuffix)
		if err != nil {
			return err
		}
		if err := r.Register(name, vertex, fragment); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDirectory compiles every shader source pair found under a
// directory. A pair shares a base name carrying the .vert and .frag
// extensions, the base name becomes the program name. A vertex source
// without its fragment sibling is an error.
func (r *ShaderRegistry) RegisterDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() || !strings.HasSuffix(f.Name(), vertexSuffix) {
			return nil
		}

		vertex, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fragment, err := os.ReadFile(strings.TrimSuffix(path, vertexSuffix) + fragmentSuffix)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(f.Name(), vertexSuffix)
		return r.Register(name, string(vertex), string(fragment))
	})
}

// Destroy drops the registry's own reference on every remaining
// program, exactly once. Programs still acquired elsewhere survive
// until their holders release them.
func (r *ShaderRegistry) Destroy() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.destroyed {
		return
	}
	r.destroyed = true
	for name := range r.programs {
		r.releaseLocked(name)
	}
}
