// Package window opens the native window with an OpenGL context and
// translates the platform event queue into engine events.
package window

import (
	"errors"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/algonents/wilhelm-renderer/core"
)

// Window owns the native window and its OpenGL context. The caller
// initialises SDL before New and keeps every call on the thread the
// context is current on.
type Window struct {
	window   *sdl.Window
	context  sdl.GLContext
	released bool
}

// New opens a window with a core profile OpenGL 3.3 context and makes
// the context current on the calling thread.
func New(cfg core.WindowConfiguration) (*Window, error) {
	attributes := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 3},
		{sdl.GL_CONTEXT_MINOR_VERSION, 3},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
	}
	for _, a := range attributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return nil, errors.New("sdl.GLSetAttribute(): " + err.Error())
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	win, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags)
	if err != nil {
		return nil, errors.New("sdl.CreateWindow(): " + err.Error())
	}

	context, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, errors.New("GLCreateContext(): " + err.Error())
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	// A driver without swap interval control is not a reason to fail.
	_ = sdl.GLSetSwapInterval(interval)

	return &Window{window: win, context: context}, nil
}

// Size returns the drawable size in pixels. On high dpi displays this
// is larger than the window size.
func (w *Window) Size() (int, int) {
	width, height := w.window.GLGetDrawableSize()
	return int(width), int(height)
}

// MousePosition returns the cursor position in drawable pixels.
func (w *Window) MousePosition() glm.Vec2 {
	x, y, _ := sdl.GetMouseState()
	ratio := w.pixelRatio()
	return glm.Vec2{float32(x) * ratio, float32(y) * ratio}
}

// pixelRatio is the drawable to window size ratio, above one on high
// dpi displays. Mouse coordinates arrive in window units and scale
// through it into pixels.
func (w *Window) pixelRatio() float32 {
	width, _ := w.window.GetSize()
	drawable, _ := w.window.GLGetDrawableSize()
	if width == 0 {
		return 1
	}
	return float32(drawable) / float32(width)
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.window.GLSwap()
}

// Release destroys the context and the window, exactly once.
func (w *Window) Release() {
	if w.released {
		return
	}
	w.released = true
	sdl.GLDeleteContext(w.context)
	w.window.Destroy()
}
