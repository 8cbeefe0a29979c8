package window

import (
	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
)

// Event is a platform event translated for the engine. The concrete
// types are the Event structs in this package.
type Event interface {
	isEvent()
}

// Key identifies a keyboard key.
type Key int32

// Keys the engine reacts to.
const (
	KeyEscape = Key(sdl.K_ESCAPE)
	KeySpace  = Key(sdl.K_SPACE)
)

// MouseButton identifies a mouse button.
type MouseButton uint8

// Mouse buttons in platform order.
const (
	MouseButtonLeft   MouseButton = sdl.BUTTON_LEFT
	MouseButtonMiddle MouseButton = sdl.BUTTON_MIDDLE
	MouseButtonRight  MouseButton = sdl.BUTTON_RIGHT
)

// QuitEvent reports a close request.
type QuitEvent struct{}

// ResizeEvent reports a new drawable size in pixels.
type ResizeEvent struct {
	Width  int
	Height int
}

// KeyEvent reports a key going down or up.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

// MouseMoveEvent reports the cursor position in window coordinates.
type MouseMoveEvent struct {
	Position glm.Vec2
}

// MouseButtonEvent reports a button going down or up at a position.
type MouseButtonEvent struct {
	Button   MouseButton
	Position glm.Vec2
	Pressed  bool
}

// MouseWheelEvent reports vertical scroll steps, positive away from
// the user.
type MouseWheelEvent struct {
	Delta float32
}

func (QuitEvent) isEvent()        {}
func (ResizeEvent) isEvent()      {}
func (KeyEvent) isEvent()         {}
func (MouseMoveEvent) isEvent()   {}
func (MouseButtonEvent) isEvent() {}
func (MouseWheelEvent) isEvent()  {}

// Poll drains the platform queue and translates the events the engine
// reacts to. Events it does not know are dropped. Cursor positions
// come back in drawable pixels.
func (w *Window) Poll() []Event {
	var events []Event
	ratio := w.pixelRatio()
	for polled := sdl.PollEvent(); polled != nil; polled = sdl.PollEvent() {
		switch et := polled.(type) {
		case *sdl.QuitEvent:
			events = append(events, QuitEvent{})
		case *sdl.WindowEvent:
			if et.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.Size()
				events = append(events, ResizeEvent{Width: width, Height: height})
			}
		case *sdl.KeyboardEvent:
			events = append(events, KeyEvent{
				Key:     Key(et.Keysym.Sym),
				Pressed: et.Type == sdl.KEYDOWN,
			})
		case *sdl.MouseMotionEvent:
			events = append(events, MouseMoveEvent{
				Position: glm.Vec2{float32(et.X) * ratio, float32(et.Y) * ratio},
			})
		case *sdl.MouseButtonEvent:
			events = append(events, MouseButtonEvent{
				Button:   MouseButton(et.Button),
				Position: glm.Vec2{float32(et.X) * ratio, float32(et.Y) * ratio},
				Pressed:  et.Type == sdl.MOUSEBUTTONDOWN,
			})
		case *sdl.MouseWheelEvent:
			events = append(events, MouseWheelEvent{Delta: float32(et.Y)})
		}
	}
	return events
}
