// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package font rasterizes vector fonts into a single channel glyph
// atlas and lowers strings into textured quad geometry over it.
package font

import (
	"errors"
	"image"
	"sync"

	glm "github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
)

// atlasSize is the width and height of the glyph atlas texture.
const atlasSize = 1024

var (
	// ErrAtlasFull is returned when a new glyph no longer fits the
	// atlas texture.
	ErrAtlasFull = errors.New("glyph atlas full")

	// ErrFaceReleased is returned when a released face is used.
	ErrFaceReleased = errors.New("font face already released")
)

// Glyph describes one rasterized rune in the atlas.
type Glyph struct {
	// UVMin and UVMax bound the glyph in atlas coordinates.
	UVMin glm.Vec2
	UVMax glm.Vec2

	// Size is the quad extent in pixels.
	Size glm.Vec2

	// Bearing moves from the pen position on the baseline to the
	// quad's top left corner, y grows downward.
	Bearing glm.Vec2

	// Advance moves the pen to the next glyph.
	Advance float32
}

// Face rasterizes one font at one size into an atlas texture the
// device owns until Release. Glyphs bake on first use, so Geometry
// belongs on the thread owning the device context. The printable
// ASCII range is baked up front.
type Face struct {
	device  gfx.Device
	face    font.Face
	size    float32
	texture gfx.Texture
	metrics font.Metrics

	mutex     sync.Mutex
	glyphs    map[rune]Glyph
	cursorX   int
	cursorY   int
	rowHeight int
	released  bool
}

// NewFace parses font bytes and prepares an atlas for the given size
// in pixels.
func NewFace(device gfx.Device, source []byte, size float32) (*Face, error) {
	parsed, err := opentype.Parse(source)
	if err != nil {
		return nil, errors.New("opentype.Parse(): " + err.Error())
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.New("opentype.NewFace(): " + err.Error())
	}

	texture := device.CreateTexture()
	device.BindTexture(texture)
	device.TexImageRed(atlasSize, atlasSize, make([]uint8, atlasSize*atlasSize))

	f := &Face{
		device:  device,
		face:    face,
		size:    size,
		texture: texture,
		metrics: face.Metrics(),
		glyphs:  make(map[rune]Glyph),
	}
	for r := rune(' '); r <= '~'; r++ {
		if _, err := f.glyph(r); err != nil {
			f.Release()
			return nil, err
		}
	}
	return f, nil
}

// Default prepares a face of the bundled Go Regular font.
func Default(device gfx.Device, size float32) (*Face, error) {
	return NewFace(device, goregular.TTF, size)
}

// Size returns the size the face was rasterized at, in pixels.
func (f *Face) Size() float32 {
	return f.size
}

// Texture returns the atlas texture glyph quads sample.
func (f *Face) Texture() gfx.Texture {
	return f.texture
}

// Ascent returns the baseline distance from the top of a line.
func (f *Face) Ascent() float32 {
	return f26(f.metrics.Ascent)
}

// LineHeight returns the vertical extent of one line.
func (f *Face) LineHeight() float32 {
	return f26(f.metrics.Ascent + f.metrics.Descent)
}

// Measure returns the advance width and line height of a single line
// of text, in pixels.
func (f *Face) Measure(text string) glm.Vec2 {
	var pen float32
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			pen += f26(f.face.Kern(prev, r))
		}
		_, advance, ok := f.face.GlyphBounds(r)
		if ok {
			pen += f26(advance)
		}
		prev = r
	}
	return glm.Vec2{pen, f.LineHeight()}
}

// Geometry lowers a single line of text into textured quads, one per
// visible glyph. The quad stream is anchored top left at the origin
// with the baseline at the face ascent. Runes the font does not carry
// take no space.
func (f *Face) Geometry(text string) (geometry.Geometry, error) {
	if f.Released() {
		return geometry.Geometry{}, ErrFaceReleased
	}

	geom := geometry.Geometry{Topology: gfx.Triangles, VertexSize: 4}
	var pen float32
	baseline := f.Ascent()
	prev := rune(-1)

	for _, r := range text {
		if prev >= 0 {
			pen += f26(f.face.Kern(prev, r))
		}
		prev = r

		glyph, err := f.glyph(r)
		if err != nil {
			return geometry.Geometry{}, err
		}
		if glyph.Size.X() == 0 || glyph.Size.Y() == 0 {
			pen += glyph.Advance
			continue
		}

		x0 := pen + glyph.Bearing.X()
		y0 := baseline + glyph.Bearing.Y()
		x1 := x0 + glyph.Size.X()
		y1 := y0 + glyph.Size.Y()
		u0, v0 := glyph.UVMin.X(), glyph.UVMin.Y()
		u1, v1 := glyph.UVMax.X(), glyph.UVMax.Y()

		geom.Vertices = append(geom.Vertices,
			x0, y0, u0, v0,
			x1, y0, u1, v0,
			x0, y1, u0, v1,
			x1, y0, u1, v0,
			x1, y1, u1, v1,
			x0, y1, u0, v1,
		)
		pen += glyph.Advance
	}
	return geom, nil
}

// Glyph returns the atlas entry for a rune, baking it on first use.
func (f *Face) Glyph(r rune) (Glyph, error) {
	if f.Released() {
		return Glyph{}, ErrFaceReleased
	}
	return f.glyph(r)
}

// Released reports whether the atlas is gone.
func (f *Face) Released() bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.released
}

// Release frees the atlas texture and closes the font, exactly once.
func (f *Face) Release() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.released {
		return
	}
	f.released = true
	f.device.DeleteTexture(f.texture)
	f.face.Close()
	f.texture = 0
}

// glyph resolves the cache, rasterizing and uploading on a miss.
func (f *Face) glyph(r rune) (Glyph, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if glyph, ok := f.glyphs[r]; ok {
		return glyph, nil
	}

	bounds, advance, ok := f.face.GlyphBounds(r)
	if !ok {
		// Unknown runes take no space.
		f.glyphs[r] = Glyph{}
		return Glyph{}, nil
	}

	glyph := Glyph{
		Size: glm.Vec2{
			float32((bounds.Max.X - bounds.Min.X).Ceil()),
			float32((bounds.Max.Y - bounds.Min.Y).Ceil()),
		},
		Bearing: glm.Vec2{f26(bounds.Min.X), f26(bounds.Min.Y)},
		Advance: f26(advance),
	}

	width := int(glyph.Size.X())
	height := int(glyph.Size.Y())
	if width > 0 && height > 0 {
		x, y, err := f.reserve(width, height)
		if err != nil {
			return Glyph{}, err
		}

		mask := image.NewGray(image.Rect(0, 0, width, height))
		drawer := font.Drawer{
			Dst:  mask,
			Src:  image.White,
			Face: f.face,
			Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
		}
		drawer.DrawString(string(r))

		f.device.BindTexture(f.texture)
		f.device.TexSubImageRed(x, y, width, height, mask.Pix)

		glyph.UVMin = glm.Vec2{float32(x) / atlasSize, float32(y) / atlasSize}
		glyph.UVMax = glm.Vec2{
			float32(x+width) / atlasSize,
			float32(y+height) / atlasSize,
		}
	}

	f.glyphs[r] = glyph
	return glyph, nil
}

// reserve row-packs a glyph sized region, keeping one pixel of
// padding between neighbors so linear sampling does not bleed.
func (f *Face) reserve(width, height int) (int, int, error) {
	if f.cursorX+width+1 > atlasSize {
		f.cursorX = 0
		f.cursorY += f.rowHeight + 1
		f.rowHeight = 0
	}
	if f.cursorY+height+1 > atlasSize || width+1 > atlasSize {
		return 0, 0, ErrAtlasFull
	}

	x, y := f.cursorX, f.cursorY
	f.cursorX += width + 1
	if height > f.rowHeight {
		f.rowHeight = height
	}
	return x, y, nil
}

func f26(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
