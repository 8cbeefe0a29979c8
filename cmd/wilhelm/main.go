package main

import (
	"errors"
	"flag"
	"fmt"
	_ "image/png"
	"math"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	glm "github.com/go-gl/mathgl/mgl32"
	geo "github.com/go-gl/mathgl/mgl64"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/exp/mmap"

	"github.com/algonents/wilhelm-renderer/core"
	"github.com/algonents/wilhelm-renderer/font"
	"github.com/algonents/wilhelm-renderer/geometry"
	"github.com/algonents/wilhelm-renderer/gfx"
	"github.com/algonents/wilhelm-renderer/gfx/glr"
	"github.com/algonents/wilhelm-renderer/scene"
	"github.com/algonents/wilhelm-renderer/utility/war"
	"github.com/algonents/wilhelm-renderer/window"
)

func init() {
	runtime.LockOSThread()
}

// Essential globals
var (
	win        *window.Window
	device     gfx.Device
	registry   *core.ShaderRegistry
	renderer   core.Renderer
	camera     *core.Camera2D
	controller *core.CameraController

	fitMin, fitMax glm.Vec2
)

// Profiling
var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
)

var (
	scenePath = flag.String("scene", "", "Shape document to display")
	imagePath = flag.String("image", "", "PNG image to display")
	assets    = flag.String("assets", "", "Asset archive holding a font face for labels")
)

var configuration = core.Configuration{
	Time: core.TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  1,
	},
	Window: core.WindowConfiguration{
		Title:     "Wilhelm",
		Width:     1024,
		Height:    768,
		Resizable: true,
		VSync:     true,
	},
	Renderer: core.RendererConfiguration{
		ScreenWidth:  1024,
		ScreenHeight: 768,
		Background:   gfx.RGB(0.97, 0.96, 0.94),
	},
}

// labelSize is the pixel size labels render at.
const labelSize = 14

// Cities drawn when no document or image is given.
var cities = []struct {
	name   string
	lonLat geo.Vec2
}{
	{"Geneva", geo.Vec2{6.1432, 46.2044}},
	{"Lausanne", geo.Vec2{6.6323, 46.5197}},
	{"Bern", geo.Vec2{7.4474, 46.9480}},
	{"Sarnen", geo.Vec2{8.2457, 46.8959}},
	{"Zurich", geo.Vec2{8.5417, 47.3769}},
	{"St. Moritz", geo.Vec2{9.8355, 46.4908}},
}

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		panic(err)
	}
	defer sdl.Quit()

	var err error
	win, err = window.New(configuration.Window)
	if err != nil {
		panic(err)
	}
	defer win.Release()

	device, err = glr.NewDevice()
	if err != nil {
		panic(err)
	}

	registry = core.NewShaderRegistry(device)
	defer registry.Destroy()

	renderer = core.NewOpenGLRenderer(device, registry, configuration.Renderer)
	if err := renderer.Initialise(); err != nil {
		panic(err)
	}
	defer renderer.Destroy()

	// The drawable size can differ from the configured window size on
	// high dpi displays.
	width, height := win.Size()
	renderer.Resize(width, height)
	camera = core.NewCamera2D(float32(width), float32(height))
	controller = core.NewCameraController(camera)

	face, err := loadFace()
	if err != nil {
		panic(err)
	}
	defer face.Release()

	background := configuration.Renderer.Background
	var renderables []*core.ShapeRenderable
	switch {
	case *scenePath != "":
		renderables, background, err = loadDocument(face)
	case *imagePath != "":
		renderables, err = loadImage()
	default:
		renderables, err = cityMarkers(face)
	}
	if err != nil {
		panic(err)
	}
	defer releaseAll(renderables)
	log.Infof("Displaying %d renderables", len(renderables))

	timeService := core.NewTime(configuration.Time)
	defer timeService.Stop()

EventLoop:
	for {
		select {
		case <-timeService.EventTicker().C:
			for _, event := range win.Poll() {
				switch et := event.(type) {
				case window.QuitEvent:
					break EventLoop
				case window.KeyEvent:
					if !et.Pressed {
						continue
					}
					switch et.Key {
					case window.KeyEscape:
						break EventLoop
					case window.KeySpace:
						fitCamera(camera, fitMin, fitMax)
						controller = core.NewCameraController(camera)
					}
				case window.ResizeEvent:
					renderer.Resize(et.Width, et.Height)
					camera.Resize(float32(et.Width), float32(et.Height))
				case window.MouseButtonEvent:
					if et.Button != window.MouseButtonLeft {
						continue
					}
					if et.Pressed {
						controller.BeginDrag(et.Position)
					} else {
						controller.EndDrag()
					}
				case window.MouseMoveEvent:
					controller.MoveTo(et.Position)
				case window.MouseWheelEvent:
					controller.Wheel(win.MousePosition(), et.Delta)
				}
			}
		case <-timeService.FpsTicker().C:
			controller.Update(timeService.Step())
			renderer.Clear(background)
			for _, renderable := range renderables {
				if err := renderer.DrawShape(camera, renderable); err != nil {
					log.Error("Draw error: " + err.Error())
				}
			}
			win.Swap()
		}
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			panic(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic(err)
		}
	}
}

// loadFace loads the label font, from the asset archive when one is
// given.
func loadFace() (*font.Face, error) {
	if *assets == "" {
		return font.Default(device, labelSize)
	}

	reader, err := mmap.Open(*assets)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	archive, err := war.Open(reader)
	if err != nil {
		return nil, err
	}
	for _, entry := range archive.Header().Index {
		if !strings.HasSuffix(entry.Name, ".ttf") && !strings.HasSuffix(entry.Name, ".otf") {
			continue
		}
		data, err := archive.ReadAll(entry.Name)
		if err != nil {
			return nil, err
		}
		log.Info("Font face " + entry.Name)
		return font.NewFace(device, data, labelSize)
	}
	return nil, errors.New("no font face in " + *assets)
}

// cityMarkers projects the demo cities onto the plane and builds one
// instanced marker mesh plus a label per city.
func cityMarkers(face *font.Face) ([]*core.ShapeRenderable, error) {
	projection := core.WebMercator{}
	offsets := make([]glm.Vec2, 0, len(cities))
	for _, city := range cities {
		xy, err := projection.Project(city.lonLat)
		if err != nil {
			return nil, fmt.Errorf("project %s: %s", city.name, err)
		}
		// Screen y grows downward, north flips negative.
		offsets = append(offsets, glm.Vec2{float32(xy.X()), float32(-xy.Y())})
	}

	fitMin, fitMax = bounds(offsets)
	fitCamera(camera, fitMin, fitMax)

	// Marker and stroke sizes read in pixels at the fitted zoom.
	radius := 8 / camera.Scale
	shape, err := geometry.NewCircle(0, 0, radius,
		geometry.FillAndStrokeStyle(gfx.RGB(0.91, 0.26, 0.21), gfx.Black, 2/camera.Scale))
	if err != nil {
		return nil, err
	}
	markers, err := core.NewShapeRenderable(device, registry, shape)
	if err != nil {
		return nil, err
	}

	renderables := []*core.ShapeRenderable{markers}
	if err := markers.CreateInstances(len(offsets)); err != nil {
		releaseAll(renderables)
		return nil, err
	}
	if err := markers.SetInstancePositions(offsets); err != nil {
		releaseAll(renderables)
		return nil, err
	}

	palette := []gfx.Color{
		gfx.RGB(0.91, 0.26, 0.21),
		gfx.RGB(0.98, 0.74, 0.02),
		gfx.RGB(0.20, 0.66, 0.33),
		gfx.RGB(0.26, 0.52, 0.96),
	}
	colors := make([]gfx.Color, len(offsets))
	for idx := range colors {
		colors[idx] = palette[idx%len(palette)]
	}
	if err := markers.SetInstanceColors(colors); err != nil {
		releaseAll(renderables)
		return nil, err
	}

	for idx, city := range cities {
		shape, err := geometry.NewText(offsets[idx].X()+radius*1.5, offsets[idx].Y(),
			city.name, labelSize, geometry.FillStyle(gfx.Black))
		if err != nil {
			releaseAll(renderables)
			return nil, err
		}
		label, err := core.NewTextRenderable(device, registry, face, shape)
		if err != nil {
			releaseAll(renderables)
			return nil, err
		}
		renderables = append(renderables, label)
	}
	return renderables, nil
}

// loadImage shows one picture centered on the origin.
func loadImage() ([]*core.ShapeRenderable, error) {
	texture, width, height, err := core.LoadTexture(device, *imagePath)
	if err != nil {
		return nil, err
	}
	shape, err := geometry.NewImage(0, 0, float32(width), float32(height), *imagePath)
	if err != nil {
		return nil, err
	}
	renderable, err := core.NewShapeRenderable(device, registry, shape)
	if err != nil {
		return nil, err
	}
	renderable.Mesh().SetTexture(texture)

	half := glm.Vec2{float32(width) / 2, float32(height) / 2}
	fitMin, fitMax = half.Mul(-1), half
	fitCamera(camera, fitMin, fitMax)
	return []*core.ShapeRenderable{renderable}, nil
}

// loadDocument lowers a shape document into renderables and picks up
// its background color.
func loadDocument(face *font.Face) ([]*core.ShapeRenderable, gfx.Color, error) {
	f, err := os.Open(*scenePath)
	if err != nil {
		return nil, gfx.Color{}, err
	}
	defer f.Close()

	document, err := scene.Decode(f)
	if err != nil {
		return nil, gfx.Color{}, err
	}
	background, err := document.BackgroundColor()
	if err != nil {
		return nil, gfx.Color{}, err
	}
	shapes, err := document.Shapes()
	if err != nil {
		return nil, gfx.Color{}, err
	}

	var renderables []*core.ShapeRenderable
	for _, shape := range shapes {
		renderable, err := shapeRenderable(face, shape)
		if err != nil {
			releaseAll(renderables)
			return nil, gfx.Color{}, err
		}
		renderables = append(renderables, renderable)
	}

	if document.Width > 0 && document.Height > 0 {
		fitMin = glm.Vec2{}
		fitMax = glm.Vec2{document.Width, document.Height}
	} else {
		positions := make([]glm.Vec2, 0, len(renderables))
		for _, renderable := range renderables {
			positions = append(positions, renderable.Position())
		}
		fitMin, fitMax = bounds(positions)
	}
	fitCamera(camera, fitMin, fitMax)
	return renderables, background, nil
}

// shapeRenderable builds the right renderable for a shape kind. Text
// runs through the label face, images load their texture from disk.
func shapeRenderable(face *font.Face, shape geometry.Shape) (*core.ShapeRenderable, error) {
	switch shape.Kind() {
	case geometry.KindText:
		return core.NewTextRenderable(device, registry, face, shape)
	case geometry.KindImage:
		renderable, err := core.NewShapeRenderable(device, registry, shape)
		if err != nil {
			return nil, err
		}
		texture, _, _, err := core.LoadTexture(device, shape.Source())
		if err != nil {
			renderable.Release()
			return nil, err
		}
		renderable.Mesh().SetTexture(texture)
		return renderable, nil
	default:
		return core.NewShapeRenderable(device, registry, shape)
	}
}

// bounds returns the corners of the box around the points.
func bounds(points []glm.Vec2) (glm.Vec2, glm.Vec2) {
	if len(points) == 0 {
		return glm.Vec2{}, glm.Vec2{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = glm.Vec2{
			float32(math.Min(float64(min.X()), float64(p.X()))),
			float32(math.Min(float64(min.Y()), float64(p.Y()))),
		}
		max = glm.Vec2{
			float32(math.Max(float64(max.X()), float64(p.X()))),
			float32(math.Max(float64(max.Y()), float64(p.Y()))),
		}
	}
	return min, max
}

// fitCamera centers the view on a world box with some margin left
// around it.
func fitCamera(camera *core.Camera2D, min, max glm.Vec2) {
	camera.Center = min.Add(max).Mul(0.5)

	span := max.Sub(min)
	sx, sy := math.Inf(1), math.Inf(1)
	if span.X() > 0 {
		sx = float64(camera.ScreenSize.X() / span.X())
	}
	if span.Y() > 0 {
		sy = float64(camera.ScreenSize.Y() / span.Y())
	}
	scale := math.Min(sx, sy)
	if math.IsInf(scale, 1) {
		scale = 1
	}
	camera.Scale = float32(scale) * 0.8
}

func releaseAll(renderables []*core.ShapeRenderable) {
	for _, renderable := range renderables {
		renderable.Release()
	}
}
