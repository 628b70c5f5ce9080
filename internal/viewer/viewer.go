package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/config"
	"github.com/semafind/closepairs/points"
	"github.com/semafind/closepairs/render"
	"github.com/semafind/closepairs/viewport"
)

// viewer draws the same scene as the web page in a desktop window.
type viewer struct {
	n         int
	generator *points.Generator
	view      *viewport.Controller
	// Parsed once, scene colours never change between frames
	colours map[string]color.NRGBA
}

func newViewer(cfg viewport.Config, n int) *viewer {
	gen := points.NewGenerator()
	return &viewer{
		n:         catalog.ClampN(n),
		generator: gen,
		view:      viewport.NewController(cfg, gen.FullExtent()),
		colours:   make(map[string]color.NRGBA),
	}
}

func (v *viewer) colour(hex string, opacity float64) color.NRGBA {
	key := fmt.Sprintf("%s/%v", hex, opacity)
	if c, ok := v.colours[key]; ok {
		return c
	}
	c, err := render.ParseColor(hex, opacity)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to black")
		c = color.NRGBA{A: 255}
	}
	v.colours[key] = c
	return c
}

func (v *viewer) setN(n int) {
	n = catalog.ClampN(n)
	if n != v.n {
		v.n = n
		log.Debug().Int("n", n).Int("points", len(v.generator.Points(n))).Msg("setN")
	}
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.setN(v.n + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.setN(v.n - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.view.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	// ---------------------------
	// Scrolling away from the user zooms in
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		v.view.Wheel(-wheelY)
	}
	// ---------------------------
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	dims := v.view.Dimensions()
	inside := x >= 0 && y >= 0 && x < dims.Width && y < dims.Height
	switch {
	case !inside:
		v.view.PointerLeave()
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		v.view.DragStart(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.view.DragEnd()
	default:
		v.view.DragMove(x, y)
	}
	return nil
}

func (v *viewer) strokeLines(screen *ebiten.Image, lines []render.Line, panX, panY float32) {
	for _, l := range lines {
		vector.StrokeLine(screen,
			float32(l.X1)+panX, float32(l.Y1)+panY, float32(l.X2)+panX, float32(l.Y2)+panY,
			float32(l.StrokeWidth), v.colour(l.Stroke, l.Opacity), true)
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	scene := render.BuildScene(render.SceneInput{
		N:              v.n,
		Points:         v.generator.Points(v.n),
		Pairs:          v.generator.ClosePairs(v.n),
		ClosePairCount: points.ClosePairCount(v.n),
		View:           v.view,
	})
	panX, panY := float32(scene.Pan.X), float32(scene.Pan.Y)
	v.strokeLines(screen, scene.Grid, panX, panY)
	v.strokeLines(screen, scene.Axes, panX, panY)
	v.strokeLines(screen, scene.PairLines, panX, panY)
	for _, m := range scene.Markers {
		vector.DrawFilledCircle(screen, float32(m.CX)+panX, float32(m.CY)+panY, float32(m.R), v.colour(m.Fill, 0), true)
	}
	// ---------------------------
	r := scene.Readouts
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("n = %d (arrows)  zoom %s  R reset", r.N, r.Zoom), 8, 8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("points %d of 2^%d = %d", r.PointCount, r.N, r.NominalPoints), 8, 24)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("close pairs %d", r.ClosePairCount), 8, 40)
}

// Layout sizes the surface to the window, up to the configured maximum.
func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.view.SetDimensions(float64(outsideWidth), float64(outsideHeight))
	dims := v.view.Dimensions()
	return int(dims.Width), int(dims.Height)
}

// ---------------------------

func main() {
	n := flag.Int("n", 4, "number of unit vectors to start with")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	// ---------------------------
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	// ---------------------------
	v := newViewer(cfg.Viewport, *n)
	dims := v.view.Dimensions()
	ebiten.SetWindowTitle("closepairs")
	ebiten.SetWindowSize(int(dims.Width), int(dims.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	log.Info().Int("n", v.n).Msg("Starting viewer")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal().Err(err).Msg("viewer stopped")
	}
}
