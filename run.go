package tiltcard

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int   // window width, defaults to 800
	Height     int   // window height, defaults to 600
	Background Color // screen clear color
	ShowFPS    bool
	Resizable  bool

	// ExitWhenScriptDone ends Run once an attached TestRunner has executed
	// every step.
	ExitWhenScriptDone bool
}

func (cfg RunConfig) withDefaults() RunConfig {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Title == "" {
		cfg.Title = "tiltcard"
	}
	return cfg
}

// Run opens a window, starts the card and drives it from the Ebitengine
// game loop until the window closes. The card is centered in the window
// and disposed when Run returns.
func Run(c *Card, cfg RunConfig) error {
	if c == nil || c.disposed {
		return errors.New("tiltcard: run: card is nil or disposed")
	}
	cfg = cfg.withDefaults()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{card: c, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	g.center(cfg.Width, cfg.Height)
	c.Start()
	defer c.Dispose()

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// game adapts a Card to ebiten.Game.
type game struct {
	card   *Card
	cfg    RunConfig
	fps    *fpsOverlay
	sw, sh int
}

func (g *game) Update() error {
	g.card.Update()
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	if g.cfg.ExitWhenScriptDone && g.card.testRunner != nil && g.card.testRunner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background.toRGBA())
	g.card.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.cfg.Width, g.cfg.Height
	if g.cfg.Resizable {
		w, h = outsideWidth, outsideHeight
	}
	if w != g.sw || h != g.sh {
		g.center(w, h)
	}
	return w, h
}

// center places the card body in the middle of a w x h screen.
func (g *game) center(w, h int) {
	g.sw, g.sh = w, h
	b := g.card.Bounds()
	g.card.SetBounds(Rect{
		X:      math.Round((float64(w) - b.Width) / 2),
		Y:      math.Round((float64(h) - b.Height) / 2),
		Width:  b.Width,
		Height: b.Height,
	})
}

// fpsOverlay shows the current FPS and TPS, refreshed about every half
// second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32), elapsed: 0.5}
}

func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
