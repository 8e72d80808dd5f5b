package tiltcard

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Pop-in and transition accent tuning.
const (
	popInFrom   = 0.6  // scale of the dynamic elements when the pop-in starts
	squashDepth = 0.12 // horizontal squash of the whole card mid-transition
)

// Z-order of the card layers. The item sits behind the background and only
// its overhang shows; the widget sits above everything.
const (
	zItem       = 0
	zBackground = 1
	zOverlay    = 1 // titles and icons
	zAvatar     = 2
	zWidget     = 5
)

var (
	iconBackground = Color{1, 1, 1, 0.92}
	iconInk        = Color{0, 0, 0, 1}
)

// Content is the content shown for one sequencer position.
type Content struct {
	Selection Selection
	Slice     ContentSlice
	Icons     IconBundle
	Title     TitleSpec
}

// Option configures a Card at construction.
type Option func(*Card)

// WithLoader sets the loader used to resolve ContentSlice references.
// Without one every image is drawn as the broken-image placeholder.
func WithLoader(l ImageLoader) Option {
	return func(c *Card) { c.loader = l }
}

// WithFont sets the title badge font. Defaults to Go Regular.
func WithFont(f *TTFFont) Option {
	return func(c *Card) { c.font = f }
}

// WithEventSink forwards every sequencer event to sink.
func WithEventSink(sink EventSink) Option {
	return func(c *Card) { c.sink = sink }
}

// Card is the auto-rotating, pointer-tilting card. It owns a Sequencer
// driven by a virtual-time Scheduler, a TiltEffect and a layer tree that
// is composed offscreen and drawn through the tilt projection.
//
// Call Update once per tick and Draw once per frame from the game loop.
// A Card is not safe for concurrent use.
type Card struct {
	// ScreenshotDir is where Screenshot writes PNG files.
	// Defaults to DefaultScreenshotDir.
	ScreenshotDir string

	cfg    Config
	loader ImageLoader
	font   *TTFFont
	sink   EventSink
	debug  bool

	sched   *Scheduler
	seq     *Sequencer
	tilt    *TiltEffect
	input   pointerInput
	handles []CallbackHandle

	layout cardLayout
	bounds Rect
	images *imageCache
	icons  *iconCache
	canvas *RenderTexture
	mesh   *tiltMesh
	r      renderer

	root       *Node
	background *Node
	avatar     *Node
	item       *Node
	widget     *Node
	titles     *Node
	iconsNode  *Node
	itemFit    layerFit
	widgetFit  layerFit

	shownStep int
	owned     []*ebiten.Image // per-content images released on the next rebuild
	iconBG    *ebiten.Image

	testRunner      *TestRunner
	screenshotQueue []string

	frames   int
	disposed bool
}

// NewCard validates cfg and builds a card. It fails fast when any content
// collection is empty or an icon is not registered.
func NewCard(cfg Config, opts ...Option) (*Card, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Card{cfg: cfg, debug: cfg.Debug, shownStep: -1}
	for _, opt := range opts {
		opt(c)
	}
	if c.font == nil {
		f, err := DefaultFont()
		if err != nil {
			return nil, err
		}
		c.font = f
	}

	c.sched = NewScheduler()
	c.seq = NewSequencer(c.sched, len(cfg.ImageSets))
	switch {
	case c.debug:
		c.seq.SetEventSink(debugEventSink{next: c.sink})
	case c.sink != nil:
		c.seq.SetEventSink(c.sink)
	}
	c.tilt = NewTiltEffect(cfg.Enable3D)

	c.layout = computeLayout(cfg.Width, cfg.Height)
	c.bounds = Rect{X: c.layout.margin, Y: 0, Width: float64(cfg.Width), Height: float64(cfg.Height)}
	c.input.bounds = c.bounds
	c.images = newImageCache(c.loader, c.debug)
	c.icons = newIconCache()
	c.canvas = NewRenderTexture(c.layout.canvasW, c.layout.canvasH)
	c.mesh = newTiltMesh()
	c.buildTree()

	if cfg.Enable3D {
		c.handles = append(c.handles, c.input.OnPointerMove(func(p PointerContext) {
			c.tilt.PointerMove(p.X, p.Y, p.Bounds)
		}))
	}
	c.handles = append(c.handles, c.input.OnClick(func(PointerContext) {
		c.HandleInteraction()
	}))

	debugf(c.debug, "card %q: %d image sets, %d icon sets, %d titles, 3D %v",
		cfg.ClassName, len(cfg.ImageSets), len(cfg.IconSets), len(cfg.Titles), cfg.Enable3D)
	return c, nil
}

// buildTree creates the persistent layer nodes. Images are attached later
// by rebuild.
func (c *Card) buildTree() {
	c.root = NewContainer("card")
	c.item = NewSprite("item", nil)
	c.background = NewSprite("background", nil)
	c.titles = NewContainer("titles")
	c.iconsNode = NewContainer("icons")
	c.avatar = NewSprite("avatar", nil)
	c.widget = NewSprite("widget", nil)

	for _, n := range []*Node{c.item, c.background, c.titles, c.iconsNode, c.avatar, c.widget} {
		c.root.AddChild(n)
	}
	c.item.SetZIndex(zItem)
	c.background.SetZIndex(zBackground)
	c.titles.SetZIndex(zOverlay)
	c.iconsNode.SetZIndex(zOverlay)
	c.avatar.SetZIndex(zAvatar)
	c.widget.SetZIndex(zWidget)

	c.root.SetPivot(float64(c.layout.canvasW)/2, 0)
	c.root.SetPosition(float64(c.layout.canvasW)/2, 0)
}

// --- Lifecycle ---

// Start begins auto-play: a first transition shortly after, then one every
// AutoPlayInterval. Calling Start again restarts the schedule without
// stacking timers. No-op on a disposed card.
func (c *Card) Start() {
	if c.disposed {
		return
	}
	c.seq.Start(c.cfg.AutoPlayInterval)
}

// Update advances the card by one tick (1/TPS seconds) and processes real
// or injected pointer input. Call it from the game's Update.
func (c *Card) Update() {
	if c.disposed {
		return
	}
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.input.poll()
	c.step(1 / float64(ebiten.TPS()))
}

// UpdateDelta advances the card by dt seconds. Only injected pointer events
// are processed, so it is usable without a running game.
func (c *Card) UpdateDelta(dt float64) {
	if c.disposed {
		return
	}
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.input.processInjected()
	c.step(dt)
}

func (c *Card) step(dt float64) {
	if dt > 0 {
		c.sched.Advance(time.Duration(math.Round(dt * float64(time.Second))))
		c.tilt.Update(float32(dt))
	}
	c.sync()
	c.applyPhase()
}

// HandleInteraction advances to the next content unless a transition is
// already running. Reports whether a transition started.
func (c *Card) HandleInteraction() bool {
	if c.disposed {
		return false
	}
	return c.seq.HandleInteraction()
}

// Dispose stops every timer, removes the pointer listeners and releases the
// card's images. The card must not be drawn afterwards; every other method
// is a no-op. Safe to call more than once.
func (c *Card) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.seq.Stop()
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
	c.input.reset()
	c.screenshotQueue = nil
	c.tilt.Dispose()
	c.root.Dispose()
	c.releaseOwned()
	c.icons.dispose()
	if c.iconBG != nil {
		c.iconBG.Deallocate()
		c.iconBG = nil
	}
	c.canvas.Dispose()
	debugf(c.debug, "card %q disposed at %v", c.cfg.ClassName, c.sched.Now())
}

// IsDisposed reports whether Dispose has been called.
func (c *Card) IsDisposed() bool {
	return c.disposed
}

// --- Accessors ---

// State returns the sequencer state.
func (c *Card) State() SequencerState {
	return c.seq.State()
}

// Phase returns the visual phase of the dynamic elements.
func (c *Card) Phase() Phase {
	return c.seq.Phase()
}

// Tilt returns the current rotation of the card.
func (c *Card) Tilt() TiltVector {
	return c.tilt.Vector()
}

// Now returns the card's virtual time.
func (c *Card) Now() time.Duration {
	return c.sched.Now()
}

// ClassName returns the opaque label from the config.
func (c *Card) ClassName() string {
	return c.cfg.ClassName
}

// Config returns the config the card was built with, defaults applied.
func (c *Card) Config() Config {
	return c.cfg
}

// Current returns the content for the current position.
func (c *Card) Current() Content {
	sel := c.seq.Select(c.cfg.Counts())
	return Content{
		Selection: sel,
		Slice:     c.cfg.ImageSets[sel.Image],
		Icons:     c.cfg.IconSets[sel.Icon],
		Title:     c.cfg.Titles[sel.Title],
	}
}

// Bounds returns the on-screen rectangle of the card body.
func (c *Card) Bounds() Rect {
	return c.bounds
}

// CanvasSize returns the size of the composed card including the overhang
// of the item and widget.
func (c *Card) CanvasSize() (w, h int) {
	return c.layout.canvasW, c.layout.canvasH
}

// SetBounds places the card body at r in screen space. Pointer samples are
// tested against and normalized by r. A change of size relays out the card.
func (c *Card) SetBounds(r Rect) {
	if c.disposed || r.Empty() {
		return
	}
	w, h := int(math.Round(r.Width)), int(math.Round(r.Height))
	if w != c.cfg.Width || h != c.cfg.Height {
		c.cfg.Width, c.cfg.Height = w, h
		c.layout = computeLayout(w, h)
		c.canvas.Resize(c.layout.canvasW, c.layout.canvasH)
		c.root.SetPivot(float64(c.layout.canvasW)/2, 0)
		c.root.SetPosition(float64(c.layout.canvasW)/2, 0)
		c.shownStep = -1
	}
	c.bounds = r
	c.input.bounds = r
}

// --- Content ---

// sync rebuilds the layers when the sequencer has advanced.
func (c *Card) sync() {
	if step := c.seq.Steps(); step != c.shownStep {
		c.rebuild(c.seq.Select(c.cfg.Counts()))
		c.shownStep = step
	}
}

// rebuild attaches the images for sel to the layer nodes.
func (c *Card) rebuild(sel Selection) {
	c.releaseOwned()
	l := c.layout
	slice := c.cfg.ImageSets[sel.Image]
	n := sel.Image + 1

	bg := coverImage(c.images.get(slice.Background), int(l.card.Width), int(l.card.Height), l.cornerRadius)
	c.owned = append(c.owned, bg)
	c.background.SetImage(bg)
	c.background.Name = fmt.Sprintf("background-%d", n)
	c.background.SetPosition(l.card.X, l.card.Y)

	size := max(int(l.avatar.Width), 1)
	av := coverImage(c.images.get(slice.Avatar), size, size, float64(size)/2)
	c.owned = append(c.owned, av)
	c.avatar.SetImage(av)
	c.avatar.Name = fmt.Sprintf("avatar-%d", n)
	c.avatar.SetPosition(l.avatar.X, l.avatar.Y)

	c.item.SetImage(c.images.get(slice.Item))
	c.item.Name = fmt.Sprintf("item-%d", n)
	w, h := c.item.Size()
	c.itemFit = containFit(w, h, l.item, false)

	c.widget.SetImage(c.images.get(slice.Widget))
	c.widget.Name = fmt.Sprintf("widget-%d", n)
	w, h = c.widget.Size()
	c.widgetFit = containFit(w, h, l.widget, true)

	c.buildTitles(c.cfg.Titles[sel.Title])
	c.buildIcons(c.cfg.IconSets[sel.Icon])
	debugf(c.debug, "content %d: image %d icons %d title %d", c.seq.Steps(), sel.Image, sel.Icon, sel.Title)
}

func (c *Card) buildTitles(title TitleSpec) {
	disposeChildren(c.titles)
	l := c.layout
	color := BadgeColor(title.Style)
	bh := badgeHeight(c.font)
	for i, label := range title.Labels() {
		img := renderBadge(c.font, label, l.titles.Width, color)
		c.owned = append(c.owned, img)
		badge := NewSprite(fmt.Sprintf("title-%d", i+1), img)
		badge.SetPosition(l.titles.X, l.titles.Y+float64(i)*(bh+badgeGap))
		c.titles.AddChild(badge)
	}
}

func (c *Card) buildIcons(bundle IconBundle) {
	disposeChildren(c.iconsNode)
	l := c.layout
	cell := l.iconCell()
	if c.iconBG == nil && cell >= 1 {
		c.iconBG = ebiten.NewImage(int(cell), int(cell))
		fillRoundedRect(c.iconBG, cell/2, iconBackground)
	}
	for i, r := range l.iconRects(len(bundle)) {
		glyph, err := c.icons.get(bundle[i], int(l.iconGlyph), iconInk)
		if err != nil {
			debugf(c.debug, "icon %q: %v", bundle[i], err)
			continue
		}
		holder := NewContainer(fmt.Sprintf("icon-%d", i+1))
		holder.SetPivot(cell/2, cell/2)
		holder.SetPosition(r.X+cell/2, r.Y+cell/2)
		holder.AddChild(NewSprite("icon-bg", c.iconBG))
		g := NewSprite(string(bundle[i]), glyph)
		g.SetPosition(l.iconPad, l.iconPad)
		holder.AddChild(g)
		c.iconsNode.AddChild(holder)
	}
}

func (c *Card) releaseOwned() {
	for _, img := range c.owned {
		img.Deallocate()
	}
	clear(c.owned)
	c.owned = c.owned[:0]
}

func disposeChildren(n *Node) {
	for len(n.children) > 0 {
		n.children[len(n.children)-1].Dispose()
	}
}

// --- Phase mapping ---

// dynamicLook maps a phase to the alpha and scale of the dynamic elements
// (item, widget and icons). Old content is hidden while fading out; new
// content pops in from popInFrom with an overshoot.
func dynamicLook(p Phase, elapsed time.Duration) (alpha, scale float64) {
	switch p {
	case PhaseFadingOut:
		return 0, popInFrom
	case PhasePoppingIn:
		t := float32(min(elapsed, TransitionDuration-SwapDelay).Seconds())
		d := float32((TransitionDuration - SwapDelay).Seconds())
		return 1, float64(ease.OutBack(t, popInFrom, 1-popInFrom, d))
	default:
		return 1, 1
	}
}

// transitionSquash returns the horizontal scale of the whole card for the
// time since the latest trigger. It dips to 1-squashDepth halfway through
// the transition.
func transitionSquash(sinceTrigger time.Duration) float64 {
	if sinceTrigger <= 0 || sinceTrigger >= TransitionDuration {
		return 1
	}
	p := float64(sinceTrigger) / float64(TransitionDuration)
	return 1 - squashDepth*math.Sin(math.Pi*p)
}

// sinceTrigger reconstructs the time since the latest trigger from the
// phase clock. Zero when no transition is showing.
func (c *Card) sinceTrigger() time.Duration {
	switch c.seq.Phase() {
	case PhaseFadingOut:
		return c.seq.PhaseElapsed()
	case PhasePoppingIn:
		return SwapDelay + c.seq.PhaseElapsed()
	default:
		return 0
	}
}

// applyPhase writes the phase look onto the layer nodes.
func (c *Card) applyPhase() {
	alpha, scale := dynamicLook(c.seq.Phase(), c.seq.PhaseElapsed())

	c.item.SetAlpha(alpha)
	c.itemFit.apply(c.item, scale)
	c.widget.SetAlpha(alpha)
	c.widgetFit.apply(c.widget, scale)
	c.iconsNode.SetAlpha(alpha)
	for _, holder := range c.iconsNode.children {
		holder.SetScale(scale, scale)
	}

	squash := 1.0
	if c.seq.State().Transitioning {
		squash = transitionSquash(c.sinceTrigger())
	}
	c.root.SetScale(squash, 1)
}

// --- Drawing ---

// Draw composes the card offscreen and draws it onto screen through the
// tilt projection. The card body lands on Bounds; the overhang extends past
// it on both sides.
func (c *Card) Draw(screen *ebiten.Image) {
	if c.disposed {
		return
	}
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}
	c.sync()
	c.applyPhase()

	c.canvas.Clear()
	c.r.collect(c.root)
	c.r.submit(c.canvas.Image())

	var t1 time.Time
	if c.debug {
		t1 = time.Now()
	}
	ox := c.bounds.X - c.layout.margin
	oy := c.bounds.Y
	if c.tilt.AtRest() {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(ox, oy)
		screen.DrawImage(c.canvas.Image(), &op)
	} else {
		c.mesh.update(float64(c.layout.canvasW), float64(c.layout.canvasH), ox, oy,
			c.tilt.Vector(), c.tilt.TranslateZ, 1)
		c.mesh.draw(screen, c.canvas.Image())
	}

	c.frames++
	if c.debug && c.frames%60 == 0 {
		c.debugLog(debugStats{
			composeTime:  t1.Sub(t0),
			projectTime:  time.Since(t1),
			commandCount: len(c.r.commands),
			tilt:         c.tilt.Vector(),
			phase:        c.seq.Phase(),
		})
	}
	c.flushScreenshots(screen)
}

// Layers returns the names of the visible, drawable layers in draw order.
// Useful for screenshots and tests.
func (c *Card) Layers() []string {
	if c.disposed {
		return nil
	}
	c.sync()
	c.applyPhase()
	c.r.collect(c.root)
	return commandNamesOf(c.r.commands)
}

func commandNamesOf(cmds []drawCommand) []string {
	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.name
	}
	return names
}
