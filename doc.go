// Package tiltcard is an auto-rotating, pointer-reactive animated card for
// [Ebitengine].
//
// A card cycles through sets of images, icons and title badges with a timed
// fade and pop transition, and tilts in 3D toward the pointer. Everything is
// single-threaded and frame-driven: timers live in a virtual-time
// [Scheduler] that the card advances from the game loop.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg, err := tiltcard.LoadConfig("cards.toml")
//	// ...
//	card, err := tiltcard.NewCard(cfg, tiltcard.WithLoader(tiltcard.NewFSLoader(os.DirFS("assets"))))
//	// ...
//	tiltcard.Run(card, tiltcard.RunConfig{Title: "Card", Width: 800, Height: 600})
//
// For full control, implement [ebiten.Game] yourself and call [Card.Start]
// once, then [Card.Update] and [Card.Draw] every frame:
//
//	type Game struct{ card *tiltcard.Card }
//
//	func (g *Game) Update() error         { g.card.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.card.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// Place the card with [Card.SetBounds]; pointer samples are tested against
// and normalized by those bounds. Call [Card.Dispose] to stop every timer
// and release the card's images.
//
// # Transitions
//
// A [Sequencer] owns the content index. Each trigger runs three timed
// effects measured from the trigger: the dynamic elements (item, widget
// and icons) fade out, at +400ms the index advances and they pop back in,
// and at +800ms the transition ends. Clicks are ignored while a transition
// is running; the initial and periodic triggers are not. The visual state
// is exposed as a [Phase] so renderers never mutate drawn output directly.
//
// Images, icons and titles each cycle by their own length, so a card with
// three image sets, two icon bundles and one title shows every combination
// the lengths allow.
//
// # Tilt
//
// With Enable3D set, every pointer move inside the card bounds retargets a
// [TiltEffect] that eases toward up to 15 degrees per axis over 0.3s. The
// composed card is drawn through a perspective-projected mesh.
//
// # Configuration
//
// [Config] can be built in code or decoded from TOML with [DecodeConfig]
// and [LoadConfig]. Unknown keys are rejected. Icons are material design
// glyphs rasterized with iconvg; register more with [RegisterIcon].
//
// # Automation
//
// Synthetic pointer events ([Card.InjectClick], [Card.InjectSweep]),
// JSON test scripts ([LoadTestScript]) and PNG screenshots
// ([Card.Screenshot]) drive the card without a human at the mouse. Set
// [Config.Debug] to print [tiltcard] diagnostics to stderr.
//
// Card events can be forwarded to a [Donburi] world with the adapter in
// tiltcard/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package tiltcard
