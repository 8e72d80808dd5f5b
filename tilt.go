package tiltcard

import "github.com/tanema/gween/ease"

// TiltVector is a rotation in degrees derived from one pointer sample.
type TiltVector struct {
	RotateX, RotateY float64
}

// TiltFor converts a pointer position into a tilt relative to the center of
// bounds. Each axis is normalized to [-1, 1] by half the bounds extent and
// scaled by TiltSensitivity. RotateX is inverted so that a pointer above the
// center tips the top edge away from the viewer.
func TiltFor(px, py float64, bounds Rect) TiltVector {
	if bounds.Empty() {
		return TiltVector{}
	}
	c := bounds.Center()
	nx := clampUnit((px - c.X) / (bounds.Width / 2))
	ny := clampUnit((py - c.Y) / (bounds.Height / 2))
	return TiltVector{
		RotateX: -ny * TiltSensitivity,
		RotateY: nx * TiltSensitivity,
	}
}

// TiltEffect eases the card rotation toward the latest pointer sample.
// A disabled effect ignores pointer samples and stays at rest.
type TiltEffect struct {
	RotateX    float64
	RotateY    float64
	TranslateZ float64

	enabled  bool
	disposed bool
	target   TiltVector
	tween    *TweenGroup
}

// NewTiltEffect creates an effect at rest.
func NewTiltEffect(enabled bool) *TiltEffect {
	return &TiltEffect{enabled: enabled}
}

// Enabled reports whether pointer samples are applied.
func (e *TiltEffect) Enabled() bool {
	return e.enabled
}

// PointerMove retargets the tilt toward the sample at (px, py). The ease
// starts from the current rotation, so rapid samples blend into each other.
func (e *TiltEffect) PointerMove(px, py float64, bounds Rect) {
	if !e.enabled || e.disposed {
		return
	}
	t := TiltFor(px, py, bounds)
	if t == e.target && (e.tween != nil || e.TranslateZ == TiltDepth) {
		return
	}
	e.target = t
	e.tween = TweenFields(e,
		[]*float64{&e.RotateX, &e.RotateY, &e.TranslateZ},
		[]float64{t.RotateX, t.RotateY, TiltDepth},
		TiltDuration, ease.OutQuad)
}

// Update advances the ease by dt seconds.
func (e *TiltEffect) Update(dt float32) {
	if e.tween == nil {
		return
	}
	e.tween.Update(dt)
	if e.tween.Done {
		e.tween = nil
	}
}

// Vector returns the current rotation.
func (e *TiltEffect) Vector() TiltVector {
	return TiltVector{RotateX: e.RotateX, RotateY: e.RotateY}
}

// Target returns the rotation the effect is easing toward.
func (e *TiltEffect) Target() TiltVector {
	return e.target
}

// Settled reports whether no ease is in progress.
func (e *TiltEffect) Settled() bool {
	return e.tween == nil
}

// AtRest reports whether the card is drawn flat.
func (e *TiltEffect) AtRest() bool {
	return e.RotateX == 0 && e.RotateY == 0 && e.TranslateZ == 0
}

// Dispose stops any running ease; later samples are ignored.
func (e *TiltEffect) Dispose() {
	e.disposed = true
	e.tween = nil
}

// IsDisposed returns true if the effect has been disposed.
func (e *TiltEffect) IsDisposed() bool {
	return e.disposed
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
