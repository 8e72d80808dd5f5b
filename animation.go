package tiltcard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// disposable is anything a TweenGroup can animate. Once the target reports
// it is disposed the group stops writing.
type disposable interface {
	IsDisposed() bool
}

// TweenGroup animates up to 4 float64 fields simultaneously. Create one with
// TweenFields and call Update(dt) each frame. If the target is disposed, the
// group stops immediately.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target disposable
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target has been disposed, Done is set to true and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if n, ok := g.target.(interface{ MarkDirty() }); ok {
		n.MarkDirty()
	}
}

// TweenFields creates a TweenGroup that animates each field from its current
// value to the matching entry of to. Panics if more than 4 fields are given
// or the lengths differ.
func TweenFields(target disposable, fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if len(fields) > 4 || len(fields) != len(to) {
		panic("tiltcard: TweenFields takes up to 4 fields with matching targets")
	}
	g := &TweenGroup{count: len(fields), target: target}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}
