package tiltcard

import "github.com/hajimehoshi/ebiten/v2"

// RenderTexture is a persistent offscreen canvas. The card composes its
// layers into one and then draws it through the tilt mesh, so the whole card
// rotates as a single surface.
type RenderTexture struct {
	image *ebiten.Image
	w, h  int
}

// NewRenderTexture creates a persistent offscreen canvas of the given size.
func NewRenderTexture(w, h int) *RenderTexture {
	return &RenderTexture{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Clear fills the texture with transparent black.
func (rt *RenderTexture) Clear() {
	rt.image.Clear()
}

// Fill fills the entire texture with the given color.
func (rt *RenderTexture) Fill(c Color) {
	rt.image.Fill(c.toRGBA())
}

// Resize reallocates the canvas when the size changes. Contents are lost.
func (rt *RenderTexture) Resize(w, h int) {
	if w == rt.w && h == rt.h && rt.image != nil {
		return
	}
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImage(w, h)
	rt.w, rt.h = w, h
}

// Dispose deallocates the underlying image. The RenderTexture should not be
// used after calling Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
