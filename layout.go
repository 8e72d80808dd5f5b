package tiltcard

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// layoutReferenceWidth is the card width the layout proportions are taken
// from. Everything scales with the actual card width.
const layoutReferenceWidth = 448.0

// cardLayout positions the layers of a card on its offscreen canvas. The
// item and the widget hang over the card edges, so the canvas has an equal
// margin on both sides and the card stays centered for the tilt.
type cardLayout struct {
	scale   float64
	margin  float64
	canvasW int
	canvasH int

	card   Rect // background area
	item   Rect // top right, overhanging the right edge
	avatar Rect // top center, circular
	widget Rect // bottom left box, overhanging the left edge
	titles Rect // badge column; Height is not used

	iconRight  float64 // right edge of the icon column
	iconBottom float64 // bottom edge of the icon column
	iconGlyph  float64 // glyph size
	iconPad    float64 // padding around each glyph
	iconGap    float64 // space between icons

	cornerRadius float64
}

// computeLayout lays out a w x h card.
func computeLayout(w, h int) cardLayout {
	W, H := float64(w), float64(h)
	s := W / layoutReferenceWidth
	m := math.Ceil(0.22 * W)

	l := cardLayout{
		scale:   s,
		margin:  m,
		canvasW: w + 2*int(m),
		canvasH: h,
		card:    Rect{X: m, Y: 0, Width: W, Height: H},
	}

	itemSize := 144 * s
	l.item = Rect{X: m + W - itemSize + 96*s, Y: 0, Width: itemSize, Height: itemSize}

	avatarSize := 80 * s
	l.avatar = Rect{X: m + (W-avatarSize)/2, Y: 40 * s, Width: avatarSize, Height: avatarSize}

	widgetSize := W / 2
	l.widget = Rect{X: m - 80*s, Y: H - 32*s - widgetSize, Width: widgetSize, Height: widgetSize}

	l.titles = Rect{X: m + W/6, Y: 176*s + 32*s, Width: W * 2 / 3}

	l.iconRight = m + W
	l.iconBottom = H - 64*s
	l.iconGlyph = math.Round(20 * s)
	l.iconPad = math.Round(6 * s)
	l.iconGap = math.Round(6 * s)

	l.cornerRadius = 8 * s
	return l
}

// iconCell returns the edge length of one icon including its padding.
func (l cardLayout) iconCell() float64 {
	return l.iconGlyph + 2*l.iconPad
}

// iconRects returns the cells of an n-icon column, top to bottom.
func (l cardLayout) iconRects(n int) []Rect {
	if n <= 0 {
		return nil
	}
	cell := l.iconCell()
	total := float64(n)*cell + float64(n-1)*l.iconGap
	top := l.iconBottom - total
	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = Rect{X: l.iconRight - cell, Y: top + float64(i)*(cell+l.iconGap), Width: cell, Height: cell}
	}
	return rects
}

// --- Fitting ---

// coverRegion returns the centered part of a srcW x srcH image that fills a
// box of the given aspect without distortion.
func coverRegion(srcW, srcH int, boxW, boxH float64) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return image.Rectangle{}
	}
	srcAspect := float64(srcW) / float64(srcH)
	boxAspect := boxW / boxH
	if srcAspect > boxAspect {
		cw := int(math.Round(float64(srcH) * boxAspect))
		x := (srcW - cw) / 2
		return image.Rect(x, 0, x+cw, srcH)
	}
	ch := int(math.Round(float64(srcW) / boxAspect))
	y := (srcH - ch) / 2
	return image.Rect(0, y, srcW, y+ch)
}

// containScale returns the uniform scale that fits srcW x srcH inside box.
func containScale(srcW, srcH float64, box Rect) float64 {
	if srcW <= 0 || srcH <= 0 {
		return 0
	}
	return math.Min(box.Width/srcW, box.Height/srcH)
}

// layerFit is where a contained image sits: its uniform scale and the
// point its center maps to. Sprites pivot on their center so the phase
// scale pops them in place.
type layerFit struct {
	scale  float64
	cx, cy float64
}

// containFit fits a w x h image inside box, centered horizontally and
// resting on the bottom edge when bottom is true.
func containFit(w, h float64, box Rect, bottom bool) layerFit {
	s := containScale(w, h, box)
	cy := box.Y + box.Height/2
	if bottom {
		cy = box.Y + box.Height - h*s/2
	}
	return layerFit{scale: s, cx: box.X + box.Width/2, cy: cy}
}

// apply places n according to the fit, multiplied by an extra scale k.
func (f layerFit) apply(n *Node, k float64) {
	w, h := n.Size()
	n.SetPivot(w/2, h/2)
	n.SetPosition(f.cx, f.cy)
	n.SetScale(f.scale*k, f.scale*k)
}

// --- Shapes ---

// fillRoundedRect fills img with a rectangle whose corners are rounded by
// radius. A radius of half the height gives a pill, and half the size of a
// square gives a circle.
func fillRoundedRect(img *ebiten.Image, radius float64, c Color) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	r := math.Min(radius, math.Min(float64(w), float64(h))/2)
	rgba := c.toRGBA()
	for y := 0; y < h; y++ {
		inset := roundedInset(float64(y)+0.5, float64(h), r)
		if inset < 0 || w-2*inset <= 0 {
			continue
		}
		img.SubImage(image.Rect(b.Min.X+inset, b.Min.Y+y, b.Min.X+w-inset, b.Min.Y+y+1)).(*ebiten.Image).Fill(rgba)
	}
}

// roundedInset returns how far row center cy of an h-tall rounded rectangle
// is inset from each side, or -1 when the row lies outside the shape.
func roundedInset(cy, h, r float64) int {
	var dy float64
	switch {
	case cy < r:
		dy = r - cy
	case cy > h-r:
		dy = cy - (h - r)
	default:
		return 0
	}
	if dy >= r {
		return -1
	}
	return max(int(math.Ceil(r-math.Sqrt(r*r-dy*dy)-0.5)), 0)
}

// blendMask keeps the destination only where the source has alpha.
var blendMask = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorZero,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// coverImage crops src to fill a w x h box, scales it into a new image and
// clips it to a rounded rectangle of the given radius.
func coverImage(src *ebiten.Image, w, h int, radius float64) *ebiten.Image {
	dst := ebiten.NewImage(w, h)
	sb := src.Bounds()
	crop := coverRegion(sb.Dx(), sb.Dy(), float64(w), float64(h)).Add(sb.Min)
	if crop.Empty() {
		return dst
	}

	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(float64(w)/float64(crop.Dx()), float64(h)/float64(crop.Dy()))
	dst.DrawImage(src.SubImage(crop).(*ebiten.Image), &op)

	if radius > 0 {
		mask := ebiten.NewImage(w, h)
		fillRoundedRect(mask, radius, ColorWhite)
		var mop ebiten.DrawImageOptions
		mop.Blend = blendMask
		dst.DrawImage(mask, &mop)
		mask.Deallocate()
	}
	return dst
}
