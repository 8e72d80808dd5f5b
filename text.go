package tiltcard

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the size of the badge font when none is supplied.
const DefaultFontSize = 12

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("tiltcard: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// DefaultFont loads Go Regular at DefaultFontSize.
func DefaultFont() (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, DefaultFontSize)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- Title badges ---

// Badge geometry in unscaled pixels.
const (
	badgePadY = 8  // vertical padding inside a badge
	badgeGap  = 16 // space between stacked badges
)

// DefaultBadgeColor is used for an empty or unknown style tag.
var DefaultBadgeColor = Color{0.22, 0.25, 0.32, 0.9}

// badgeStyles maps TitleSpec style tags to badge fill colors.
var badgeStyles = map[string]Color{
	"slate":   DefaultBadgeColor,
	"red":     {0.86, 0.15, 0.15, 0.9},
	"orange":  {0.92, 0.35, 0.05, 0.9},
	"amber":   {0.85, 0.47, 0.02, 0.9},
	"green":   {0.09, 0.64, 0.29, 0.9},
	"teal":    {0.05, 0.58, 0.53, 0.9},
	"blue":    {0.15, 0.39, 0.92, 0.9},
	"indigo":  {0.31, 0.27, 0.9, 0.9},
	"purple":  {0.58, 0.2, 0.92, 0.9},
	"pink":    {0.86, 0.15, 0.47, 0.9},
	"neutral": {0.25, 0.25, 0.25, 0.9},
}

// BadgeColor returns the fill color for a style tag.
func BadgeColor(style string) Color {
	if c, ok := badgeStyles[style]; ok {
		return c
	}
	return DefaultBadgeColor
}

// RegisterBadgeStyle adds or replaces a style tag.
func RegisterBadgeStyle(style string, c Color) {
	badgeStyles[style] = c
}

// badgeHeight returns the height of one badge for font f.
func badgeHeight(f Font) float64 {
	return math.Ceil(f.LineHeight() + 2*badgePadY)
}

// badgeStackHeight returns the height of n stacked badges.
func badgeStackHeight(f Font, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*badgeHeight(f) + float64(n-1)*badgeGap
}

// renderBadge draws label centered on a rounded pill of the given width.
func renderBadge(f *TTFFont, label string, width float64, bg Color) *ebiten.Image {
	w := int(math.Ceil(width))
	h := int(badgeHeight(f))
	if w < h {
		w = h
	}
	img := ebiten.NewImage(w, h)
	fillPill(img, bg)

	tw, _ := f.MeasureString(label)
	op := &text.DrawOptions{}
	op.GeoM.Translate(math.Round((float64(w)-tw)/2), badgePadY)
	op.LineSpacing = f.lh
	text.Draw(img, label, f.face, op)
	return img
}

// fillPill fills img with a capsule whose end caps are half circles.
func fillPill(img *ebiten.Image, c Color) {
	fillRoundedRect(img, float64(img.Bounds().Dy())/2, c)
}
