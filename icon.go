package tiltcard

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"maps"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// iconRegistry maps icon names to IconVG data. The built-in names cover the
// glyphs used by the showcase; RegisterIcon adds more.
var iconRegistry = map[Icon][]byte{
	"favorite":  icons.ActionFavorite,
	"home":      icons.ActionHome,
	"grade":     icons.ActionGrade,
	"settings":  icons.ActionSettings,
	"build":     icons.ActionBuild,
	"bug":       icons.ActionBugReport,
	"memory":    icons.HardwareMemory,
	"palette":   icons.ImagePalette,
	"flash":     icons.ImageFlashOn,
	"pets":      icons.ActionPets,
	"star":      icons.ToggleStar,
	"whatshot":  icons.SocialWhatsHot,
	"music":     icons.ImageMusicNote,
	"gamepad":   icons.HardwareGamepad,
	"brush":     icons.ImageBrush,
	"explore":   icons.ActionExplore,
	"code":      icons.ActionCode,
	"camera":    icons.ImagePhotoCamera,
	"cloud":     icons.FileCloud,
	"lightbulb": icons.ActionLightbulbOutline,
}

// RegisterIcon adds or replaces a named IconVG glyph. The data is checked
// for a valid IconVG header.
func RegisterIcon(name Icon, data []byte) error {
	if _, err := iconvg.DecodeMetadata(data); err != nil {
		return fmt.Errorf("tiltcard: icon %q: %w", name, err)
	}
	iconRegistry[name] = data
	return nil
}

// RegisteredIcons returns the known icon names in sorted order.
func RegisteredIcons() []Icon {
	return slices.Sorted(maps.Keys(iconRegistry))
}

// HasIcon reports whether name is registered.
func HasIcon(name Icon) bool {
	_, ok := iconRegistry[name]
	return ok
}

// rasterizeIcon renders a registered glyph into a size x size RGBA image,
// painted in c. Non-square view boxes keep their aspect ratio.
func rasterizeIcon(name Icon, size int, c Color) (*image.RGBA, error) {
	data, ok := iconRegistry[name]
	if !ok {
		return nil, fmt.Errorf("tiltcard: icon %q: %w", name, ErrUnknownIcon)
	}
	m, err := iconvg.DecodeMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("tiltcard: icon %q: %w", name, err)
	}
	dx, dy := m.ViewBox.AspectRatio()
	h := size
	if dx > 0 {
		h = int(float32(size) * dy / dx)
	}
	img := image.NewRGBA(image.Rectangle{Max: image.Point{X: size, Y: h}})

	var z iconvg.Rasterizer
	z.SetDstImage(img, img.Bounds(), draw.Src)
	rgba := c.toRGBA()
	m.Palette[0] = color.RGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
	if err := iconvg.Decode(&z, data, &iconvg.DecodeOptions{Palette: &m.Palette}); err != nil {
		return nil, fmt.Errorf("tiltcard: icon %q: %w", name, err)
	}
	return img, nil
}

// iconKey identifies one rasterized glyph.
type iconKey struct {
	name  Icon
	size  int
	color Color
}

// iconCache keeps one GPU image per rasterized glyph.
type iconCache struct {
	images map[iconKey]*ebiten.Image
}

func newIconCache() *iconCache {
	return &iconCache{images: make(map[iconKey]*ebiten.Image)}
}

// get returns the glyph image, rasterizing it on first use.
func (c *iconCache) get(name Icon, size int, col Color) (*ebiten.Image, error) {
	key := iconKey{name, size, col}
	if img, ok := c.images[key]; ok {
		return img, nil
	}
	rgba, err := rasterizeIcon(name, size, col)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(rgba)
	c.images[key] = img
	return img, nil
}

// dispose deallocates every cached glyph.
func (c *iconCache) dispose() {
	for k, img := range c.images {
		img.Deallocate()
		delete(c.images, k)
	}
}
