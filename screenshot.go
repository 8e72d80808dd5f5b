package tiltcard

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is where screenshots go when Card.ScreenshotDir is
// empty.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw call. The PNG is written to ScreenshotDir with a timestamped
// file name that also carries the visible image set, e.g.
// 20250101_120000_after-click_background-2.png.
func (c *Card) Screenshot(label string) {
	if c.disposed {
		return
	}
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
func (c *Card) flushScreenshots(screen *ebiten.Image) {
	if len(c.screenshotQueue) == 0 {
		return
	}
	dir := c.ScreenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		debugf(true, "screenshot: mkdir %s: %v", dir, err)
		c.screenshotQueue = c.screenshotQueue[:0]
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	layer := c.background.Name
	for _, label := range c.screenshotQueue {
		name := fmt.Sprintf("%s_%s_%s.png", stamp, sanitizeLabel(label), sanitizeLabel(layer))
		if err := writePNG(filepath.Join(dir, name), img); err != nil {
			debugf(true, "screenshot: %v", err)
		}
	}
	c.screenshotQueue = c.screenshotQueue[:0]
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
