package tiltcard

import (
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ErrImageNotFound is returned by MemoryLoader for an unknown reference.
var ErrImageNotFound = errors.New("image not found")

// ImageLoader resolves an image reference from a ContentSlice.
type ImageLoader interface {
	LoadImage(ref string) (*ebiten.Image, error)
}

// FSLoader decodes images from a file system. Image formats must be
// registered by the caller with a blank import (image/png and so on).
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader returns a loader that reads references as paths in fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// LoadImage reads and decodes ref.
func (l *FSLoader) LoadImage(ref string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFileSystem(l.fsys, ref)
	if err != nil {
		return nil, fmt.Errorf("tiltcard: load %q: %w", ref, err)
	}
	return img, nil
}

// MemoryLoader serves images that were added up front.
type MemoryLoader struct {
	images map[string]*ebiten.Image
}

// NewMemoryLoader creates an empty MemoryLoader.
func NewMemoryLoader() *MemoryLoader {
	return &MemoryLoader{images: make(map[string]*ebiten.Image)}
}

// Add registers img under ref, replacing any previous image.
func (l *MemoryLoader) Add(ref string, img *ebiten.Image) {
	l.images[ref] = img
}

// LoadImage returns the image registered under ref.
func (l *MemoryLoader) LoadImage(ref string) (*ebiten.Image, error) {
	img, ok := l.images[ref]
	if !ok {
		return nil, fmt.Errorf("tiltcard: load %q: %w", ref, ErrImageNotFound)
	}
	return img, nil
}

// placeholderSize is the edge length of the broken-image placeholder.
const placeholderSize = 32

// newPlaceholderImage returns a magenta and grey checker drawn in place of
// an image that failed to load.
func newPlaceholderImage() *ebiten.Image {
	img := ebiten.NewImage(placeholderSize, placeholderSize)
	img.Fill(Color{0.3, 0.3, 0.3, 1}.toRGBA())
	magenta := Color{1, 0, 1, 1}.toRGBA()
	const cell = placeholderSize / 4
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			r := image.Rect(x*cell, y*cell, (x+1)*cell, (y+1)*cell)
			img.SubImage(r).(*ebiten.Image).Fill(magenta)
		}
	}
	return img
}

// imageCache resolves references through a loader once. A reference that
// fails is remembered and drawn as the placeholder; it is not retried.
type imageCache struct {
	loader      ImageLoader
	images      map[string]*ebiten.Image
	failed      map[string]error
	placeholder *ebiten.Image
	debug       bool
}

func newImageCache(loader ImageLoader, debug bool) *imageCache {
	return &imageCache{
		loader: loader,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]error),
		debug:  debug,
	}
}

// get returns the image for ref, or the placeholder when it cannot load.
func (c *imageCache) get(ref string) *ebiten.Image {
	if img, ok := c.images[ref]; ok {
		return img
	}
	if _, ok := c.failed[ref]; ok {
		return c.placeholderImage()
	}
	if c.loader == nil {
		c.failed[ref] = ErrImageNotFound
		debugf(c.debug, "no image loader, %q drawn as placeholder", ref)
		return c.placeholderImage()
	}
	img, err := c.loader.LoadImage(ref)
	if err != nil || img == nil {
		if err == nil {
			err = ErrImageNotFound
		}
		c.failed[ref] = err
		debugf(c.debug, "broken image %q: %v", ref, err)
		return c.placeholderImage()
	}
	c.images[ref] = img
	return img
}

// err returns the load error recorded for ref, if any.
func (c *imageCache) err(ref string) error {
	return c.failed[ref]
}

func (c *imageCache) placeholderImage() *ebiten.Image {
	if c.placeholder == nil {
		c.placeholder = newPlaceholderImage()
	}
	return c.placeholder
}
