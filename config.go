package tiltcard

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default card size in pixels.
const (
	DefaultWidth  = 320
	DefaultHeight = 480
)

// Configuration errors.
var (
	ErrNoImageSets = errors.New("no image sets")
	ErrNoIconSets  = errors.New("no icon sets")
	ErrNoTitles    = errors.New("no titles")
	ErrUnknownIcon = errors.New("unknown icon")
	ErrInvalidSize = errors.New("invalid card size")
)

// Config describes one card. Start from DefaultConfig so that Enable3D and
// the size defaults are set.
type Config struct {
	ImageSets []ContentSlice
	IconSets  []IconBundle
	Titles    []TitleSpec

	// AutoPlayInterval is the period of the automatic trigger. Zero or
	// negative means DefaultAutoPlayInterval.
	AutoPlayInterval time.Duration

	// Enable3D turns on the pointer tilt.
	Enable3D bool

	// ClassName is an opaque label carried through to Card.ClassName.
	ClassName string

	// Width and Height are the card size in pixels. Zero means the default.
	Width, Height int

	// Debug enables [tiltcard] diagnostics on stderr.
	Debug bool
}

// DefaultConfig returns a Config with no content and every option at its
// default.
func DefaultConfig() Config {
	return Config{
		AutoPlayInterval: DefaultAutoPlayInterval,
		Enable3D:         true,
		Width:            DefaultWidth,
		Height:           DefaultHeight,
	}
}

// withDefaults fills zero-valued options.
func (c Config) withDefaults() Config {
	if c.AutoPlayInterval <= 0 {
		c.AutoPlayInterval = DefaultAutoPlayInterval
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	return c
}

// Counts returns the lengths of the three content collections.
func (c Config) Counts() Counts {
	return Counts{Images: len(c.ImageSets), Icons: len(c.IconSets), Titles: len(c.Titles)}
}

// Validate checks that every collection is non-empty, every icon is
// registered and the size is usable.
func (c Config) Validate() error {
	if len(c.ImageSets) == 0 {
		return fmt.Errorf("tiltcard: config: %w", ErrNoImageSets)
	}
	if len(c.IconSets) == 0 {
		return fmt.Errorf("tiltcard: config: %w", ErrNoIconSets)
	}
	if len(c.Titles) == 0 {
		return fmt.Errorf("tiltcard: config: %w", ErrNoTitles)
	}
	for i, bundle := range c.IconSets {
		for _, icon := range bundle {
			if !HasIcon(icon) {
				return fmt.Errorf("tiltcard: config: icon_sets[%d] %q: %w", i, icon, ErrUnknownIcon)
			}
		}
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("tiltcard: config: %dx%d: %w", c.Width, c.Height, ErrInvalidSize)
	}
	return nil
}

// configFile is the TOML shape of a card manifest.
type configFile struct {
	ImageSets        []ContentSlice `toml:"image_sets"`
	IconSets         []IconBundle   `toml:"icon_sets"`
	Titles           []TitleSpec    `toml:"titles"`
	AutoPlayInterval time.Duration  `toml:"auto_play_interval"`
	Enable3D         *bool          `toml:"enable_3d"`
	ClassName        string         `toml:"class_name"`
	Width            int            `toml:"width"`
	Height           int            `toml:"height"`
	Debug            bool           `toml:"debug"`
}

// DecodeConfig parses a TOML card manifest, applies defaults and validates
// the result. Unknown keys are rejected.
func DecodeConfig(data []byte) (Config, error) {
	var raw configFile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Config{}, fmt.Errorf("tiltcard: parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("tiltcard: parse config: unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg := DefaultConfig()
	cfg.ImageSets = raw.ImageSets
	cfg.IconSets = raw.IconSets
	cfg.Titles = raw.Titles
	cfg.AutoPlayInterval = raw.AutoPlayInterval
	if raw.Enable3D != nil {
		cfg.Enable3D = *raw.Enable3D
	}
	cfg.ClassName = raw.ClassName
	cfg.Width = raw.Width
	cfg.Height = raw.Height
	cfg.Debug = raw.Debug
	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes the manifest at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tiltcard: read config: %w", err)
	}
	return DecodeConfig(data)
}
