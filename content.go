package tiltcard

import "strings"

// ContentSlice is one indexed set of four related images shown together.
// Each field is an image reference resolved by the card's ImageLoader.
type ContentSlice struct {
	Background string `toml:"bg"`
	Avatar     string `toml:"avatar"`
	Item       string `toml:"item"`
	Widget     string `toml:"widget"`
}

// Refs returns the four references in draw order.
func (c ContentSlice) Refs() [4]string {
	return [4]string{c.Background, c.Avatar, c.Item, c.Widget}
}

// Icon is a single glyph in an IconBundle, named after a material design
// icon registered in the icon registry (see RegisterIcon).
type Icon string

// IconBundle is the ordered list of icons shown for one index.
type IconBundle []Icon

// TitleSeparator splits a TitleSpec's text into badge labels.
const TitleSeparator = ", "

// TitleSpec is a title made of several badge labels plus a style tag that
// selects the badge color.
type TitleSpec struct {
	Text  string `toml:"text"`
	Style string `toml:"style"`
}

// Labels returns the badge labels of the title, in order.
func (t TitleSpec) Labels() []string {
	return strings.Split(t.Text, TitleSeparator)
}

// Selection is the index into each content collection for one sequencer
// position. Each collection wraps independently.
type Selection struct {
	Image, Icon, Title int
}

// Counts holds the lengths of the three content collections.
type Counts struct {
	Images, Icons, Titles int
}

// Select maps a step count onto each collection. All counts must be
// positive.
func (c Counts) Select(step int) Selection {
	return Selection{
		Image: step % c.Images,
		Icon:  step % c.Icons,
		Title: step % c.Titles,
	}
}
