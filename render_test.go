package tiltcard

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func collectTree(root *Node) *renderer {
	r := &renderer{}
	r.collect(root)
	return r
}

func commandNames(r *renderer) []string {
	names := make([]string, len(r.commands))
	for i, c := range r.commands {
		names[i] = c.name
	}
	return names
}

// --- Command emission ---

func TestSingleSpriteEmitsOneCommand(t *testing.T) {
	root := NewContainer("root")
	root.AddChild(NewSprite("s", ebiten.NewImage(8, 8)))

	r := collectTree(root)
	if len(r.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(r.commands))
	}
}

func TestContainerNoCommand(t *testing.T) {
	root := NewContainer("root")
	root.AddChild(NewContainer("group"))

	if r := collectTree(root); len(r.commands) != 0 {
		t.Errorf("commands = %d, want 0 for containers", len(r.commands))
	}
}

func TestSpriteWithoutImageSkipped(t *testing.T) {
	root := NewContainer("root")
	root.AddChild(NewSprite("pending", nil))

	if r := collectTree(root); len(r.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(r.commands))
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.Visible = false
	parent.AddChild(NewSprite("child", ebiten.NewImage(8, 8)))
	root.AddChild(parent)

	if r := collectTree(root); len(r.commands) != 0 {
		t.Errorf("commands = %d, want 0 for invisible subtree", len(r.commands))
	}
}

func TestTransparentSpriteSkipped(t *testing.T) {
	root := NewContainer("root")
	s := NewSprite("hidden", ebiten.NewImage(8, 8))
	s.Alpha = 0
	root.AddChild(s)

	if r := collectTree(root); len(r.commands) != 0 {
		t.Errorf("commands = %d, want 0 for alpha 0", len(r.commands))
	}
}

func TestWorldAlphaInCommand(t *testing.T) {
	root := NewContainer("root")
	group := NewContainer("group")
	group.Alpha = 0.5
	s := NewSprite("s", ebiten.NewImage(8, 8))
	s.Alpha = 0.5
	s.Color = Color{1, 0.5, 0, 1}
	group.AddChild(s)
	root.AddChild(group)

	r := collectTree(root)
	c := r.commands[0].color
	if math.Abs(float64(c.A)-0.25) > 1e-6 {
		t.Errorf("alpha = %v, want 0.25", c.A)
	}
	if c.G != 0.5 || c.B != 0 {
		t.Errorf("tint = %+v, want G=0.5 B=0", c)
	}
}

func TestCommandTransform(t *testing.T) {
	root := NewContainer("root")
	root.SetPosition(10, 20)
	s := NewSprite("s", ebiten.NewImage(8, 8))
	s.SetPosition(5, 5)
	s.SetScale(2, 3)
	root.AddChild(s)

	r := collectTree(root)
	want := [6]float32{2, 0, 0, 3, 15, 25}
	if r.commands[0].transform != want {
		t.Errorf("transform = %v, want %v", r.commands[0].transform, want)
	}
}

func TestZIndexSorting(t *testing.T) {
	root := NewContainer("root")
	widget := NewSprite("widget", ebiten.NewImage(8, 8))
	bg := NewSprite("bg", ebiten.NewImage(8, 8))
	avatar := NewSprite("avatar", ebiten.NewImage(8, 8))
	root.AddChild(widget)
	root.AddChild(bg)
	root.AddChild(avatar)
	widget.SetZIndex(2)
	avatar.SetZIndex(1)

	r := collectTree(root)
	got := commandNames(r)
	want := []string{"bg", "avatar", "widget"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	for i, c := range r.commands {
		if c.treeOrder != i+1 {
			t.Errorf("treeOrder[%d] = %d, want %d", i, c.treeOrder, i+1)
		}
	}
}

func TestCollectReusesBuffer(t *testing.T) {
	root := NewContainer("root")
	for range 4 {
		root.AddChild(NewSprite("s", ebiten.NewImage(4, 4)))
	}
	r := &renderer{}
	r.collect(root)

	result := testing.AllocsPerRun(50, func() {
		r.collect(root)
	})
	if result > 0 {
		t.Errorf("collect allocated %f times per run, want 0", result)
	}
}

func TestCommandGeoM(t *testing.T) {
	cmd := drawCommand{transform: [6]float32{2, 0, 0, 3, 15, 25}}
	m := commandGeoM(&cmd)
	x, y := m.Apply(1, 1)
	if x != 17 || y != 28 {
		t.Errorf("Apply(1, 1) = (%v, %v), want (17, 28)", x, y)
	}
}
