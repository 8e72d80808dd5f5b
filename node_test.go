package tiltcard

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructor defaults ---

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should default to true")
	}
	if n.Color != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.transformDirty {
		t.Error("new node should be transform-dirty")
	}
	if n.ID == 0 {
		t.Error("ID should be assigned")
	}
}

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewSpriteDefaults(t *testing.T) {
	img := ebiten.NewImage(32, 16)
	n := NewSprite("spr", img)
	assertNodeDefaults(t, n, "spr", NodeTypeSprite)
	if n.Image() != img {
		t.Error("Image() should return the constructor image")
	}
	if w, h := n.Size(); w != 32 || h != 16 {
		t.Errorf("Size = (%v, %v), want (32, 16)", w, h)
	}
}

func TestSpriteWithoutImageHasNoSize(t *testing.T) {
	n := NewSprite("empty", nil)
	if w, h := n.Size(); w != 0 || h != 0 {
		t.Errorf("Size = (%v, %v), want zero", w, h)
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewSprite("c", nil)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.Children()[0] != child {
		t.Error("Children()[0] should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	grandchild.AddChild(parent)
}

func TestAddChildNilPanic(t *testing.T) {
	n := NewContainer("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child, got none")
		}
	}()
	n.AddChild(nil)
}

// --- Removal ---

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.RemoveChild(a)
	if a.Parent != nil {
		t.Error("removed child should have no parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != b {
		t.Errorf("children = %v, want [b]", parent.Children())
	}
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for wrong parent, got none")
		}
	}()
	p2.RemoveChild(child)
}

func TestRemoveFromParentNoOp(t *testing.T) {
	n := NewContainer("orphan")
	n.RemoveFromParent()
	if n.Parent != nil {
		t.Error("orphan should remain parentless")
	}
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	kids := []*Node{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	for _, k := range kids {
		parent.AddChild(k)
	}
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil {
			t.Errorf("%s still has a parent", k.Name)
		}
		if k.IsDisposed() {
			t.Errorf("%s should not be disposed", k.Name)
		}
	}
}

func TestFindChild(t *testing.T) {
	parent := NewContainer("parent")
	parent.AddChild(NewContainer("icon-0"))
	want := NewContainer("icon-1")
	parent.AddChild(want)

	if got := parent.FindChild("icon-1"); got != want {
		t.Errorf("FindChild = %v, want %v", got, want)
	}
	if got := parent.FindChild("missing"); got != nil {
		t.Errorf("FindChild(missing) = %v, want nil", got)
	}
}

// --- Draw order ---

func TestDrawOrderByZIndex(t *testing.T) {
	parent := NewContainer("parent")
	widget := NewContainer("widget")
	bg := NewContainer("bg")
	item := NewContainer("item")
	parent.AddChild(widget)
	parent.AddChild(bg)
	parent.AddChild(item)

	widget.SetZIndex(3)
	bg.SetZIndex(0)
	item.SetZIndex(2)

	order := parent.drawOrder()
	want := []*Node{bg, item, widget}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("drawOrder[%d] = %s, want %s", i, order[i].Name, want[i].Name)
		}
	}
	// Insertion order of the child list is untouched.
	if parent.Children()[0] != widget {
		t.Error("Children() order should not change")
	}
}

func TestDrawOrderStableForEqualZIndex(t *testing.T) {
	parent := NewContainer("parent")
	nodes := make([]*Node, 5)
	for i := range nodes {
		nodes[i] = NewContainer("")
		parent.AddChild(nodes[i])
	}
	nodes[2].SetZIndex(-1)

	order := parent.drawOrder()
	want := []*Node{nodes[2], nodes[0], nodes[1], nodes[3], nodes[4]}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("drawOrder[%d] mismatch", i)
		}
	}
}

// --- Dispose ---

func TestDispose(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewSprite("child", ebiten.NewImage(4, 4))
	root.AddChild(parent)
	parent.AddChild(child)

	parent.Dispose()

	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("parent and child should be disposed")
	}
	if parent.ID != 0 || child.ID != 0 {
		t.Error("disposed nodes should have ID = 0")
	}
	if root.NumChildren() != 0 {
		t.Error("root should have 0 children after dispose")
	}
	if child.Image() != nil {
		t.Error("disposed sprite should drop its image")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewContainer("n")
	n.Dispose()
	n.Dispose()
	if !n.IsDisposed() {
		t.Error("should still be disposed")
	}
}

// --- Dirty propagation ---

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)

	child.transformDirty = false
	grandchild.transformDirty = false

	parent.AddChild(child)

	if !child.transformDirty {
		t.Error("child should be dirty after AddChild")
	}
	if !grandchild.transformDirty {
		t.Error("grandchild should be dirty after AddChild")
	}
}

func TestDirtyPropagationOnRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	child.transformDirty = false
	parent.RemoveChild(child)

	if !child.transformDirty {
		t.Error("child should be dirty after RemoveChild")
	}
}
