package tiltcard

import "github.com/hajimehoshi/ebiten/v2"

// color32 is a compact RGBA color using float32, for draw commands only.
type color32 struct {
	R, G, B, A float32
}

// drawCommand is a single draw instruction emitted during tree traversal.
type drawCommand struct {
	image     *ebiten.Image
	name      string
	transform [6]float32
	color     color32
	treeOrder int
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// renderer turns a node tree into draw calls. The command buffer is reused
// between frames.
type renderer struct {
	commands []drawCommand
}

// collect walks the tree rooted at root and rebuilds the command list.
func (r *renderer) collect(root *Node) {
	r.commands = r.commands[:0]
	treeOrder := 0
	r.traverse(root, identityTransform, 1, false, &treeOrder)
}

// traverse walks the node tree depth-first, updating transforms and emitting
// draw commands for visible sprites. Children are visited in ZIndex order.
func (r *renderer) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Type == NodeTypeSprite && n.image != nil && n.worldAlpha > 0 {
		*treeOrder++
		r.commands = append(r.commands, drawCommand{
			image:     n.image,
			name:      n.Name,
			transform: affine32(n.worldTransform),
			color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
			treeOrder: *treeOrder,
		})
	}

	if len(n.children) == 0 {
		return
	}
	for _, child := range n.drawOrder() {
		r.traverse(child, n.worldTransform, n.worldAlpha, recompute, treeOrder)
	}
}

// submit draws the collected commands onto dst in order.
func (r *renderer) submit(dst *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	for i := range r.commands {
		cmd := &r.commands[i]
		op.GeoM = commandGeoM(cmd)
		op.ColorScale.Reset()
		a := cmd.color.A
		op.ColorScale.Scale(cmd.color.R*a, cmd.color.G*a, cmd.color.B*a, a)
		dst.DrawImage(cmd.image, &op)
	}
}

// commandGeoM builds an ebiten.GeoM from a command's affine transform.
func commandGeoM(cmd *drawCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.transform[0]))
	m.SetElement(1, 0, float64(cmd.transform[1]))
	m.SetElement(0, 1, float64(cmd.transform[2]))
	m.SetElement(1, 1, float64(cmd.transform[3]))
	m.SetElement(0, 2, float64(cmd.transform[4]))
	m.SetElement(1, 2, float64(cmd.transform[5]))
	return m
}
