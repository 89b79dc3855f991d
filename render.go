package greenflag

import "github.com/hajimehoshi/ebiten/v2"

// Draw clears screen to ClearColor and draws every visible sprite in
// painter order: parents before children, siblings in child order.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.drawNode(screen, s.root)
}

func (s *Scene) drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeSprite && n.Width > 0 && n.Height > 0 && n.worldAlpha > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM = spriteGeoM(n)
		a := n.worldAlpha * n.Color.A
		op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
		screen.DrawImage(WhitePixel, &op)
	}
	for _, child := range n.children {
		s.drawNode(screen, child)
	}
}

// spriteGeoM stretches the 1x1 WhitePixel to the node's size and applies
// its world transform.
func spriteGeoM(n *Node) ebiten.GeoM {
	var world ebiten.GeoM
	m := n.worldTransform
	world.SetElement(0, 0, m[0])
	world.SetElement(0, 1, m[2])
	world.SetElement(0, 2, m[4])
	world.SetElement(1, 0, m[1])
	world.SetElement(1, 1, m[3])
	world.SetElement(1, 2, m[5])

	var g ebiten.GeoM
	g.Scale(n.Width, n.Height)
	g.Concat(world)
	return g
}
