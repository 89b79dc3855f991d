package greenflag

// SetSizeTo sets the sprite's size as a percentage of its costume.
func (c *ScriptContext) SetSizeTo(percent float64) {
	if a := c.sprite("set size to"); a != nil {
		a.SetSizePercent(percent)
	}
}

// ChangeSizeBy adds delta percentage points to the sprite's size.
func (c *ScriptContext) ChangeSizeBy(delta float64) {
	if a := c.sprite("change size by"); a != nil {
		a.SetSizePercent(a.SizePercent() + delta)
	}
}

// Size returns the sprite's size percentage, or 100 without a sprite.
func (c *ScriptContext) Size() float64 {
	if a := c.sprite("size"); a != nil {
		return a.SizePercent()
	}
	return 100
}

// Show makes the sprite visible.
func (c *ScriptContext) Show() {
	if a := c.sprite("show"); a != nil {
		a.SetVisible(true)
	}
}

// Hide makes the sprite invisible. Hidden sprites are not clickable.
func (c *ScriptContext) Hide() {
	if a := c.sprite("hide"); a != nil {
		a.SetVisible(false)
	}
}

// GoToFrontLayer draws the sprite on top of every other sprite.
func (c *ScriptContext) GoToFrontLayer() {
	a := c.sprite("go to front layer")
	if a == nil {
		return
	}
	root := c.rt.scene.Root()
	root.SetChildIndex(a.node, root.NumChildren()-1)
}

// GoBackLayers moves the sprite n layers backwards, stopping at the back.
// Negative n moves it forwards.
func (c *ScriptContext) GoBackLayers(n int) {
	a := c.sprite("go backward layers")
	if a == nil {
		return
	}
	root := c.rt.scene.Root()
	idx := root.ChildIndex(a.node) - n
	idx = max(0, min(idx, root.NumChildren()-1))
	root.SetChildIndex(a.node, idx)
}

// SetGhost sets the sprite's transparency: 0 is opaque, 100 invisible.
func (c *ScriptContext) SetGhost(percent float64) {
	a := c.sprite("set ghost effect")
	if a == nil {
		return
	}
	a.node.Alpha = 1 - clamp01(percent/100)
	a.node.MarkDirty()
}
