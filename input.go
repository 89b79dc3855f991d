package greenflag

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Keys ---

// Key is a Scratch key name such as "space", "left arrow", "a" or "7".
type Key string

const (
	KeyAny        Key = "any" // matches every key in WhenKeyPressed
	KeySpace      Key = "space"
	KeyUpArrow    Key = "up arrow"
	KeyDownArrow  Key = "down arrow"
	KeyLeftArrow  Key = "left arrow"
	KeyRightArrow Key = "right arrow"
)

// keyName maps an ebiten key to its Scratch name. ok is false for keys
// Scratch has no hat for.
func keyName(k ebiten.Key) (Key, bool) {
	switch {
	case k == ebiten.KeySpace:
		return KeySpace, true
	case k == ebiten.KeyArrowUp:
		return KeyUpArrow, true
	case k == ebiten.KeyArrowDown:
		return KeyDownArrow, true
	case k == ebiten.KeyArrowLeft:
		return KeyLeftArrow, true
	case k == ebiten.KeyArrowRight:
		return KeyRightArrow, true
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return Key(rune('a' + int(k-ebiten.KeyA))), true
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return Key(rune('0' + int(k-ebiten.KeyDigit0))), true
	}
	return "", false
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node
	hit     bool // press landed on hitNode, or on empty stage when hitNode is nil
	button  MouseButton
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type keyHandler struct {
	id uint32
	fn func(Key)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	click       []clickHandler
	keyPress    []keyHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id, func(c clickHandler) uint32 { return c.id })
	case EventKeyPress:
		h.reg.keyPress = removeHandler(h.reg.keyPress, h.id, func(k keyHandler) uint32 { return k.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnClick registers a scene-level callback for click events. Clicks on
// empty stage area arrive with a nil Node.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnKeyPress registers a scene-level callback fired once per key-down edge.
func (s *Scene) OnKeyPress(fn func(Key)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.keyPress = append(s.handlers.keyPress, keyHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventKeyPress}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the sprite's Width x Height box.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type != NodeTypeSprite || !(n.Width > 0) || !(n.Height > 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Skips Visible=false or Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		if singular(n.worldTransform) {
			continue
		}
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// pollInput reads real mouse and keyboard state. Called from Scene.Update
// when no synthetic event was consumed this frame.
func (s *Scene) pollInput() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	s.processPointer(float64(mx), float64(my), pressed, button)

	s.heldBuf = inpututil.AppendPressedKeys(s.heldBuf[:0])
	clear(s.polledKeys)
	for _, k := range s.heldBuf {
		if name, ok := keyName(k); ok {
			if s.polledKeys == nil {
				s.polledKeys = make(map[Key]bool)
			}
			s.polledKeys[name] = true
		}
	}

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		if name, ok := keyName(k); ok {
			s.fireKeyPress(name)
		}
	}
}

// processPointer runs the pointer state machine. A click fires when press
// and release land on the same node, or both on empty stage.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(wx, wy)

	if wx != ps.lastX || wy != ps.lastY || !s.pointerSeen {
		s.firePointerMove(target, wx, wy, button)
		ps.lastX, ps.lastY = wx, wy
		s.pointerSeen = true
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		ps.hit = true
		s.firePointerDown(target, wx, wy, button)
	case !pressed && ps.down:
		if ps.hit && ps.hitNode == target {
			s.fireClick(target, wx, wy, ps.button)
		}
		s.firePointerUp(target, wx, wy, ps.button)
		ps.down = false
		ps.hitNode = nil
		ps.hit = false
	}
}

// --- Event dispatch ---

func pointerCtx(node *Node, wx, wy float64, button MouseButton) PointerContext {
	ctx := PointerContext{Node: node, GlobalX: wx, GlobalY: wy, Button: button}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.UserData = node.UserData
	}
	return ctx
}

func (s *Scene) firePointerDown(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	// Scene-level handlers first.
	for _, h := range s.handlers.pointerDown {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
}

func (s *Scene) firePointerUp(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	for _, h := range s.handlers.pointerUp {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerUp != nil {
		node.OnPointerUp(ctx)
	}
}

func (s *Scene) firePointerMove(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerCtx(node, wx, wy, button)
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
}

func (s *Scene) fireClick(node *Node, wx, wy float64, button MouseButton) {
	p := pointerCtx(node, wx, wy, button)
	ctx := ClickContext{
		Node: p.Node, UserData: p.UserData,
		GlobalX: wx, GlobalY: wy, LocalX: p.LocalX, LocalY: p.LocalY,
		Button: button,
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
}

func (s *Scene) fireKeyPress(k Key) {
	for _, h := range s.handlers.keyPress {
		h.fn(k)
	}
}
