package greenflag

import "github.com/hajimehoshi/ebiten/v2"

// Scene owns the node tree, input state, and the synthetic input queue.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before sprites are drawn.
	ClearColor Color

	handlers    handlerRegistry
	pointer     pointerState
	pointerSeen bool
	hitBuf      []*Node
	keyBuf      []ebiten.Key
	heldBuf     []ebiten.Key
	injectQueue []syntheticEvent

	// Held keys: polledKeys is rebuilt from the keyboard on every polled
	// frame, injectedKeys follows InjectKeyDown and InjectKeyUp.
	polledKeys   map[Key]bool
	injectedKeys map[Key]bool
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:       root,
		ClearColor: ColorWhite,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms, then handles input: one synthetic
// event when any are queued, otherwise real devices when poll is set.
func (s *Scene) Update(poll bool) {
	// Refresh world transforms first so hit testing has accurate positions
	// this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.processInjectedInput() {
		return
	}
	if poll {
		s.pollInput()
	}
}

// KeyHeld reports whether k is held down, by the keyboard or by an injected
// key-down. KeyAny matches any held key.
func (s *Scene) KeyHeld(k Key) bool {
	if k == KeyAny {
		return len(s.polledKeys) > 0 || len(s.injectedKeys) > 0
	}
	return s.polledKeys[k] || s.injectedKeys[k]
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool
