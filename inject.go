package greenflag

// syntheticEvent is a single injected pointer or key event. Pointer
// coordinates are UI space, the same space real mouse input arrives in.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	key     Key // non-empty for key events
	keyEdge keyEdge
}

// keyEdge says what a synthetic key event does to the held-key set.
type keyEdge uint8

const (
	keyTap  keyEdge = iota // press edge only; the key is never held
	keyDown                // press edge; the key stays held until keyUp
	keyUp                  // release; no edge fires
)

// InjectPress queues a left button press at (x, y). The event is consumed
// on the next frame's Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectRelease queues a pointer release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, button: MouseButtonLeft})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same point. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectKey queues one key-down edge for k.
func (s *Scene) InjectKey(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{key: k})
}

// InjectKeyDown queues a key-down edge for k and keeps k held until a
// matching InjectKeyUp is consumed.
func (s *Scene) InjectKeyDown(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{key: k, keyEdge: keyDown})
}

// InjectKeyUp queues the release of a key held by InjectKeyDown.
func (s *Scene) InjectKeyUp(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{key: k, keyEdge: keyUp})
}

// Pending returns the number of queued synthetic events.
func (s *Scene) Pending() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same path real input takes. Returns true if an event was
// consumed, in which case real input is skipped this frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.key != "" {
		switch evt.keyEdge {
		case keyDown:
			if s.injectedKeys == nil {
				s.injectedKeys = make(map[Key]bool)
			}
			s.injectedKeys[evt.key] = true
			s.fireKeyPress(evt.key)
		case keyUp:
			delete(s.injectedKeys, evt.key)
		default:
			s.fireKeyPress(evt.key)
		}
		return true
	}
	s.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	return true
}
