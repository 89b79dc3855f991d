package greenflag

// EntityStore is the interface for optional ECS integration. When set on a
// Runtime, thread lifecycle and trigger events are forwarded to it.
type EntityStore interface {
	EmitEvent(event RuntimeEvent)
}

// RuntimeEventKind identifies what a RuntimeEvent reports.
type RuntimeEventKind uint8

const (
	EventThreadStarted   RuntimeEventKind = iota // a script thread was registered
	EventThreadCompleted                         // a script body returned
	EventThreadStopped                           // a script thread was cancelled
	EventGreenFlag                               // the green flag was clicked
	EventKeyPressed                              // a key-down edge was delivered
	EventActorClicked                            // a sprite or the stage was clicked
	EventMessageBroadcast                        // a message was broadcast
	EventCloneCreated                            // a clone was created
	EventCloneDeleted                            // a clone was deleted
	EventStopAll                                 // every script was stopped
	EventVariableChanged                         // a variable block changed a value
)

// RuntimeEvent carries runtime activity for the ECS bridge. Only the fields
// relevant to Kind are set.
type RuntimeEvent struct {
	Kind     RuntimeEventKind
	Frame    uint64
	ThreadID ThreadID
	OwnerID  string
	Actor    string
	Message  string
	Key      Key
	Variable string
	Value    float64
}

type keyScript struct {
	key Key
	fn  ScriptFunc
}

type receiveScript struct {
	msg string
	fn  ScriptFunc
}

// scriptSet holds the hat scripts of a sprite. Clones share the set of the
// sprite they were cloned from.
type scriptSet struct {
	greenFlag  []ScriptFunc
	keys       []keyScript
	clicked    []ScriptFunc
	receive    []receiveScript
	cloneStart []ScriptFunc
}

func newScriptSet() *scriptSet { return &scriptSet{} }

// --- Script registration ---

// WhenGreenFlagClicked adds a script started by GreenFlag.
func (a *Actor) WhenGreenFlagClicked(fn ScriptFunc) {
	a.scripts.greenFlag = append(a.scripts.greenFlag, fn)
}

// WhenKeyPressed adds a script started on each key-down edge of key. KeyAny
// matches every key.
func (a *Actor) WhenKeyPressed(key Key, fn ScriptFunc) {
	a.scripts.keys = append(a.scripts.keys, keyScript{key: key, fn: fn})
}

// WhenClicked adds a script started when the sprite is clicked. On the
// stage target it runs when empty stage area is clicked.
func (a *Actor) WhenClicked(fn ScriptFunc) {
	a.scripts.clicked = append(a.scripts.clicked, fn)
}

// WhenIReceive adds a script started when msg is broadcast. Every live
// instance sharing the scripts receives it, clones included.
func (a *Actor) WhenIReceive(msg string, fn ScriptFunc) {
	a.scripts.receive = append(a.scripts.receive, receiveScript{msg: msg, fn: fn})
	rt := a.rt
	for _, inst := range append([]*Actor{rt.stageTarget}, rt.actors...) {
		if inst.scripts == a.scripts && !inst.deleted {
			rt.subscribe(inst, msg, fn)
		}
	}
}

// WhenIStartAsClone adds a script started in every new clone.
func (a *Actor) WhenIStartAsClone(fn ScriptFunc) {
	a.scripts.cloneStart = append(a.scripts.cloneStart, fn)
}

// subscribe connects one receive script of inst to the bus.
func (rt *Runtime) subscribe(inst *Actor, msg string, fn ScriptFunc) {
	sub := rt.bus.Subscribe(msg, func(string) ThreadID {
		return rt.startScript(inst, fn, "message:"+msg)
	})
	inst.subs = append(inst.subs, sub)
}

// subscribeAll connects every receive script of inst. Used for new clones.
func (rt *Runtime) subscribeAll(inst *Actor) {
	for _, rs := range inst.scripts.receive {
		rt.subscribe(inst, rs.msg, rs.fn)
	}
}

// --- Triggers ---

// targets returns the stage target followed by every live sprite and clone.
func (rt *Runtime) targets() []*Actor {
	out := make([]*Actor, 0, len(rt.actors)+1)
	out = append(out, rt.stageTarget)
	for _, a := range rt.actors {
		if !a.deleted {
			out = append(out, a)
		}
	}
	return out
}

// GreenFlag restarts the project: every thread is stopped, every clone is
// deleted, and then each green-flag script starts, stage first and then
// sprites in creation order.
func (rt *Runtime) GreenFlag() []ThreadID {
	rt.StopAll()
	rt.emit(RuntimeEvent{Kind: EventGreenFlag})
	var started []ThreadID
	for _, a := range rt.targets() {
		for _, fn := range a.scripts.greenFlag {
			if id := rt.startScript(a, fn, "green flag"); id != "" {
				started = append(started, id)
			}
		}
	}
	return started
}

// PressKey delivers one key-down edge. Every matching script of every live
// target starts once.
func (rt *Runtime) PressKey(key Key) []ThreadID {
	rt.emit(RuntimeEvent{Kind: EventKeyPressed, Key: key})
	var started []ThreadID
	for _, a := range rt.targets() {
		for _, ks := range a.scripts.keys {
			if ks.key == KeyAny || ks.key == key {
				if id := rt.startScript(a, ks.fn, "key:"+string(key)); id != "" {
					started = append(started, id)
				}
			}
		}
	}
	return started
}

// ClickActor delivers one click on a. Deleted actors ignore clicks.
func (rt *Runtime) ClickActor(a *Actor) []ThreadID {
	if a == nil || a.deleted {
		return nil
	}
	rt.emit(RuntimeEvent{Kind: EventActorClicked, OwnerID: a.id, Actor: a.name})
	var started []ThreadID
	for _, fn := range a.scripts.clicked {
		if id := rt.startScript(a, fn, "click"); id != "" {
			started = append(started, id)
		}
	}
	return started
}

// Broadcast starts every "when I receive" script for msg and returns the
// started threads.
func (rt *Runtime) Broadcast(msg string) []ThreadID {
	rt.emit(RuntimeEvent{Kind: EventMessageBroadcast, Message: msg})
	started := rt.bus.Publish(msg)
	rt.log.Debug().Str("message", msg).Int("started", len(started)).Msg("broadcast")
	return started
}
