package greenflag

// ScriptFunc is the body of a script. It receives the context of the thread
// running it and must use that context for every block call.
type ScriptFunc func(c *ScriptContext)

// ScriptContext carries the owner and thread identity of one running
// script. It is created when the thread starts and handed to the body, so
// blocks never have to discover which actor or thread they run in.
type ScriptContext struct {
	rt     *Runtime
	thread *Thread
	actor  *Actor
}

// ThreadID returns the ID of the running thread.
func (c *ScriptContext) ThreadID() ThreadID { return c.thread.id }

// OwnerID returns the owner the thread was started for.
func (c *ScriptContext) OwnerID() string { return c.thread.owner }

// Actor returns the actor running the script. It is the stage target for
// stage scripts.
func (c *ScriptContext) Actor() *Actor { return c.actor }

// Runtime returns the runtime the script belongs to.
func (c *ScriptContext) Runtime() *Runtime { return c.rt }

// Frame returns the current frame number.
func (c *ScriptContext) Frame() uint64 { return c.rt.sched.Frame() }

// Timer returns the simulated time in seconds.
func (c *ScriptContext) Timer() float64 { return c.rt.sched.Now() }

// --- Suspension points ---

// Yield waits for the next frame.
func (c *ScriptContext) Yield() {
	c.thread.suspend()
}

// Wait suspends for at least seconds of simulated time. Non-positive
// durations return immediately without yielding.
func (c *ScriptContext) Wait(seconds float64) {
	if !(seconds > 0) {
		return
	}
	deadline := c.rt.sched.Now() + seconds
	for c.rt.sched.Now() < deadline {
		c.Yield()
	}
}

// WaitUntil suspends until cond returns true. cond is polled once per frame,
// first on the current frame.
func (c *ScriptContext) WaitUntil(cond func() bool) {
	for !cond() {
		c.Yield()
	}
}

// --- Loops ---

// Forever runs body once per frame until the thread is stopped.
func (c *ScriptContext) Forever(body func()) {
	for {
		body()
		c.Yield()
	}
}

// Repeat runs body n times without yielding between iterations.
func (c *ScriptContext) Repeat(n int, body func()) {
	for i := 0; i < n; i++ {
		body()
		c.thread.exitIfStopped()
	}
}

// RepeatUntil runs body once per frame until cond returns true. cond is
// checked before each iteration.
func (c *ScriptContext) RepeatUntil(cond func() bool, body func()) {
	for !cond() {
		body()
		c.Yield()
	}
}

// --- Stop blocks ---

// StopAll stops every script of every actor and deletes all clones.
func (c *ScriptContext) StopAll() {
	c.rt.StopAll()
	c.thread.exitIfStopped()
}

// StopThisScript stops the running thread. It does not return.
func (c *ScriptContext) StopThisScript() {
	c.rt.registry.StopOne(c.thread.id)
	c.thread.exitIfStopped()
}

// StopOtherScripts stops every other thread of the same owner.
func (c *ScriptContext) StopOtherScripts() {
	c.rt.registry.StopAllOfOwnerExcept(c.thread.owner, c.thread.id)
}

// --- Messaging ---

// Broadcast starts every "when I receive" script for msg.
func (c *ScriptContext) Broadcast(msg string) {
	c.rt.Broadcast(msg)
	c.thread.exitIfStopped()
}

// BroadcastAndWait broadcasts msg and suspends until every thread the
// broadcast started has completed or been stopped.
func (c *ScriptContext) BroadcastAndWait(msg string) {
	started := c.rt.Broadcast(msg)
	c.thread.exitIfStopped()
	c.WaitUntil(func() bool {
		for _, id := range started {
			if c.rt.registry.Contains(id) {
				return false
			}
		}
		return true
	})
}

// --- Diagnostics ---

// unresolved logs a block that has no sprite to act on. The block does
// nothing.
func (c *ScriptContext) unresolved(block string) {
	ev := c.rt.log.Warn().
		Str("block", block).
		Str("thread", string(c.thread.id)).
		Str("owner", c.thread.owner)
	if c.actor != nil {
		ev = ev.Str("actor", c.actor.name).Bool("deleted", c.actor.deleted)
	}
	ev.Msg("unresolved owner")
}

// sprite returns the sprite the running script acts on, or nil after
// logging when there is none: stage scripts and deleted clones.
func (c *ScriptContext) sprite(block string) *Actor {
	a := c.actor
	if a == nil || a.node == nil || a.deleted {
		c.unresolved(block)
		return nil
	}
	return a
}
