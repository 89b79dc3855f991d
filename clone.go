package greenflag

import "github.com/google/uuid"

// CreateClone copies src into a new actor with its own owner ID and starts
// the clone's "when I start as a clone" scripts. The clone shares src's
// scripts and is drawn directly behind it. It returns nil, after logging,
// when src is not a live sprite or the clone limit is reached.
func (rt *Runtime) CreateClone(src *Actor) *Actor {
	if src == nil || src.node == nil || src.deleted {
		rt.log.Warn().Str("block", "create clone").Msg("unresolved owner")
		return nil
	}
	if rt.clones >= rt.cfg.MaxClones {
		rt.log.Warn().Str("actor", src.name).Int("limit", rt.cfg.MaxClones).Msg("clone limit reached")
		return nil
	}

	id := src.id + "/clone-" + uuid.NewString()
	c := rt.newActor(id, src.name, src.costume, src.node.Color, src.scripts)
	c.clone = true
	c.pos = src.pos
	c.dir = src.dir
	c.size = src.size
	c.style = src.style
	c.visible = src.visible
	c.node.Alpha = src.node.Alpha
	src.vars.copyTo(&c.vars, c.id)

	root := rt.scene.Root()
	root.AddChildAt(c.node, max(root.ChildIndex(src.node), 0))
	c.sync()
	rt.clones++

	rt.subscribeAll(c)
	rt.emit(RuntimeEvent{Kind: EventCloneCreated, OwnerID: c.id, Actor: c.name})
	for _, fn := range c.scripts.cloneStart {
		rt.startScript(c, fn, "clone start")
	}
	return c
}

// DeleteClone stops every thread of clone a, detaches its receivers, and
// removes it from the stage. Original sprites cannot be deleted; the call
// is logged and ignored. It reports whether a was deleted.
func (rt *Runtime) DeleteClone(a *Actor) bool {
	if a == nil || a.deleted {
		return false
	}
	if !a.clone {
		rt.log.Warn().Str("actor", a.name).Msg("delete clone on an original sprite ignored")
		return false
	}
	a.deleted = true
	rt.registry.StopAllOfOwnerExcept(a.id, "")
	for _, sub := range a.subs {
		sub.Cancel()
	}
	a.subs = nil

	for i, x := range rt.actors {
		if x == a {
			copy(rt.actors[i:], rt.actors[i+1:])
			rt.actors[len(rt.actors)-1] = nil
			rt.actors = rt.actors[:len(rt.actors)-1]
			break
		}
	}
	delete(rt.byOwner, a.id)
	a.node.Dispose()
	rt.clones--
	rt.emit(RuntimeEvent{Kind: EventCloneDeleted, OwnerID: a.id, Actor: a.name})
	return true
}

// CreateCloneOf clones the sprite named name, or the running sprite when
// name is "myself".
func (c *ScriptContext) CreateCloneOf(name string) *Actor {
	src := c.actor
	if name != "myself" && name != "" {
		var ok bool
		if src, ok = c.rt.Sprite(name); !ok {
			c.unresolved("create clone of " + name)
			return nil
		}
	}
	clone := c.rt.CreateClone(src)
	c.thread.exitIfStopped()
	return clone
}

// DeleteThisClone deletes the running clone. The calling script stops with
// it. On an original sprite it does nothing.
func (c *ScriptContext) DeleteThisClone() {
	if c.actor == nil || !c.actor.clone {
		return
	}
	c.rt.DeleteClone(c.actor)
	c.thread.exitIfStopped()
}
