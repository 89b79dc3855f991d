package greenflag

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// StageOwnerID is the owner ID of the stage target's scripts.
const StageOwnerID = "stage"

// Runtime is one running project: the stage, its sprites and clones, the
// thread registry, the scheduler, and the message bus. A Runtime is
// single-threaded; call its methods from the goroutine that calls Update
// or Tick.
type Runtime struct {
	cfg    Config
	stage  Stage
	origin OriginMode
	log    zerolog.Logger

	registry *ThreadRegistry
	sched    *Scheduler
	bus      *MessageBus
	scene    *Scene
	store    EntityStore
	runner   *TestRunner
	rng      *rand.Rand

	stageTarget *Actor
	actors      []*Actor // sprites and clones in creation order
	byOwner     map[string]*Actor
	clones      int
	globals     variableSet

	pointer Vec2 // last known pointer position, logical
	closed  bool
}

// NewRuntime creates a runtime for cfg. The logger writes console output to
// stderr at cfg.LogLevel; replace it with SetLogger.
func NewRuntime(cfg Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rt := &Runtime{
		cfg:      cfg,
		stage:    cfg.Stage(),
		origin:   cfg.Origin,
		registry: NewThreadRegistry(),
		sched:    NewScheduler(),
		bus:      NewMessageBus(),
		scene:    NewScene(),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		byOwner:  make(map[string]*Actor),
	}
	rt.SetLogger(NewLogger(os.Stderr, cfg.LogLevel, cfg.LogJSON))
	rt.scene.SetDebugMode(cfg.Debug)

	rt.stageTarget = &Actor{rt: rt, id: StageOwnerID, name: "Stage", scripts: newScriptSet(), size: 100, visible: true}
	rt.byOwner[StageOwnerID] = rt.stageTarget

	rt.scene.OnClick(func(ctx ClickContext) {
		// Clicks on empty stage area have no node.
		if ctx.Node == nil {
			rt.ClickActor(rt.stageTarget)
		}
	})
	rt.scene.OnKeyPress(func(k Key) { rt.PressKey(k) })
	rt.scene.OnPointerMove(func(ctx PointerContext) {
		rt.pointer = UIToLogical(Vec2{ctx.GlobalX, ctx.GlobalY}, rt.stage, rt.origin)
	})
	return rt, nil
}

// SetLogger replaces the runtime logger. The zerolog global logger is left
// alone; install it with InitLogger.
func (rt *Runtime) SetLogger(l zerolog.Logger) { rt.log = l }

// Logger returns the runtime logger.
func (rt *Runtime) Logger() zerolog.Logger { return rt.log }

// Config returns the configuration the runtime was created with.
func (rt *Runtime) Config() Config { return rt.cfg }

// StageSize returns the logical stage size.
func (rt *Runtime) StageSize() Stage { return rt.stage }

// Origin returns the coordinate origin mode.
func (rt *Runtime) Origin() OriginMode { return rt.origin }

// Registry returns the thread registry.
func (rt *Runtime) Registry() *ThreadRegistry { return rt.registry }

// Scheduler returns the frame scheduler.
func (rt *Runtime) Scheduler() *Scheduler { return rt.sched }

// Bus returns the message bus.
func (rt *Runtime) Bus() *MessageBus { return rt.bus }

// Scene returns the scene graph sprites are drawn in.
func (rt *Runtime) Scene() *Scene { return rt.scene }

// Stage returns the stage target. Stage scripts run under StageOwnerID.
func (rt *Runtime) Stage() *Actor { return rt.stageTarget }

// SetEntityStore sets the optional ECS bridge that receives RuntimeEvents.
func (rt *Runtime) SetEntityStore(store EntityStore) { rt.store = store }

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// frame, before input.
func (rt *Runtime) SetTestRunner(runner *TestRunner) { rt.runner = runner }

// PointerPosition returns the last known pointer position in logical
// coordinates.
func (rt *Runtime) PointerPosition() Vec2 { return rt.pointer }

// Actor returns the live actor with the given owner ID.
func (rt *Runtime) Actor(ownerID string) (*Actor, bool) {
	a, ok := rt.byOwner[ownerID]
	return a, ok
}

// Sprite returns the original (non-clone) sprite named name.
func (rt *Runtime) Sprite(name string) (*Actor, bool) {
	a, ok := rt.byOwner[spriteOwnerID(name)]
	return a, ok
}

// Actors returns every live sprite and clone in creation order. The
// returned slice must not be mutated.
func (rt *Runtime) Actors() []*Actor { return rt.actors }

// instances returns the live sprite named name and its clones.
func (rt *Runtime) instances(name string) []*Actor {
	var out []*Actor
	for _, a := range rt.actors {
		if a.name == name && !a.deleted {
			out = append(out, a)
		}
	}
	return out
}

// --- Frame loop ---

// Tick runs one scheduler frame of dt seconds. A Tick requested from
// inside a script body is refused.
func (rt *Runtime) Tick(dt float64) {
	var t0 time.Time
	if rt.cfg.Debug {
		t0 = time.Now()
	}
	if !rt.sched.Tick(dt) {
		rt.log.Error().Uint64("frame", rt.sched.Frame()).Msg("re-entrant tick refused")
		return
	}
	if rt.cfg.Debug {
		rt.debugLog(frameStats{
			frame:   rt.sched.Frame(),
			threads: rt.registry.Len(),
			actors:  len(rt.actors),
			clones:  rt.clones,
			elapsed: time.Since(t0),
		})
	}
}

// frame runs the test runner, input, and one Tick. poll selects whether real
// devices are read when no synthetic input is queued.
func (rt *Runtime) frame(dt float64, poll bool) {
	if rt.runner != nil {
		rt.runner.step(rt)
	}
	rt.scene.Update(poll)
	rt.Tick(dt)
}

// Update runs one frame at the current ebiten tick rate. Call it from
// ebiten.Game.Update, or use Run.
func (rt *Runtime) Update() {
	rt.frame(1/float64(ebiten.TPS()), true)
}

// Close stops every thread. Their goroutines have exited when Close
// returns. The runtime cannot be used afterwards.
func (rt *Runtime) Close() {
	if rt.closed {
		return
	}
	rt.registry.StopAll()
	rt.closed = true
}

// --- Thread lifecycle ---

// startScript creates, registers, and schedules a thread running fn for a.
func (rt *Runtime) startScript(a *Actor, fn ScriptFunc, trigger string) ThreadID {
	if rt.closed || a == nil || a.deleted {
		return ""
	}
	t := newThread(a.id)
	c := &ScriptContext{rt: rt, thread: t, actor: a}
	t.body = func() { fn(c) }
	t.onExit = rt.threadExited
	t.id = rt.registry.Register(a.id, t)
	rt.sched.spawn(t)

	rt.log.Debug().Str("thread", string(t.id)).Str("owner", a.id).Str("trigger", trigger).Msg("thread started")
	rt.emit(RuntimeEvent{Kind: EventThreadStarted, ThreadID: t.id, OwnerID: a.id, Actor: a.name})
	return t.id
}

// threadExited runs on the exiting thread's goroutine.
func (rt *Runtime) threadExited(t *Thread, completed bool, recovered any) {
	if recovered != nil {
		rt.log.Error().Str("thread", string(t.id)).Str("owner", t.owner).
			Interface("panic", recovered).Msg("script panicked")
	}
	kind := EventThreadStopped
	if completed {
		rt.registry.Unregister(t.id)
		kind = EventThreadCompleted
	}
	rt.log.Debug().Str("thread", string(t.id)).Str("owner", t.owner).Str("state", t.state.String()).Msg("thread exited")
	rt.emit(RuntimeEvent{Kind: kind, ThreadID: t.id, OwnerID: t.owner})
}

// StopAll stops every thread and deletes every clone.
func (rt *Runtime) StopAll() {
	rt.registry.StopAll()
	for _, a := range append([]*Actor(nil), rt.actors...) {
		if a.clone {
			rt.DeleteClone(a)
		}
	}
	rt.emit(RuntimeEvent{Kind: EventStopAll})
}

func (rt *Runtime) emit(ev RuntimeEvent) {
	if rt.store == nil {
		return
	}
	ev.Frame = rt.sched.Frame()
	rt.store.EmitEvent(ev)
}
