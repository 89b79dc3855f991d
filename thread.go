package greenflag

import "runtime"

// ThreadState is the lifecycle state of a logical thread.
type ThreadState uint8

const (
	ThreadCreated   ThreadState = iota // allocated, not yet registered
	ThreadRunning                      // registered; running or suspended
	ThreadCompleted                    // body returned normally
	ThreadStopped                      // cancelled through Stop
)

// String returns a lower-case name for logs.
func (s ThreadState) String() string {
	switch s {
	case ThreadCreated:
		return "created"
	case ThreadRunning:
		return "running"
	case ThreadCompleted:
		return "completed"
	case ThreadStopped:
		return "stopped"
	}
	return "unknown"
}

// Thread is one cooperative execution unit. Its body runs on a dedicated
// goroutine, but only while it holds the turn: the scheduler hands the turn
// over on resume and waits on parked until the body suspends or exits.
// Exactly one body runs at any moment.
//
// A stopped thread unwinds at its suspension point with runtime.Goexit, so
// only its deferred calls run after Stop.
type Thread struct {
	id    ThreadID
	owner string
	state ThreadState

	body   func()
	resume chan bool
	parked chan struct{}

	active        bool // holds the turn right now
	stopRequested bool

	// onExit runs on the thread's goroutine before it hands the turn back.
	onExit func(t *Thread, completed bool, recovered any)
}

func newThread(owner string) *Thread {
	return &Thread{
		owner:  owner,
		state:  ThreadCreated,
		resume: make(chan bool),
		parked: make(chan struct{}),
	}
}

// ID returns the registry ID of the thread.
func (t *Thread) ID() ThreadID { return t.id }

// Owner returns the owner ID the thread was registered under.
func (t *Thread) Owner() string { return t.owner }

// State returns the current lifecycle state.
func (t *Thread) State() ThreadState { return t.state }

// Done reports whether the thread has completed or been stopped.
func (t *Thread) Done() bool {
	return t.state == ThreadCompleted || t.state == ThreadStopped
}

// launch moves the thread to Running and parks its goroutine until the
// first turn.
func (t *Thread) launch() {
	t.state = ThreadRunning
	go t.run()
}

func (t *Thread) run() {
	completed := false
	defer func() {
		var recovered any
		if r := recover(); r != nil {
			recovered = r
			completed = true
		}
		if completed {
			t.state = ThreadCompleted
		} else {
			t.state = ThreadStopped
		}
		if t.onExit != nil {
			t.onExit(t, completed, recovered)
		}
		t.parked <- struct{}{}
	}()

	if !<-t.resume {
		runtime.Goexit()
	}
	if t.body != nil {
		t.body()
	}
	// A body that stopped itself and returned before a block boundary
	// still ends as stopped.
	completed = !t.stopRequested
}

// step gives the thread one turn and blocks until it suspends or exits.
func (t *Thread) step() {
	if t.state != ThreadRunning || t.stopRequested {
		return
	}
	t.active = true
	t.resume <- true
	<-t.parked
	t.active = false
}

// suspend hands the turn back and blocks until the next one. Called only
// from the thread's own goroutine.
func (t *Thread) suspend() {
	t.exitIfStopped()
	t.parked <- struct{}{}
	if !<-t.resume || t.stopRequested {
		runtime.Goexit()
	}
}

// exitIfStopped unwinds the calling body when a stop was requested while
// it held the turn.
func (t *Thread) exitIfStopped() {
	if t.stopRequested {
		runtime.Goexit()
	}
}

// Stop cancels the thread. Stopping a suspended thread unwinds it before
// Stop returns. Stopping the thread that holds the turn only marks it; the
// body exits at its next suspension point or block boundary. Calling Stop
// on a finished thread, or twice, does nothing.
func (t *Thread) Stop() {
	if t.state != ThreadRunning || t.stopRequested {
		if t.state == ThreadCreated {
			t.state = ThreadStopped
		}
		return
	}
	t.stopRequested = true
	if t.active {
		return
	}
	t.resume <- false
	<-t.parked
}
