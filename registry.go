package greenflag

import (
	"cmp"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ThreadID identifies one logical thread. IDs are random UUIDs and are never
// reused within a process.
type ThreadID string

// Cancellable is the stop handle of a cooperative execution unit. Stop must
// be idempotent and must tolerate a unit that already finished.
type Cancellable interface {
	Stop()
}

// CancelFunc adapts a plain function to Cancellable.
type CancelFunc func()

// Stop calls f.
func (f CancelFunc) Stop() { f() }

type threadEntry struct {
	owner  string
	cancel Cancellable
	seq    uint64
}

// ThreadRegistry tracks every running logical thread and the actor that owns
// it. One registry is created per Runtime.
//
// All stop operations remove matching entries under the lock and invoke
// their cancel handles after releasing it, so a Stop callback may register
// new threads. A removed entry is never invoked a second time.
type ThreadRegistry struct {
	mu      sync.Mutex
	entries map[ThreadID]threadEntry
	seq     uint64
}

// NewThreadRegistry creates an empty registry.
func NewThreadRegistry() *ThreadRegistry {
	return &ThreadRegistry{entries: make(map[ThreadID]threadEntry)}
}

// Register records a running thread for owner and returns its fresh ID.
func (r *ThreadRegistry) Register(owner string, c Cancellable) ThreadID {
	id := ThreadID(uuid.NewString())
	r.mu.Lock()
	r.seq++
	r.entries[id] = threadEntry{owner: owner, cancel: c, seq: r.seq}
	r.mu.Unlock()
	return id
}

// Unregister removes id. Unknown IDs are ignored; a thread that completes
// naturally may race with an external stop.
func (r *ThreadRegistry) Unregister(id ThreadID) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// StopOne stops and removes id if it is registered.
func (r *ThreadRegistry) StopOne(id ThreadID) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	if ok && e.cancel != nil {
		e.cancel.Stop()
	}
}

// StopAllOfOwnerExcept stops every thread of owner other than except. An
// empty except stops all of the owner's threads.
func (r *ThreadRegistry) StopAllOfOwnerExcept(owner string, except ThreadID) {
	r.stopMatching(func(id ThreadID, e threadEntry) bool {
		return e.owner == owner && (except == "" || id != except)
	})
}

// StopAllExcept stops every thread other than except, regardless of owner.
func (r *ThreadRegistry) StopAllExcept(except ThreadID) {
	r.stopMatching(func(id ThreadID, _ threadEntry) bool {
		return except == "" || id != except
	})
}

// StopAll stops and removes every registered thread.
func (r *ThreadRegistry) StopAll() {
	r.stopMatching(func(ThreadID, threadEntry) bool { return true })
}

// stopMatching snapshots and removes matching entries, then stops them in
// registration order with the lock released. Threads registered by a Stop
// callback are not part of the snapshot.
func (r *ThreadRegistry) stopMatching(match func(ThreadID, threadEntry) bool) {
	r.mu.Lock()
	victims := make([]threadEntry, 0, len(r.entries))
	for id, e := range r.entries {
		if match(id, e) {
			victims = append(victims, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	slices.SortFunc(victims, func(a, b threadEntry) int { return cmp.Compare(a.seq, b.seq) })
	for _, e := range victims {
		if e.cancel != nil {
			e.cancel.Stop()
		}
	}
}

// Len returns the number of live threads.
func (r *ThreadRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Contains reports whether id is still registered.
func (r *ThreadRegistry) Contains(id ThreadID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Owner returns the owner of id.
func (r *ThreadRegistry) Owner(id ThreadID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e.owner, ok
}

// CountOwner returns how many live threads owner has.
func (r *ThreadRegistry) CountOwner(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.owner == owner {
			n++
		}
	}
	return n
}

// IDs returns a snapshot of the live thread IDs in registration order.
func (r *ThreadRegistry) IDs() []ThreadID {
	r.mu.Lock()
	type pair struct {
		id  ThreadID
		seq uint64
	}
	ps := make([]pair, 0, len(r.entries))
	for id, e := range r.entries {
		ps = append(ps, pair{id, e.seq})
	}
	r.mu.Unlock()

	slices.SortFunc(ps, func(a, b pair) int { return cmp.Compare(a.seq, b.seq) })
	ids := make([]ThreadID, len(ps))
	for i, p := range ps {
		ids[i] = p.id
	}
	return ids
}
