// Package ecs provides ECS adapters for greenflag.
package ecs

import (
	"github.com/phanxgames/greenflag"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// RuntimeEventType is the Donburi event type for greenflag runtime events.
// Subscribe to this in your ECS systems to receive thread, trigger, and
// clone events.
var RuntimeEventType = events.NewEventType[greenflag.RuntimeEvent]()

// ThreadInfo describes one live script thread.
type ThreadInfo struct {
	ID      greenflag.ThreadID
	OwnerID string
	Actor   string
}

// ThreadComponent is attached to one entity per live script thread.
var ThreadComponent = donburi.NewComponentType[ThreadInfo]()

var threadQuery = donburi.NewQuery(filter.Contains(ThreadComponent))

// DonburiStore mirrors a runtime into a Donburi world. Every RuntimeEvent is
// published to RuntimeEventType, and each live thread is an entity carrying
// ThreadComponent.
type DonburiStore struct {
	world   donburi.World
	threads map[greenflag.ThreadID]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, threads: make(map[greenflag.ThreadID]donburi.Entity)}
}

// EmitEvent publishes event and keeps the thread entities in step.
func (s *DonburiStore) EmitEvent(event greenflag.RuntimeEvent) {
	switch event.Kind {
	case greenflag.EventThreadStarted:
		e := s.world.Create(ThreadComponent)
		ThreadComponent.SetValue(s.world.Entry(e), ThreadInfo{
			ID:      event.ThreadID,
			OwnerID: event.OwnerID,
			Actor:   event.Actor,
		})
		s.threads[event.ThreadID] = e
	case greenflag.EventThreadCompleted, greenflag.EventThreadStopped:
		if e, ok := s.threads[event.ThreadID]; ok {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
			delete(s.threads, event.ThreadID)
		}
	}
	RuntimeEventType.Publish(s.world, event)
}

// LiveThreads returns the number of thread entities in the world.
func (s *DonburiStore) LiveThreads() int {
	return threadQuery.Count(s.world)
}

// ThreadsOf returns the live threads of ownerID.
func (s *DonburiStore) ThreadsOf(ownerID string) []ThreadInfo {
	var out []ThreadInfo
	threadQuery.Each(s.world, func(entry *donburi.Entry) {
		if info := ThreadComponent.Get(entry); info.OwnerID == ownerID {
			out = append(out, *info)
		}
	})
	return out
}

var _ greenflag.EntityStore = (*DonburiStore)(nil)
