package greenflag

// Receiver reacts to a published message. It returns the ID of the thread
// it started, or "" when it started none.
type Receiver func(msg string) ThreadID

type receiverEntry struct {
	id uint32
	fn Receiver
}

// MessageBus routes broadcast messages to their receivers. Message names
// match exactly. Like every runtime structure it is used only from the
// scheduling goroutine.
type MessageBus struct {
	receivers map[string][]receiverEntry
	nextID    uint32
}

// NewMessageBus creates an empty bus.
func NewMessageBus() *MessageBus {
	return &MessageBus{receivers: make(map[string][]receiverEntry)}
}

// Subscription removes a receiver from its bus.
type Subscription struct {
	id  uint32
	msg string
	bus *MessageBus
}

// Cancel unsubscribes the receiver. Cancelling twice is harmless.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	list := s.bus.receivers[s.msg]
	for i, r := range list {
		if r.id == s.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = receiverEntry{}
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(s.bus.receivers, s.msg)
	} else {
		s.bus.receivers[s.msg] = list
	}
}

// Subscribe registers fn for msg.
func (b *MessageBus) Subscribe(msg string, fn Receiver) Subscription {
	b.nextID++
	b.receivers[msg] = append(b.receivers[msg], receiverEntry{id: b.nextID, fn: fn})
	return Subscription{id: b.nextID, msg: msg, bus: b}
}

// Publish calls every receiver of msg in subscription order and returns the
// threads they started. Receivers added or removed during Publish do not
// affect this delivery.
func (b *MessageBus) Publish(msg string) []ThreadID {
	list := b.receivers[msg]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]receiverEntry, len(list))
	copy(snapshot, list)

	var started []ThreadID
	for _, r := range snapshot {
		if id := r.fn(msg); id != "" {
			started = append(started, id)
		}
	}
	return started
}

// Receivers returns how many receivers msg has.
func (b *MessageBus) Receivers(msg string) int {
	return len(b.receivers[msg])
}
