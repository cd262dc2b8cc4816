package worldgen

import "github.com/vovakirdan/scrollgen/internal/content"

// SpawnEventType discriminates the kinds of spawn instruction the manager
// produces. It is a closed set; the consuming layer switches over it to
// decide what to instantiate.
type SpawnEventType int

const (
	EventFrameStart SpawnEventType = iota
	EventObstacle
	EventEnemy
	EventFrameEnd
	EventLevelEnd
)

// String returns a human-readable name for the event type.
func (t SpawnEventType) String() string {
	switch t {
	case EventFrameStart:
		return "frame_start"
	case EventObstacle:
		return "obstacle"
	case EventEnemy:
		return "enemy"
	case EventFrameEnd:
		return "frame_end"
	case EventLevelEnd:
		return "level_end"
	default:
		return "unknown"
	}
}

// SpawnEvent is one generated instruction: what to place and where. The
// relevant obstacle or enemy fields are denormalized into the event so the
// consumer never has to reach back into the catalog. Events are values,
// produced into a FIFO and discarded once consumed.
type SpawnEvent struct {
	Type        SpawnEventType
	WGFID       string
	FrameNumber int
	WorldX      float64
	WorldY      float64

	// Obstacle payload (Type == EventObstacle); Index is also set for
	// enemy events.
	Index        int
	ObstacleType content.ObstacleType
	Sprite       string
	Size         content.Size2
	Collision    content.CollisionData
	Health       int

	// Enemy payload (Type == EventEnemy).
	EnemyTag   string
	SpawnDelay float64
}

// SpawnEventCallback receives events synchronously as they are generated,
// in queue order.
type SpawnEventCallback func(SpawnEvent)

// Subscription ties a callback's lifetime to an explicit handle. Cancel
// releases the callback; it is safe to call more than once. Holders must
// cancel before discarding the callback's receiver.
type Subscription struct {
	m  *Manager
	id int
}

// Cancel removes the callback from the manager.
func (s *Subscription) Cancel() {
	if s.m == nil {
		return
	}
	for i, sub := range s.m.subscribers {
		if sub.id == s.id {
			s.m.subscribers = append(s.m.subscribers[:i], s.m.subscribers[i+1:]...)
			break
		}
	}
	s.m = nil
}

type subscriber struct {
	id int
	cb SpawnEventCallback
}

// Subscribe registers a callback that is invoked for every generated event,
// in generation order, in addition to the event being queued.
func (m *Manager) Subscribe(cb SpawnEventCallback) *Subscription {
	m.nextSubID++
	m.subscribers = append(m.subscribers, subscriber{id: m.nextSubID, cb: cb})
	return &Subscription{m: m, id: m.nextSubID}
}

// emit queues an event and delivers it to subscribers.
func (m *Manager) emit(ev SpawnEvent) {
	m.queue = append(m.queue, ev)
	for _, sub := range m.subscribers {
		sub.cb(ev)
	}
}

// PeekNextEvent returns the next pending event without consuming it.
func (m *Manager) PeekNextEvent() (SpawnEvent, bool) {
	if len(m.queue) == 0 {
		return SpawnEvent{}, false
	}
	return m.queue[0], true
}

// PopNextEvent returns and removes the next pending event.
func (m *Manager) PopNextEvent() (SpawnEvent, bool) {
	if len(m.queue) == 0 {
		return SpawnEvent{}, false
	}
	ev := m.queue[0]
	m.queue = m.queue[1:]
	return ev, true
}

// HasPendingEvents reports whether events are waiting to be consumed.
func (m *Manager) HasPendingEvents() bool {
	return len(m.queue) > 0
}

// PendingEventCount returns the number of queued events.
func (m *Manager) PendingEventCount() int {
	return len(m.queue)
}
