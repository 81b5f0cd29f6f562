package grid

type EventKind string

const (
	EventCellChanged  EventKind = "cell_changed"
	EventAxisChanged  EventKind = "axis_changed"
	EventLabelChanged EventKind = "label_changed"
)

// Event announces a committed change. Key and Cell are set for EventCellChanged.
type Event struct {
	Kind EventKind
	Key  Key
	Cell Cell
}

// Subscription receives grid events until closed.
type Subscription struct {
	Events <-chan Event
	cancel func()
}

// Close stops delivery and closes Events.
func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriber struct {
	ch     chan Event
	closed bool
}

// Subscribe registers a buffered listener. Delivery never blocks writers: when
// the buffer is full the event is dropped, so listeners should treat every event
// as a cue to re-read Snapshot.
func (g *Grid) Subscribe() Subscription {
	sub := &subscriber{ch: make(chan Event, g.subscriberCapacity)}

	g.mu.Lock()
	g.subscribers[sub] = struct{}{}
	g.mu.Unlock()

	return Subscription{
		Events: sub.ch,
		cancel: func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if sub.closed {
				return
			}
			sub.closed = true
			delete(g.subscribers, sub)
			close(sub.ch)
		},
	}
}

// publish must be called with g.mu held for writing.
func (g *Grid) publish(evt Event) {
	for sub := range g.subscribers {
		select {
		case sub.ch <- evt:
		default:
		}
	}
}
