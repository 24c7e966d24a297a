package controller

import (
	"sync"
	"time"

	"github.com/Conceptual-Machines/wave-divider/internal/render"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
	"github.com/google/uuid"
)

// EventKind says what changed
type EventKind string

const (
	EventParams       EventKind = "params"
	EventPreset       EventKind = "preset"
	EventRender       EventKind = "render"
	EventRenderFailed EventKind = "render_failed"
)

// Event is published to subscribers whenever the session changes
type Event struct {
	ID      string         `json:"id"`
	Kind    EventKind      `json:"kind"`
	At      time.Time      `json:"at"`
	State   wave.State     `json:"state"`
	Surface render.Surface `json:"surface"`
	Error   string         `json:"error,omitempty"`
}

func newEvent(kind EventKind, state wave.State) Event {
	return Event{
		ID:    uuid.NewString(),
		Kind:  kind,
		At:    time.Now().UTC(),
		State: state,
	}
}

const subscriberBuffer = 16

type broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	closed bool
}

func newBroker() *broker {
	return &broker{subs: make(map[int]chan Event)}
}

func (b *broker) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

func (b *broker) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	b.closed = true
}
