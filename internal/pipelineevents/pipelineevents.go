// Package pipelineevents is a pub/sub bus internal/transform publishes stage
// progress to (spec.md §9 SUPPLEMENTED FEATURES: deployments want visibility
// into which of the pipeline's two suspension points a request is
// currently blocked on). It carries page-transform stage progress only, so
// a deployment embedding this core alongside another event-driven surface
// can observe it without subscribing to everything.
package pipelineevents

import (
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Stage identifies one step of the pipeline described in spec.md §4.8.
type Stage string

const (
	StageAnnotate   Stage = "annotate"
	StageCompose    Stage = "compose"
	StageGateway    Stage = "gateway"
	StageParse      Stage = "parse"
	StageMutate     Stage = "mutate"
	StageRepair     Stage = "repair"
	StageStrip      Stage = "strip"
	StageDedup      Stage = "dedup"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

// Event reports that page has entered stage, with an optional detail
// string (a failure reason, a change count, etc.).
type Event struct {
	Page   string `json:"page"`
	Stage  Stage  `json:"stage"`
	Detail string `json:"detail,omitempty"`
}

// Subscriber receives published events.
type Subscriber func(Event)

type subscriberEntry struct {
	id uint64
	fn Subscriber
}

// Bus is an in-process pub/sub event bus. Publish calls subscribers
// directly; the watermill gochannel it holds is created by New and closed
// by Close but carries no events. There is no package-level Bus: callers
// construct one with New.
type Bus struct {
	mu     sync.RWMutex
	pubsub *gochannel.GoChannel
	subs   []subscriberEntry
	nextID uint64
	closed bool
}

// New creates a Bus.
func New() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NopLogger{}),
	}
}

// Subscribe registers fn for every published event and returns an
// unsubscribe function.
func (b *Bus) Subscribe(fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := atomic.AddUint64(&b.nextID, 1)
	b.subs = append(b.subs, subscriberEntry{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, e := range b.subs {
			if e.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish notifies every subscriber synchronously, in registration order.
// Stage events are ordered and low-frequency (at most 9 per request), so
// there is no async fan-out.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]Subscriber, len(b.subs))
	for i, e := range b.subs {
		subs[i] = e.fn
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(evt)
	}
}

// Close shuts the bus down; further Publish/Subscribe calls are no-ops.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.subs = nil
	b.mu.Unlock()

	return b.pubsub.Close()
}
