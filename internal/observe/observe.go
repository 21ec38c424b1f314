// Package observe provides the two notification primitives the sync core
// publishes through: Value, a current value with change subscriptions, and
// Feed, a fan-out of discrete events.
//
// Subscribers receive on buffered channels and are never allowed to block a
// publisher.
package observe

import "sync"

// Value holds the latest T and hands it to subscribers. A slow subscriber
// only ever sees the most recent value; intermediate ones are dropped.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	subs    map[int]chan T
	nextID  int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial, subs: make(map[int]chan T)}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores x and notifies every subscriber.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = x
	for _, ch := range v.subs {
		replaceLatest(ch, x)
	}
}

// Subscribe returns a channel that first yields the current value and then
// every later one. cancel closes the channel; it is safe to call twice.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan T, 1)
	ch <- v.current

	id := v.nextID
	v.nextID++
	v.subs[id] = ch

	return ch, v.unsubscribe(id)
}

func (v *Value[T]) unsubscribe(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if ch, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(ch)
			}
		})
	}
}

// replaceLatest puts x into a one-slot channel, evicting an unread value.
// Callers hold the publisher lock, so nothing else sends on ch meanwhile.
func replaceLatest[T any](ch chan T, x T) {
	select {
	case ch <- x:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- x
}

// DefaultFeedBuffer is the per-subscriber buffer of a Feed.
const DefaultFeedBuffer = 16

// Feed delivers each published event to every current subscriber. When a
// subscriber's buffer is full the event is dropped for that subscriber
// only, and counted.
type Feed[T any] struct {
	mu      sync.Mutex
	buffer  int
	subs    map[int]chan T
	nextID  int
	dropped int
}

// NewFeed returns a Feed whose subscribers buffer up to buffer events.
// buffer <= 0 means DefaultFeedBuffer.
func NewFeed[T any](buffer int) *Feed[T] {
	if buffer <= 0 {
		buffer = DefaultFeedBuffer
	}
	return &Feed[T]{buffer: buffer, subs: make(map[int]chan T)}
}

// Publish sends x to all subscribers and returns how many received it.
func (f *Feed[T]) Publish(x T) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	delivered := 0
	for _, ch := range f.subs {
		select {
		case ch <- x:
			delivered++
		default:
			f.dropped++
		}
	}
	return delivered
}

// Subscribe registers a new subscriber. Events published before the call
// are not replayed.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan T, f.buffer)
	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (f *Feed[T]) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Dropped returns how many deliveries were skipped on full buffers.
func (f *Feed[T]) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}
