// Package input fans browser key events out to subscribers.
package input

import (
	"sort"
	"sync"
)

// Dispatcher delivers key symbols to its subscribers in subscription order.
// It satisfies camera.KeySource.
type Dispatcher struct {
	mu   sync.Mutex
	next int
	subs map[int]func(key string)
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[int]func(string))}
}

// Subscribe registers fn. The returned function removes it and may be
// called any number of times.
func (d *Dispatcher) Subscribe(fn func(key string)) (unsubscribe func()) {
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.subs, id)
		d.mu.Unlock()
	}
}

// Dispatch calls every subscriber with key.
func (d *Dispatcher) Dispatch(key string) {
	d.mu.Lock()
	ids := make([]int, 0, len(d.subs))
	for id := range d.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, d.subs[id])
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

// Len returns the number of subscribers.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}
