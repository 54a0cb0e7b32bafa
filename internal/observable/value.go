// Package observable holds a value that publishes every replacement to its
// subscribers. Readers never see a partially written value.
package observable

import (
	"sync"
	"sync/atomic"
)

type Value[T any] struct {
	current atomic.Pointer[T]

	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(T)
}

func New[T any](initial T) *Value[T] {
	v := &Value[T]{subs: make(map[uint64]func(T))}
	v.current.Store(&initial)
	return v
}

// Get returns the last published value.
func (v *Value[T]) Get() T {
	return *v.current.Load()
}

// Set publishes next and calls every subscriber synchronously, in no
// particular order, before returning.
func (v *Value[T]) Set(next T) {
	v.current.Store(&next)

	v.mu.Lock()
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn and returns a func that removes it.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}
