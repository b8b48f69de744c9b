package observable

import (
	"sync"
)

// Listener is called with the previous and the new value after a change.
type Listener[T any] func(oldValue, newValue T)

// Registration detaches a listener. Remove is idempotent.
type Registration interface {
	Remove()
}

// RegistrationFunc adapts a function to Registration.
type RegistrationFunc func()

func (f RegistrationFunc) Remove() { f() }

type entry[T any] struct {
	fn      Listener[T]
	removed bool
}

// Property is a single value cell that notifies its listeners synchronously
// whenever the stored value actually changes. Writing the value it already
// holds is a no-op, which is what lets listener cycles settle.
//
// Listeners run on the calling goroutine without any lock held, so they may
// call Set on this or any other property.
type Property[T comparable] struct {
	mu        sync.RWMutex
	value     T
	listeners []*entry[T]
}

func NewProperty[T comparable](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

func (p *Property[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set stores v and notifies listeners in registration order, unless v equals
// the current value.
func (p *Property[T]) Set(v T) {
	p.mu.Lock()
	if p.value == v {
		p.mu.Unlock()
		return
	}
	old := p.value
	p.value = v
	listeners := make([]*entry[T], len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, e := range listeners {
		if p.isRemoved(e) {
			continue
		}
		e.fn(old, v)
	}
}

func (p *Property[T]) isRemoved(e *entry[T]) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return e.removed
}

// AddListener registers fn. Listeners stay registered until the returned
// Registration is removed.
func (p *Property[T]) AddListener(fn Listener[T]) Registration {
	if fn == nil {
		panic("observable: nil listener")
	}
	e := &entry[T]{fn: fn}

	p.mu.Lock()
	p.listeners = append(p.listeners, e)
	p.mu.Unlock()

	var once sync.Once
	return RegistrationFunc(func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			e.removed = true
			for i, l := range p.listeners {
				if l == e {
					p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
					break
				}
			}
		})
	})
}

// ListenerCount reports how many listeners are currently registered.
func (p *Property[T]) ListenerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.listeners)
}
