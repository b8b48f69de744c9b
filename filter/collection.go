package filter

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/filtertree/observable"
)

var (
	// ErrNilFilter is returned when an absent filter is added to a collection.
	ErrNilFilter = errors.New("filter must not be nil")

	ErrIndexOutOfRange = errors.New("index out of range")
)

// Change describes one structural modification of a Collection.
type Change struct {
	Added   []Filter
	Removed []Filter
}

// ChangeListener is notified after a structural modification.
type ChangeListener func(change Change)

// Collection is an ordered sequence of filters that is safe for concurrent
// use and reports insertions and removals to its listeners.
//
// The lock covers a single structural operation only; listeners run after it
// is released and may modify the collection again.
type Collection struct {
	mu        sync.RWMutex
	filters   []Filter
	listeners []*changeEntry
}

type changeEntry struct {
	fn ChangeListener
}

// NewCollection copies filters into a new collection.
func NewCollection(filters ...Filter) (*Collection, error) {
	if err := checkFilters(filters); err != nil {
		return nil, err
	}
	return &Collection{filters: append([]Filter(nil), filters...)}, nil
}

func checkFilters(filters []Filter) error {
	for i, f := range filters {
		if lo.IsNil(f) {
			return errors.Wrapf(ErrNilFilter, "filter at position %d", i)
		}
	}
	return nil
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filters)
}

func (c *Collection) At(i int) (Filter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.filters) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, len(c.filters))
	}
	return c.filters[i], nil
}

// Slice returns a copy of the current sequence.
func (c *Collection) Slice() []Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Filter(nil), c.filters...)
}

// Index returns the position of the first occurrence of f, or -1.
func (c *Collection) Index(f Filter) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, idx, ok := lo.FindIndexOf(c.filters, func(item Filter) bool {
		return item == f
	})
	if !ok {
		return -1
	}
	return idx
}

func (c *Collection) Append(filters ...Filter) error {
	if err := checkFilters(filters); err != nil {
		return err
	}
	if len(filters) == 0 {
		return nil
	}

	c.mu.Lock()
	c.filters = append(c.filters, filters...)
	c.mu.Unlock()

	c.notify(Change{Added: append([]Filter(nil), filters...)})
	return nil
}

// Insert places filters before position i. i may equal Len.
func (c *Collection) Insert(i int, filters ...Filter) error {
	if err := checkFilters(filters); err != nil {
		return err
	}

	c.mu.Lock()
	if i < 0 || i > len(c.filters) {
		n := len(c.filters)
		c.mu.Unlock()
		return errors.Wrapf(ErrIndexOutOfRange, "insert at %d, length %d", i, n)
	}
	if len(filters) == 0 {
		c.mu.Unlock()
		return nil
	}
	next := make([]Filter, 0, len(c.filters)+len(filters))
	next = append(next, c.filters[:i]...)
	next = append(next, filters...)
	next = append(next, c.filters[i:]...)
	c.filters = next
	c.mu.Unlock()

	c.notify(Change{Added: append([]Filter(nil), filters...)})
	return nil
}

// Remove drops the first occurrence of f and reports whether it was present.
func (c *Collection) Remove(f Filter) bool {
	c.mu.Lock()
	_, idx, ok := lo.FindIndexOf(c.filters, func(item Filter) bool {
		return item == f
	})
	if !ok {
		c.mu.Unlock()
		return false
	}
	removed := c.removeLocked(idx)
	c.mu.Unlock()

	c.notify(Change{Removed: []Filter{removed}})
	return true
}

func (c *Collection) RemoveAt(i int) (Filter, error) {
	c.mu.Lock()
	if i < 0 || i >= len(c.filters) {
		n := len(c.filters)
		c.mu.Unlock()
		return nil, errors.Wrapf(ErrIndexOutOfRange, "remove at %d, length %d", i, n)
	}
	removed := c.removeLocked(i)
	c.mu.Unlock()

	c.notify(Change{Removed: []Filter{removed}})
	return removed, nil
}

func (c *Collection) removeLocked(i int) Filter {
	removed := c.filters[i]
	c.filters = append(c.filters[:i:i], c.filters[i+1:]...)
	return removed
}

// AddListener registers fn for structural changes.
func (c *Collection) AddListener(fn ChangeListener) observable.Registration {
	if fn == nil {
		panic("filter: nil change listener")
	}
	e := &changeEntry{fn: fn}

	c.mu.Lock()
	c.listeners = append(c.listeners, e)
	c.mu.Unlock()

	return observable.RegistrationFunc(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.listeners = lo.Without(c.listeners, e)
	})
}

func (c *Collection) notify(change Change) {
	c.mu.RLock()
	listeners := append([]*changeEntry(nil), c.listeners...)
	c.mu.RUnlock()

	for _, e := range listeners {
		e.fn(change)
	}
}
