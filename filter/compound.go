package filter

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/filtertree/observable"
)

// ErrCycle is returned when adding a filter would make a tree contain itself.
var ErrCycle = errors.New("filter would contain itself")

// Kind distinguishes the concrete compound variants.
type Kind string

const (
	KindUnion        Kind = "Union"
	KindIntersection Kind = "Intersection"
)

// Compound is a filter with an ordered collection of sub-filters. If the
// compound is not active none of its sub-filters apply either; the kind
// decides how consumers combine them.
//
// Listeners keep the compound and its sub-filters consistent:
//   - a sub-filter changing active state sets the compound active if any
//     sub-filter is active
//   - the compound becoming active while no sub-filter is active activates
//     all of them
//   - the compound becoming inactive while all sub-filters are active
//     deactivates all of them
//   - sub-filters are disabled while the compound is inactive or disabled
//
// An explicit SetActive on a non-empty compound does not stick when it
// contradicts the sub-filters: once the cascade settles the compound is
// recomputed from them.
type Compound struct {
	base

	kind       Kind
	subFilters *Collection
	logger     *slog.Logger

	mu    sync.Mutex
	wired map[Filter][]observable.Registration
}

var _ Filter = (*Compound)(nil)

func NewUnion(name string, subFilters []Filter, opts ...Option) (*Compound, error) {
	return newCompound(KindUnion, name, subFilters, opts...)
}

func NewIntersection(name string, subFilters []Filter, opts ...Option) (*Compound, error) {
	return newCompound(KindIntersection, name, subFilters, opts...)
}

func newCompound(kind Kind, name string, subFilters []Filter, opts ...Option) (*Compound, error) {
	o := newOptions(opts)

	collection, err := NewCollection(subFilters...)
	if err != nil {
		return nil, errors.Wrapf(err, "new %s filter %q", kind, name)
	}
	if name == "" {
		name = string(kind)
	}

	c := &Compound{
		base:       newBase(name, o.Description, anyActive(subFilters), false),
		kind:       kind,
		subFilters: collection,
		logger:     o.Logger.With("filter", name, "kind", string(kind)),
		wired:      make(map[Filter][]observable.Registration),
	}

	c.subFilters.AddListener(c.onSubFiltersChanged)
	for _, f := range subFilters {
		c.wire(f)
	}
	c.disabled.AddListener(c.onDisabledChanged)
	c.active.AddListener(c.onActiveChanged)

	return c, nil
}

func (c *Compound) Kind() Kind { return c.kind }

// SubFilters returns the live collection of sub-filters. Appending to or
// removing from it rewires the compound.
func (c *Compound) SubFilters() *Collection { return c.subFilters }

// Append adds filters to the end of the sub-filters, refusing any filter
// whose subtree already contains this compound.
func (c *Compound) Append(filters ...Filter) error {
	for _, f := range filters {
		if !lo.IsNil(f) && contains(f, c) {
			return errors.Wrapf(ErrCycle, "append %q to %q", f.Name(), c.name)
		}
	}
	return c.subFilters.Append(filters...)
}

func (c *Compound) Equal(other Filter) bool {
	o, ok := other.(*Compound)
	if !ok || o == nil || o.kind != c.kind {
		return false
	}
	if c == o {
		return true
	}
	return c.sameState(&o.base) && equalSubFilters(c, o)
}

// equalSubFilters compares positionally; the same filters in another order
// are not equal.
func equalSubFilters(one, other *Compound) bool {
	a, b := one.subFilters.Slice(), other.subFilters.Slice()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (c *Compound) wire(f Filter) {
	reg := f.ActiveProperty().AddListener(func(_, _ bool) {
		c.recompute()
	})

	c.mu.Lock()
	c.wired[f] = append(c.wired[f], reg)
	c.mu.Unlock()
}

func (c *Compound) unwire(f Filter) {
	c.mu.Lock()
	regs := c.wired[f]
	if len(regs) == 0 {
		c.mu.Unlock()
		return
	}
	reg := regs[len(regs)-1]
	if len(regs) == 1 {
		delete(c.wired, f)
	} else {
		c.wired[f] = regs[:len(regs)-1]
	}
	c.mu.Unlock()

	reg.Remove()
}

func (c *Compound) onSubFiltersChanged(change Change) {
	for _, f := range change.Removed {
		c.unwire(f)
	}
	for _, f := range change.Added {
		c.wire(f)
	}
	c.recompute()
}

// recompute sets the compound active if any sub-filter is active. An empty
// compound keeps whatever value it holds.
func (c *Compound) recompute() {
	subFilters := c.subFilters.Slice()
	if len(subFilters) == 0 {
		return
	}
	c.SetActive(anyActive(subFilters))
}

func (c *Compound) onDisabledChanged(_, disabled bool) {
	subFilters := c.subFilters.Slice()
	if disabled {
		c.logger.Debug("disabling sub-filters", "count", len(subFilters))
		for _, f := range subFilters {
			f.SetDisabled(true)
		}
		return
	}
	inactive := !c.IsActive()
	for _, f := range subFilters {
		f.SetDisabled(inactive)
	}
}

func (c *Compound) onActiveChanged(_, active bool) {
	subFilters := c.subFilters.Slice()
	if active {
		if !anyActive(subFilters) {
			c.logger.Debug("activating all sub-filters", "count", len(subFilters))
			for _, f := range subFilters {
				f.SetActive(true)
			}
		}
	} else if lo.EveryBy(subFilters, Filter.IsActive) {
		c.logger.Debug("deactivating all sub-filters", "count", len(subFilters))
		for _, f := range subFilters {
			f.SetActive(false)
		}
	}

	c.recompute()

	inactive := !c.IsActive()
	for _, f := range subFilters {
		f.SetDisabled(inactive)
	}
}

func anyActive(filters []Filter) bool {
	return lo.SomeBy(filters, Filter.IsActive)
}

// contains reports whether target is f or appears anywhere below f.
func contains(f Filter, target Filter) bool {
	if f == target {
		return true
	}
	c, ok := f.(*Compound)
	if !ok {
		return false
	}
	return lo.SomeBy(c.subFilters.Slice(), func(sub Filter) bool {
		return contains(sub, target)
	})
}
