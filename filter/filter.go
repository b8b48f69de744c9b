package filter

import (
	"github.com/theplant/filtertree/observable"
)

// Filter is a toggleable node of a filter tree.
//
// Active reports whether the filter contributes to the selection it gates.
// Disabled reports whether the filter is currently eligible to be toggled;
// a disabled filter keeps its active value but consumers should treat it as inert.
type Filter interface {
	Name() string
	Description() string

	IsActive() bool
	SetActive(active bool)
	ActiveProperty() *observable.Property[bool]

	IsDisabled() bool
	SetDisabled(disabled bool)
	DisabledProperty() *observable.Property[bool]

	// Equal reports structural equality with other.
	Equal(other Filter) bool
}

type base struct {
	name        string
	description string
	active      *observable.Property[bool]
	disabled    *observable.Property[bool]
}

func newBase(name, description string, active, disabled bool) base {
	return base{
		name:        name,
		description: description,
		active:      observable.NewProperty(active),
		disabled:    observable.NewProperty(disabled),
	}
}

func (b *base) Name() string        { return b.name }
func (b *base) Description() string { return b.description }

func (b *base) IsActive() bool                             { return b.active.Get() }
func (b *base) SetActive(active bool)                      { b.active.Set(active) }
func (b *base) ActiveProperty() *observable.Property[bool] { return b.active }

func (b *base) IsDisabled() bool                             { return b.disabled.Get() }
func (b *base) SetDisabled(disabled bool)                    { b.disabled.Set(disabled) }
func (b *base) DisabledProperty() *observable.Property[bool] { return b.disabled }

func (b *base) sameState(o *base) bool {
	return b.IsActive() == o.IsActive() && b.IsDisabled() == o.IsDisabled()
}

// Leaf is a passive filter without children.
type Leaf struct {
	base
}

type leafOptions struct {
	active   bool
	disabled bool
}

// LeafOption configures a Leaf at construction.
type LeafOption func(*leafOptions)

// WithActive sets the initial active value of a leaf.
func WithActive(active bool) LeafOption {
	return func(o *leafOptions) {
		o.active = active
	}
}

// WithDisabled sets the initial disabled value of a leaf.
func WithDisabled(disabled bool) LeafOption {
	return func(o *leafOptions) {
		o.disabled = disabled
	}
}

func NewLeaf(name, description string, opts ...LeafOption) *Leaf {
	o := &leafOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return &Leaf{base: newBase(name, description, o.active, o.disabled)}
}

func (l *Leaf) Equal(other Filter) bool {
	o, ok := other.(*Leaf)
	if !ok || o == nil {
		return false
	}
	if l == o {
		return true
	}
	return l.name == o.name &&
		l.description == o.description &&
		l.sameState(&o.base)
}
