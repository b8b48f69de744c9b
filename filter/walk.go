package filter

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// SkipChildren can be returned by a WalkFunc to skip the sub-filters of the
// current filter.
var SkipChildren = errors.New("skip children")

// WalkInput provides information about the filter being visited
type WalkInput struct {
	KeyPath []string
	Filter  Filter
	Parent  *Compound
	Depth   int
}

// WalkFunc is called for every filter of a tree.
type WalkFunc func(input *WalkInput) error

// Walk visits f and its sub-filters depth first, parents before children,
// in sub-filter order.
func Walk(f Filter, fn WalkFunc) error {
	if lo.IsNil(f) {
		return nil
	}
	return walk(f, nil, nil, 1, fn)
}

func walk(f Filter, parentPath []string, parent *Compound, depth int, fn WalkFunc) error {
	currentPath := appendPath(parentPath, f.Name())

	err := fn(&WalkInput{
		KeyPath: currentPath,
		Filter:  f,
		Parent:  parent,
		Depth:   depth,
	})
	if errors.Is(err, SkipChildren) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "walk %s", strings.Join(currentPath, "."))
	}

	c, ok := f.(*Compound)
	if !ok {
		return nil
	}
	for _, sub := range c.subFilters.Slice() {
		if err := walk(sub, currentPath, c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

func appendPath(parent []string, key string) []string {
	result := make([]string, len(parent), len(parent)+1)
	copy(result, parent)
	return append(result, key)
}

// Leaves returns every non-compound filter below f, in walk order.
func Leaves(f Filter) []Filter {
	var leaves []Filter
	_ = Walk(f, func(input *WalkInput) error {
		if _, ok := input.Filter.(*Compound); !ok {
			leaves = append(leaves, input.Filter)
		}
		return nil
	})
	return leaves
}

// ActiveLeaves returns the leaves that currently contribute to a selection:
// active and not disabled. Read it only after a cascade has settled.
func ActiveLeaves(f Filter) []Filter {
	return lo.Filter(Leaves(f), func(leaf Filter, _ int) bool {
		return leaf.IsActive() && !leaf.IsDisabled()
	})
}
