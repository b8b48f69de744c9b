package filter

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// TagKey is the tag key used to marshal a State to map[string]any.
const TagKey = "filter"

// use struct field name as key unless tagged
var jsoniterForFilter = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	TagKey:                 TagKey,
}.Froze()

// State is a point-in-time copy of a filter tree for presentation layers.
type State struct {
	Name        string
	Description string
	Kind        Kind `filter:",omitempty"`
	Active      bool
	Disabled    bool
	SubFilters  []*State `filter:",omitempty"`
}

// Snapshot copies the current state of f and its sub-filters. Nested
// cascades are not blocked, so take it after the cascade has settled.
func Snapshot(f Filter) *State {
	if lo.IsNil(f) {
		return nil
	}
	s := &State{
		Name:        f.Name(),
		Description: f.Description(),
		Active:      f.IsActive(),
		Disabled:    f.IsDisabled(),
	}
	if c, ok := f.(*Compound); ok {
		s.Kind = c.kind
		s.SubFilters = lo.Map(c.subFilters.Slice(), func(sub Filter, _ int) *State {
			return Snapshot(sub)
		})
	}
	return s
}

// ToMap converts a snapshot of f to a map[string]any.
func ToMap(f Filter) (map[string]any, error) {
	s := Snapshot(f)
	if s == nil {
		return nil, nil
	}
	data, err := jsoniterForFilter.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal filter state")
	}
	var filterMap map[string]any
	if err := jsoniterForFilter.Unmarshal(data, &filterMap); err != nil {
		return nil, errors.Wrap(err, "unmarshal filter state to map")
	}
	PruneMap(filterMap)
	return filterMap, nil
}

// PruneMap recursively removes nil values, empty strings, empty slices,
// and empty nested maps.
func PruneMap(m map[string]any) {
	for k, v := range m {
		if v == nil {
			delete(m, k)
			continue
		}

		if s, ok := v.(string); ok {
			if s == "" {
				delete(m, k)
			}
			continue
		}

		if nestedMap, ok := v.(map[string]any); ok {
			PruneMap(nestedMap)
			if len(nestedMap) == 0 {
				delete(m, k)
			}
			continue
		}

		if slice, ok := v.([]any); ok {
			for _, item := range slice {
				if nestedMap, ok := item.(map[string]any); ok {
					PruneMap(nestedMap)
				}
			}
			if len(slice) == 0 {
				delete(m, k)
			}
		}
	}
}
