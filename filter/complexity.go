package filter

import (
	"github.com/pkg/errors"
)

// ComplexityLimits defines limits for the shape of a filter tree.
// A value of 0 means no limit for that metric.
type ComplexityLimits struct {
	MaxDepth       int // Maximum nesting depth, the root counts as 1
	MaxTotalLeaves int // Maximum total number of leaf filters
	MaxCompounds   int // Maximum number of compound filters
	MaxBranches    int // Maximum sub-filters in a single compound
}

// ComplexityResult contains the calculated complexity metrics of a filter tree.
type ComplexityResult struct {
	Depth       int // Deepest nesting level reached
	TotalLeaves int // Total number of leaf filters
	Compounds   int // Total number of compound filters
	Branches    int // Maximum sub-filters found in any compound
}

// Predefined complexity limits
var (
	// DefaultLimits provides reasonable defaults for most use cases.
	DefaultLimits = &ComplexityLimits{
		MaxDepth:       4,
		MaxTotalLeaves: 64,
		MaxCompounds:   16,
		MaxBranches:    32,
	}

	// StrictLimits provides tighter limits for trees built from untrusted input.
	StrictLimits = &ComplexityLimits{
		MaxDepth:       2,
		MaxTotalLeaves: 16,
		MaxCompounds:   4,
		MaxBranches:    8,
	}

	// RelaxedLimits provides looser limits for trusted/internal use.
	RelaxedLimits = &ComplexityLimits{
		MaxDepth:       8,
		MaxTotalLeaves: 512,
		MaxCompounds:   128,
		MaxBranches:    256,
	}
)

// CheckComplexity validates that a filter tree doesn't exceed the specified limits.
// Returns an error describing which limit was exceeded, or nil if within limits.
// If limits is nil, no validation is performed.
func CheckComplexity(f Filter, limits *ComplexityLimits) error {
	if limits == nil {
		return nil
	}

	result := CalculateComplexity(f)

	if limits.MaxDepth > 0 && result.Depth > limits.MaxDepth {
		return errors.Errorf("filter depth %d exceeds limit %d", result.Depth, limits.MaxDepth)
	}
	if limits.MaxTotalLeaves > 0 && result.TotalLeaves > limits.MaxTotalLeaves {
		return errors.Errorf("filter leaf count %d exceeds limit %d", result.TotalLeaves, limits.MaxTotalLeaves)
	}
	if limits.MaxCompounds > 0 && result.Compounds > limits.MaxCompounds {
		return errors.Errorf("filter compound count %d exceeds limit %d", result.Compounds, limits.MaxCompounds)
	}
	if limits.MaxBranches > 0 && result.Branches > limits.MaxBranches {
		return errors.Errorf("filter branches %d exceeds limit %d", result.Branches, limits.MaxBranches)
	}

	return nil
}

// CalculateComplexity analyzes a filter tree and returns its complexity metrics.
func CalculateComplexity(f Filter) *ComplexityResult {
	result := &ComplexityResult{}
	_ = Walk(f, func(input *WalkInput) error {
		if input.Depth > result.Depth {
			result.Depth = input.Depth
		}
		c, ok := input.Filter.(*Compound)
		if !ok {
			result.TotalLeaves++
			return nil
		}
		result.Compounds++
		if n := c.subFilters.Len(); n > result.Branches {
			result.Branches = n
		}
		return nil
	})
	return result
}
