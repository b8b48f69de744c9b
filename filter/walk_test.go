package filter

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) (root *Compound, inner *Compound) {
	t.Helper()
	inner = mustUnion(t, "Files", NewLeaf("Images", ""), NewLeaf("Documents", "", WithActive(true)))
	root = mustUnion(t, "Types", inner, NewLeaf("Web", ""))
	return root, inner
}

func TestWalk(t *testing.T) {
	root, inner := sampleTree(t)

	var visited []string
	var parents []string
	err := Walk(root, func(input *WalkInput) error {
		visited = append(visited, strings.Join(input.KeyPath, ".")+"@"+string(rune('0'+input.Depth)))
		if input.Parent != nil {
			parents = append(parents, input.Parent.Name())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Types@1",
		"Types.Files@2",
		"Types.Files.Images@3",
		"Types.Files.Documents@3",
		"Types.Web@2",
	}, visited)
	assert.Equal(t, []string{"Types", "Files", "Files", "Types"}, parents)

	visited = nil
	err = Walk(root, func(input *WalkInput) error {
		visited = append(visited, input.Filter.Name())
		if input.Filter == inner {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Types", "Files", "Web"}, visited)
}

func TestWalkError(t *testing.T) {
	root, _ := sampleTree(t)
	boom := errors.New("boom")

	err := Walk(root, func(input *WalkInput) error {
		if input.Filter.Name() == "Documents" {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "walk Types.Files.Documents")

	require.NoError(t, Walk(nil, func(*WalkInput) error { return boom }))
}

func TestLeaves(t *testing.T) {
	root, inner := sampleTree(t)

	assert.Equal(t, []string{"Images", "Documents", "Web"}, names(Leaves(root)))
	assert.Equal(t, []string{"Documents"}, names(ActiveLeaves(root)))

	inner.SetActive(false)
	require.True(t, inner.IsActive(), "Documents keeps Files active")

	root.SetDisabled(true)
	assert.Empty(t, ActiveLeaves(root))
	assert.Equal(t, []string{"Web"}, names(Leaves(mustUnion(t, "Solo", NewLeaf("Web", "")))))
}
