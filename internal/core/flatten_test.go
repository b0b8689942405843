package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
	"license-audit/tests/testutil"
)

func TestFlattenTreeDiamond(t *testing.T) {
	shared := testutil.Node("shared", "1.0.0", "MIT")
	root := testutil.Node("app", "0.1.0", "",
		testutil.Node("left", "1.0.0", "ISC", shared),
		testutil.Node("right", "2.0.0", "Apache-2.0", testutil.Node("shared", "1.0.0", "GPL-3.0")),
	)

	flat, err := FlattenTree(t.Context(), root)
	require.NoError(t, err)

	want := []types.ModuleKey{"left@1.0.0", "shared@1.0.0", "right@2.0.0"}
	if diff := cmp.Diff(want, flat.Keys()); diff != "" {
		t.Fatalf("unexpected keys (-want +got):\n%s", diff)
	}
	record, ok := flat.Get("shared@1.0.0")
	require.True(t, ok)
	assert.Equal(t, "MIT", record.Licenses, "first visit wins")
}

func TestFlattenTreeCycle(t *testing.T) {
	a := testutil.Node("a", "1.0.0", "MIT")
	b := testutil.Node("b", "1.0.0", "ISC", a)
	a.Dependencies = append(a.Dependencies, b)
	root := testutil.Node("app", "0.1.0", "", a)
	a.Dependencies = append(a.Dependencies, root)

	flat, err := FlattenTree(t.Context(), root)
	require.NoError(t, err)
	if diff := cmp.Diff([]types.ModuleKey{"a@1.0.0", "b@1.0.0"}, flat.Keys()); diff != "" {
		t.Fatalf("unexpected keys (-want +got):\n%s", diff)
	}
}

func TestFlattenTreeExcludesRootAndDropsNesting(t *testing.T) {
	child := testutil.Node("child", "3.1.4", "BSD-3-Clause", testutil.Node("leaf", "0.0.1", ""))
	child.Metadata = map[string]string{"repository": "https://example.com/child"}
	root := testutil.Node("app", "0.1.0", "MIT", child)

	flat, err := FlattenTree(t.Context(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, flat.Len())
	_, ok := flat.Get("app@0.1.0")
	assert.False(t, ok)

	record, ok := flat.Get("child@3.1.4")
	require.True(t, ok)
	want := types.ModuleRecord{
		Licenses: "BSD-3-Clause",
		Metadata: map[string]string{"repository": "https://example.com/child"},
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}
	leaf, ok := flat.Get("leaf@0.0.1")
	require.True(t, ok)
	assert.True(t, leaf.Unprocessed())
}

func TestFlattenTreeMalformed(t *testing.T) {
	tests := []struct {
		name string
		tree *types.DependencyTree
	}{
		{name: "nil root", tree: nil},
		{name: "nil child", tree: &types.DependencyTree{Name: "app", Dependencies: []*types.DependencyTree{nil}}},
		{name: "missing version", tree: testutil.Node("app", "1.0.0", "", testutil.Node("child", "", "MIT"))},
		{name: "missing name", tree: testutil.Node("app", "1.0.0", "", testutil.Node(" ", "1.0.0", "MIT"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FlattenTree(t.Context(), tt.tree)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), "malformed dependency tree")
		})
	}
}
