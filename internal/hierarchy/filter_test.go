package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-studio/internal/instance"
)

func TestFilterKeepsAncestors(t *testing.T) {
	f := testForest()
	out := Filter(f, MatchName("ramp"))
	require.Len(t, out, 1)
	assert.Equal(t, "workspace", out[0].ID)
	require.Len(t, out[0].Children(), 1)
	props := out[0].Children()[0]
	assert.Equal(t, "props", props.ID)
	assert.Equal(t, []string{"Ramp"}, names(props.Children()))

	// the input is not pruned
	assert.Len(t, f[0].Children(), 2)
}

func TestFilterPreservesOrder(t *testing.T) {
	out := Filter(testForest(), func(n *instance.Instance) bool {
		return n.Kind == instance.Part || n.Kind == instance.Wedge || n.Kind == instance.Script
	})
	require.Len(t, out, 2)
	assert.Equal(t, []string{"Workspace", "ServerScriptService"}, names(out))
	assert.Equal(t, []string{"CoolCube", "Ramp"}, names(out[0].Children()[0].Children()))
}

func TestFilterMatchedContainerDropsUnmatchedChildren(t *testing.T) {
	out := Filter(testForest(), MatchName("props"))
	require.Len(t, out, 1)
	props := out[0].Children()[0]
	assert.Equal(t, "Props", props.Name)
	assert.Empty(t, props.Children())
	assert.Equal(t, instance.Container{}, props.Payload)
}

func TestFilterNoMatches(t *testing.T) {
	assert.Empty(t, Filter(testForest(), MatchName("zzz")))
}

func TestMatchNameFoldsCase(t *testing.T) {
	match := MatchName("  COOL ")
	assert.True(t, match(&instance.Instance{Name: "CoolCube"}))
	assert.False(t, match(&instance.Instance{Name: "Ramp"}))
	assert.True(t, MatchName("")(&instance.Instance{Name: "any"}))
}

func TestSearchEmptyTermReturnsInput(t *testing.T) {
	f := testForest()
	out := Search(f, " ")
	assert.Same(t, f[0], out[0])
}

func TestDisplayOrder(t *testing.T) {
	f := Forest{
		folder("zeta", "zeta", instance.Flags{}),
		folder("lighting", "Lighting", instance.Protected),
		folder("alpha", "Alpha", instance.Flags{}),
		folder("workspace", "Workspace", instance.Protected),
	}
	out := DisplayOrder(f, []string{"workspace", "lighting"})
	assert.Equal(t, []string{"Workspace", "Lighting", "Alpha", "zeta"}, names(out))
	assert.Equal(t, "zeta", f[0].Name)
}
