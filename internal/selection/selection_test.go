package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"game-studio/internal/instance"
)

func TestSelectNodeScript(t *testing.T) {
	s := State{Object: "cube-1", Hierarchy: "cube-1"}
	s.SelectNode("game-manager", instance.Script, false)
	assert.Equal(t, State{Hierarchy: "game-manager", ActiveScript: "game-manager"}, s)
}

func TestSelectNodePhysical(t *testing.T) {
	s := State{ActiveScript: "game-manager"}
	s.SelectNode("cube-1", instance.Part, true)
	assert.Equal(t, State{Hierarchy: "cube-1", Object: "cube-1", ActiveScript: "game-manager"}, s)
}

func TestSelectNodeOther(t *testing.T) {
	s := State{Object: "cube-1", ActiveScript: "gm"}
	s.SelectNode("workspace", instance.Folder, false)
	assert.Equal(t, State{Hierarchy: "workspace", ActiveScript: "gm"}, s)

	s.SelectNode("score", instance.NumberValue, false)
	assert.Equal(t, "score", s.Hierarchy)
	assert.Empty(t, s.Object)
}

func TestSelectObjectMirrorsHierarchy(t *testing.T) {
	s := State{ActiveScript: "gm"}
	s.SelectObject("cube-1")
	assert.Equal(t, "cube-1", s.Hierarchy)
	assert.Equal(t, "cube-1", s.Object)

	s.SelectObject("")
	assert.Equal(t, State{ActiveScript: "gm"}, s)
}

func TestForget(t *testing.T) {
	s := State{Hierarchy: "a", Object: "a", ActiveScript: "b"}
	assert.True(t, s.Forget(map[string]bool{"a": true}))
	assert.Equal(t, State{ActiveScript: "b"}, s)
	assert.False(t, s.Forget(map[string]bool{"zz": true}))
	assert.True(t, s.Forget(map[string]bool{"b": true}))
	assert.Equal(t, State{}, s)
}
