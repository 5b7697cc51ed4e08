// Package selection tracks the three selection pointers of the editor and reconciles
// them so the explorer, the scene view and the code editor never disagree.
package selection

import "game-studio/internal/instance"

// State holds the selected hierarchy node, the selected scene object and the script bound
// to the code editor. An empty string means none.
type State struct {
	Hierarchy    string `json:"selectedHierarchyId,omitempty"`
	Object       string `json:"selectedSceneObjectId,omitempty"`
	ActiveScript string `json:"activeScriptId,omitempty"`
}

// SelectNode applies a click on a hierarchy node. The hierarchy pointer always follows the
// click. A script becomes the active script and clears the object selection, since scripts
// have no scene presence. A node mirrored by a scene object selects that object; any other
// node clears the object selection.
func (s *State) SelectNode(id string, kind instance.Kind, hasObject bool) {
	s.Hierarchy = id
	switch {
	case instance.IsScript(kind):
		s.ActiveScript = id
		s.Object = ""
	case hasObject:
		s.Object = id
	default:
		s.Object = ""
	}
}

// SelectObject applies a click in the scene view. The hierarchy pointer mirrors the object
// pointer; an empty id (click on empty space) clears both.
func (s *State) SelectObject(id string) {
	s.Object = id
	s.Hierarchy = id
}

// SetActiveScript binds id to the code editor without touching the other pointers.
func (s *State) SetActiveScript(id string) {
	s.ActiveScript = id
}

// Forget clears every pointer whose id is in removed and reports whether any changed.
func (s *State) Forget(removed map[string]bool) bool {
	changed := false
	for _, p := range []*string{&s.Hierarchy, &s.Object, &s.ActiveScript} {
		if *p != "" && removed[*p] {
			*p = ""
			changed = true
		}
	}
	return changed
}

// Clear resets all pointers.
func (s *State) Clear() {
	*s = State{}
}
