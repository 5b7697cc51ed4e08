package render

import (
	"game-studio/internal/hierarchy"
	"game-studio/internal/logger"
	"game-studio/internal/project"
	"game-studio/internal/scene"
	"game-studio/internal/selection"
)

// Frame is what the viewer draws: a copy of the session taken on the event loop. Files is
// shared with the document since forests are never modified in place.
type Frame struct {
	State     project.State
	Status    project.SaveStatus
	Files     hierarchy.Forest
	Objects   []scene.Object
	Selection selection.State
	Console   []logger.Entry
}

// Capture copies the session. It must run on the session's event loop.
func Capture(s *project.Session) Frame {
	f := Frame{State: s.State(), Status: s.Status()}
	d := s.Doc()
	if d == nil {
		return f
	}
	f.Files = d.Files()
	f.Objects = d.Objects()
	f.Selection = d.Selection()
	f.Console = d.Console().Entries()
	return f
}

// Object returns the object with id.
func (f Frame) Object(id string) (scene.Object, bool) {
	for _, o := range f.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return scene.Object{}, false
}

// first returns the first object accepted by match.
func (f Frame) first(match func(scene.Object) bool) (scene.Object, bool) {
	for _, o := range f.Objects {
		if match(o) {
			return o, true
		}
	}
	return scene.Object{}, false
}
