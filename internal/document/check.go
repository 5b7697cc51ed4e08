package document

import (
	"errors"
	"fmt"

	"game-studio/internal/hierarchy"
	"game-studio/internal/instance"
)

var ErrInconsistent = errors.New("document inconsistent")

// Check verifies the cross-model rules: unique ids and legal payloads in the forest, every
// scene object paired with an instance of the same kind and name, and selection pointers
// that resolve.
func (d *Document) Check() error {
	if err := hierarchy.Check(d.files); err != nil {
		return err
	}
	for _, o := range d.objects.All() {
		n, ok := d.Find(o.ID)
		if !ok {
			return fmt.Errorf("%w: scene object %s has no instance", ErrInconsistent, o.ID)
		}
		if n.Kind != o.Kind {
			return fmt.Errorf("%w: scene object %s is %s, instance is %s", ErrInconsistent, o.ID, o.Kind, n.Kind)
		}
		if n.Name != o.Name {
			return fmt.Errorf("%w: scene object %s is named %q, instance %q", ErrInconsistent, o.ID, o.Name, n.Name)
		}
	}
	if id := d.sel.Hierarchy; id != "" {
		if _, ok := d.Find(id); !ok {
			return fmt.Errorf("%w: selected node %s missing", ErrInconsistent, id)
		}
	}
	if id := d.sel.Object; id != "" && !d.objects.Has(id) {
		return fmt.Errorf("%w: selected object %s missing", ErrInconsistent, id)
	}
	if id := d.sel.ActiveScript; id != "" {
		n, ok := d.Find(id)
		if !ok || !instance.IsScript(n.Kind) {
			return fmt.Errorf("%w: active script %s missing", ErrInconsistent, id)
		}
	}
	return nil
}
