// Package hierarchy implements tree operations over the instance forest.
//
// Every function is a pure transform: inputs are never modified. A successful edit copies
// the nodes on the path from the root down to the edited node and shares everything else
// with the input. A failed edit returns the input forest itself, so repeated no-op calls
// are observably identical.
package hierarchy

import (
	"errors"
	"fmt"
	"slices"

	"game-studio/internal/instance"
)

// Forest is the ordered list of top-level nodes of a project.
type Forest []*instance.Instance

var (
	ErrNotFound     = errors.New("instance not found")
	ErrNotContainer = errors.New("parent cannot hold children")
	ErrDuplicateID  = errors.New("duplicate instance id")
	ErrWrongKind    = errors.New("operation not supported by instance kind")
	ErrTypeMismatch = errors.New("value type does not match instance kind")
	ErrCycle        = errors.New("cannot move an instance into its own subtree")
)

// RefusedError reports a structural edit rejected by a protection flag.
type RefusedError struct {
	Op   string // "delete", "rename" or "move"
	ID   string
	Name string
}

func (e *RefusedError) Error() string {
	return fmt.Sprintf("Cannot %s protected system folder: %s", e.Op, e.Name)
}

// IsRefused reports whether err is a protection refusal.
func IsRefused(err error) bool {
	var r *RefusedError
	return errors.As(err, &r)
}

// Find returns the node with id using a depth-first pre-order search.
func Find(f Forest, id string) (*instance.Instance, bool) {
	for _, n := range f {
		if n.ID == id {
			return n, true
		}
		if c, ok := Find(n.Children(), id); ok {
			return c, true
		}
	}
	return nil, false
}

// ParentOf returns the parent of id. The parent is nil for top-level nodes; ok is false
// when id is not in the forest.
func ParentOf(f Forest, id string) (parent *instance.Instance, ok bool) {
	for _, n := range f {
		if n.ID == id {
			return nil, true
		}
	}
	for _, n := range f {
		for _, c := range n.Children() {
			if c.ID == id {
				return n, true
			}
		}
		if p, ok := ParentOf(n.Children(), id); ok && p != nil {
			return p, true
		}
	}
	return nil, false
}

// editFunc receives the matched node and returns its replacement, or nil to remove it.
type editFunc func(n *instance.Instance) (*instance.Instance, error)

// edit locates id and rebuilds the path above it with the replacement from fn.
func edit(f Forest, id string, fn editFunc) (Forest, error) {
	out, found, err := rewrite(f, id, fn)
	if !found {
		return f, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return f, err
	}
	return out, nil
}

func rewrite(nodes []*instance.Instance, id string, fn editFunc) ([]*instance.Instance, bool, error) {
	for i, n := range nodes {
		if n.ID == id {
			repl, err := fn(n)
			if err != nil {
				return nodes, true, err
			}
			out := make([]*instance.Instance, 0, len(nodes))
			out = append(out, nodes[:i]...)
			if repl != nil {
				out = append(out, repl)
			}
			return append(out, nodes[i+1:]...), true, nil
		}
		kids := n.Children()
		if len(kids) == 0 {
			continue
		}
		newKids, found, err := rewrite(kids, id, fn)
		if !found {
			continue
		}
		if err != nil {
			return nodes, true, err
		}
		out := slices.Clone(nodes)
		out[i] = n.WithChildren(newKids)
		return out, true, nil
	}
	return nodes, false, nil
}

// Insert appends child to the children of parentID.
func Insert(f Forest, parentID string, child *instance.Instance) (Forest, error) {
	if err := Check(Forest{child}); err != nil {
		return f, err
	}
	for _, id := range IDs(child) {
		if _, ok := Find(f, id); ok {
			return f, fmt.Errorf("%s: %w", id, ErrDuplicateID)
		}
	}
	return edit(f, parentID, func(p *instance.Instance) (*instance.Instance, error) {
		if !instance.IsContainer(p.Kind) {
			return nil, fmt.Errorf("%s (%s): %w", p.Name, p.Kind, ErrNotContainer)
		}
		return p.WithChildren(append(slices.Clip(p.Children()), child)), nil
	})
}

// Delete removes id and its subtree. The removed subtree root is returned so callers can
// cascade to whatever mirrors it. A node is refused when it, or anything below it, is
// undeletable.
func Delete(f Forest, id string) (Forest, *instance.Instance, error) {
	var removed *instance.Instance
	out, err := edit(f, id, func(n *instance.Instance) (*instance.Instance, error) {
		if p := firstUndeletable(n); p != nil {
			return nil, &RefusedError{Op: "delete", ID: p.ID, Name: p.Name}
		}
		removed = n
		return nil, nil
	})
	if err != nil {
		return f, nil, err
	}
	return out, removed, nil
}

func firstUndeletable(n *instance.Instance) *instance.Instance {
	if n.Flags.Undeletable {
		return n
	}
	for _, c := range n.Children() {
		if p := firstUndeletable(c); p != nil {
			return p
		}
	}
	return nil
}

// Rename sets the name of id.
func Rename(f Forest, id, name string) (Forest, error) {
	return edit(f, id, func(n *instance.Instance) (*instance.Instance, error) {
		if n.Flags.Unrenameable {
			return nil, &RefusedError{Op: "rename", ID: n.ID, Name: n.Name}
		}
		c := n.Clone()
		c.Name = name
		return c, nil
	})
}

// SetValue replaces the value of a value-holder node.
func SetValue(f Forest, id string, v instance.Value) (Forest, error) {
	return edit(f, id, func(n *instance.Instance) (*instance.Instance, error) {
		if !instance.IsValue(n.Kind) {
			return nil, fmt.Errorf("%s (%s): %w", n.Name, n.Kind, ErrWrongKind)
		}
		if v == nil || v.Kind() != n.Kind {
			return nil, fmt.Errorf("%s (%s): %w", n.Name, n.Kind, ErrTypeMismatch)
		}
		c := n.Clone()
		c.Payload = v
		return c, nil
	})
}

// SetContent replaces the content of a script node.
func SetContent(f Forest, id, content string) (Forest, error) {
	return edit(f, id, func(n *instance.Instance) (*instance.Instance, error) {
		if !instance.IsScript(n.Kind) {
			return nil, fmt.Errorf("%s (%s): %w", n.Name, n.Kind, ErrWrongKind)
		}
		c := n.Clone()
		c.Payload = instance.Source{Content: content}
		return c, nil
	})
}

// SetGui replaces the layout properties of a GUI node.
func SetGui(f Forest, id string, props instance.GuiProps) (Forest, error) {
	return edit(f, id, func(n *instance.Instance) (*instance.Instance, error) {
		if !instance.IsGui(n.Kind) {
			return nil, fmt.Errorf("%s (%s): %w", n.Name, n.Kind, ErrWrongKind)
		}
		c := n.Clone()
		c.Gui = &props
		return c, nil
	})
}

// Move reparents id under newParentID, appending it to the new parent's children.
// Nodes that may not be deleted may not be moved either.
func Move(f Forest, id, newParentID string) (Forest, error) {
	n, ok := Find(f, id)
	if !ok {
		return f, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if p := firstUndeletable(n); p != nil {
		return f, &RefusedError{Op: "move", ID: p.ID, Name: p.Name}
	}
	if _, inside := Find(Forest{n}, newParentID); inside {
		return f, ErrCycle
	}
	target, ok := Find(f, newParentID)
	if !ok {
		return f, fmt.Errorf("%s: %w", newParentID, ErrNotFound)
	}
	if !instance.IsContainer(target.Kind) {
		return f, fmt.Errorf("%s (%s): %w", target.Name, target.Kind, ErrNotContainer)
	}
	out, _, err := Delete(f, id)
	if err != nil {
		return f, err
	}
	out, err = Insert(out, newParentID, n)
	if err != nil {
		return f, err
	}
	return out, nil
}

// IDs returns every id in the subtree rooted at n, pre-order.
func IDs(n *instance.Instance) []string {
	var ids []string
	Walk(Forest{n}, func(c *instance.Instance, _ int) bool {
		ids = append(ids, c.ID)
		return true
	})
	return ids
}

// Walk visits every node pre-order with its depth. Returning false from fn skips the
// node's children.
func Walk(f Forest, fn func(n *instance.Instance, depth int) bool) {
	walk(f, 0, fn)
}

func walk(nodes []*instance.Instance, depth int, fn func(*instance.Instance, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children(), depth+1, fn)
		}
	}
}

// Copy returns a deep structural copy of f: every node is new, ids are unchanged.
func Copy(f Forest) Forest {
	if f == nil {
		return nil
	}
	out := make(Forest, len(f))
	for i, n := range f {
		c := n.Clone()
		if kids := n.Children(); kids != nil {
			c.Payload = instance.Container{Children: Copy(kids)}
		}
		out[i] = c
	}
	return out
}

// Len returns the number of nodes in f.
func Len(f Forest) int {
	count := 0
	Walk(f, func(*instance.Instance, int) bool {
		count++
		return true
	})
	return count
}

// Check verifies payload legality of every node and that ids are unique.
func Check(f Forest) error {
	seen := make(map[string]bool)
	var err error
	Walk(f, func(n *instance.Instance, _ int) bool {
		if err != nil {
			return false
		}
		if e := n.Validate(); e != nil {
			err = e
			return false
		}
		if seen[n.ID] {
			err = fmt.Errorf("%s: %w", n.ID, ErrDuplicateID)
			return false
		}
		seen[n.ID] = true
		return true
	})
	return err
}
