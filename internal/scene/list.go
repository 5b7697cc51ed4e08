package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jinzhu/copier"
)

var (
	ErrDuplicate = errors.New("duplicate scene object id")
	ErrNotFound  = errors.New("scene object not found")
)

// List is the ordered set of scene objects. Ids are unique.
type List struct {
	objects []Object
}

// NewList returns a list holding objs. It fails on duplicate ids.
func NewList(objs ...Object) (*List, error) {
	l := &List{}
	for _, o := range objs {
		if err := l.Add(o); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Len returns the number of objects.
func (l *List) Len() int {
	return len(l.objects)
}

// All returns a copy of the objects in order.
func (l *List) All() []Object {
	return l.Clone().objects
}

// IDs returns the ids in order.
func (l *List) IDs() []string {
	ids := make([]string, len(l.objects))
	for i, o := range l.objects {
		ids[i] = o.ID
	}
	return ids
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.objects, func(o Object) bool { return o.ID == id })
}

// Find returns a copy of the object with id.
func (l *List) Find(id string) (Object, bool) {
	i := l.index(id)
	if i < 0 {
		return Object{}, false
	}
	return clone(l.objects[i]), true
}

// Has reports whether an object with id exists.
func (l *List) Has(id string) bool {
	return l.index(id) >= 0
}

// Add appends o.
func (l *List) Add(o Object) error {
	if l.Has(o.ID) {
		return fmt.Errorf("%s: %w", o.ID, ErrDuplicate)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	l.objects = append(l.objects, clone(o))
	return nil
}

// Remove deletes every object whose id is in ids and returns how many were removed.
func (l *List) Remove(ids ...string) int {
	before := len(l.objects)
	l.objects = slices.DeleteFunc(l.objects, func(o Object) bool {
		return slices.Contains(ids, o.ID)
	})
	return before - len(l.objects)
}

// Rename sets the name of id. It reports whether the object exists.
func (l *List) Rename(id, name string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.objects[i].Name = name
	return true
}

// Update replaces the object-owned fields of o.ID. Id, name and kind stay owned by the
// paired instance and are not taken from o.
func (l *List) Update(o Object) error {
	i := l.index(o.ID)
	if i < 0 {
		return fmt.Errorf("%s: %w", o.ID, ErrNotFound)
	}
	cur := l.objects[i]
	o.Name, o.Kind = cur.Name, cur.Kind
	if err := o.Validate(); err != nil {
		return err
	}
	o.Transform = o.Transform.Normalized()
	l.objects[i] = clone(o)
	return nil
}

// Clone returns a deep copy of l.
func (l *List) Clone() *List {
	out := &List{objects: make([]Object, len(l.objects))}
	for i, o := range l.objects {
		out.objects[i] = clone(o)
	}
	return out
}

func clone(o Object) Object {
	var c Object
	if err := copier.CopyWithOption(&c, &o, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("scene: copy %s: %v", o.ID, err))
	}
	return c
}
