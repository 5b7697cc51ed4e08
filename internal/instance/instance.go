// Package instance defines the nodes of the project hierarchy: their kinds,
// payload variants and the legality rules tying the two together.
package instance

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Flags protect system-provided nodes against structural edits.
type Flags struct {
	Undeletable  bool `json:"undeletable,omitempty" yaml:"undeletable,omitempty"`
	Unrenameable bool `json:"unrenameable,omitempty" yaml:"unrenameable,omitempty"`
}

// Protected is set on the fixed system folders.
var Protected = Flags{Undeletable: true, Unrenameable: true}

// Vec2 is a 2D point or size used by GUI nodes.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// GuiProps holds layout data of GUI nodes. Position is a fraction of the parent,
// Size is in pixels.
type GuiProps struct {
	Position        Vec2   `json:"position" yaml:"position"`
	Size            Vec2   `json:"size" yaml:"size"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"background_color,omitempty"`
	Text            string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Instance is one node of the hierarchy. Nodes are treated as immutable once they are
// part of a forest; edits go through package hierarchy, which copies what it changes.
type Instance struct {
	ID      string
	Name    string
	Kind    Kind
	Flags   Flags
	Payload Payload
	Gui     *GuiProps
}

// New returns a node of the given kind with a fresh id and the default payload.
// The id is "<Kind>-<uuid>" and is never reused.
func New(kind Kind, name string) *Instance {
	if name == "" {
		name = kind.String()
	}
	n := &Instance{
		ID:      NewID(kind),
		Name:    name,
		Kind:    kind,
		Payload: DefaultPayload(kind),
	}
	if IsGui(kind) {
		n.Gui = &GuiProps{}
	}
	return n
}

// NewID generates a unique id for a node of kind k.
func NewID(k Kind) string {
	return k.String() + "-" + uuid.NewString()
}

// Children returns the node's children, or nil for non-containers.
// The returned slice must not be modified.
func (n *Instance) Children() []*Instance {
	if c, ok := n.Payload.(Container); ok {
		return c.Children
	}
	return nil
}

// Content returns the script text and whether the node is a script.
func (n *Instance) Content() (string, bool) {
	s, ok := n.Payload.(Source)
	return s.Content, ok
}

// Value returns the value-holder payload, or nil.
func (n *Instance) Value() Value {
	v, _ := n.Payload.(Value)
	return v
}

// Clone returns a shallow copy of n: same payload values, new node.
func (n *Instance) Clone() *Instance {
	c := *n
	if n.Gui != nil {
		g := *n.Gui
		c.Gui = &g
	}
	return &c
}

// WithChildren returns a copy of n whose children are replaced.
func (n *Instance) WithChildren(children []*Instance) *Instance {
	c := n.Clone()
	c.Payload = Container{Children: children}
	return c
}

var (
	ErrPayloadMismatch = errors.New("payload does not match kind")
	ErrGuiProps        = errors.New("gui properties on non-gui kind")
	ErrEmptyID         = errors.New("empty id")
)

// Validate checks that the payload variant is legal for the node's kind. It does not
// descend into children.
func (n *Instance) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("%s %q: %w", n.Kind, n.Name, ErrEmptyID)
	}
	if n.Gui != nil && !IsGui(n.Kind) {
		return fmt.Errorf("%s: %w", n.ID, ErrGuiProps)
	}
	var ok bool
	switch n.Payload.(type) {
	case Container:
		ok = IsContainer(n.Kind)
	case Source:
		ok = IsScript(n.Kind)
	case Number:
		ok = n.Kind == NumberValue
	case Text:
		ok = n.Kind == StringValue
	case Leaf:
		ok = !IsContainer(n.Kind) && !IsScript(n.Kind) && !IsValue(n.Kind)
	}
	if !ok {
		return fmt.Errorf("%s (%s): %w", n.ID, n.Kind, ErrPayloadMismatch)
	}
	return nil
}
