package instance

import "strconv"

// Payload is the kind-specific data of a node. Exactly one variant is legal per kind:
// Container for folders, models and GUI nodes, Source for scripts, Number and Text for
// value holders, Leaf for everything else.
type Payload interface {
	payload()
}

// Container holds ordered children.
type Container struct {
	Children []*Instance
}

// Source holds the text edited by the code editor.
type Source struct {
	Content string
}

// Number is the payload of a NumberValue.
type Number struct {
	Value float64
}

// Text is the payload of a StringValue.
type Text struct {
	Value string
}

// Leaf is the empty payload of physical nodes and other childless kinds.
type Leaf struct{}

func (Container) payload() {}
func (Source) payload()    {}
func (Number) payload()    {}
func (Text) payload()      {}
func (Leaf) payload()      {}

// Value is implemented by the two value-holder payloads.
type Value interface {
	Payload
	// Kind is the value-holder kind accepting this value.
	Kind() Kind
	String() string
}

func (Number) Kind() Kind { return NumberValue }
func (Text) Kind() Kind   { return StringValue }

func (v Number) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }
func (v Text) String() string   { return v.Value }

// ParseValue converts user input into the value variant accepted by kind k.
// A non-numeric string for a NumberValue parses as 0, as the property panel does.
func ParseValue(k Kind, raw string) Value {
	if k == NumberValue {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			f = 0
		}
		return Number{Value: f}
	}
	return Text{Value: raw}
}
