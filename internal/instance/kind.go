package instance

import "fmt"

// Kind identifies the type of an instance. The set is closed: every classification
// function panics on a value outside it.
type Kind int

const (
	Folder Kind = iota
	Model
	Tool
	RemoteEvent
	Asset
	Player
	ViewPort
	DirectionalLight
	PointLight
	Part
	Wedge
	Cone
	Script
	LocalScript
	ModuleScript
	ScreenGui
	Frame
	TextButton
	NumberValue
	StringValue
	numKinds
)

var kindNames = [numKinds]string{
	Folder:           "Folder",
	Model:            "Model",
	Tool:             "Tool",
	RemoteEvent:      "RemoteEvent",
	Asset:            "asset",
	Player:           "Player",
	ViewPort:         "ViewPort",
	DirectionalLight: "DirectionalLight",
	PointLight:       "PointLight",
	Part:             "Part",
	Wedge:            "Wedge",
	Cone:             "Cone",
	Script:           "Script",
	LocalScript:      "LocalScript",
	ModuleScript:     "ModuleScript",
	ScreenGui:        "ScreenGui",
	Frame:            "Frame",
	TextButton:       "TextButton",
	NumberValue:      "NumberValue",
	StringValue:      "StringValue",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the wire name of the kind (e.g. "Part", "LocalScript").
func (k Kind) String() string {
	mustKnow(k)
	return kindNames[k]
}

// ParseKind converts a wire name back into a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown instance kind %q", name)
}

// MarshalText lets kinds appear as names in JSON and YAML.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || k >= numKinds {
		return nil, fmt.Errorf("unknown instance kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func mustKnow(k Kind) {
	if k < 0 || k >= numKinds {
		panic(fmt.Sprintf("instance: unknown kind %d", int(k)))
	}
}

// IsContainer reports whether nodes of kind k may hold children.
func IsContainer(k Kind) bool {
	mustKnow(k)
	switch k {
	case Folder, Model, Tool, ScreenGui, Frame, TextButton:
		return true
	}
	return false
}

// IsPhysical reports whether nodes of kind k are mirrored by a scene object.
func IsPhysical(k Kind) bool {
	mustKnow(k)
	switch k {
	case Player, ViewPort, DirectionalLight, PointLight, Part, Wedge, Cone:
		return true
	}
	return false
}

// IsPrimitive reports whether k is a primitive shape.
func IsPrimitive(k Kind) bool {
	mustKnow(k)
	return k == Part || k == Wedge || k == Cone
}

// IsLight reports whether k is a light source.
func IsLight(k Kind) bool {
	mustKnow(k)
	return k == DirectionalLight || k == PointLight
}

// IsScript reports whether nodes of kind k carry script content.
func IsScript(k Kind) bool {
	mustKnow(k)
	return k == Script || k == LocalScript || k == ModuleScript
}

// IsValue reports whether nodes of kind k hold a number or string value.
func IsValue(k Kind) bool {
	mustKnow(k)
	return k == NumberValue || k == StringValue
}

// IsGui reports whether k is a GUI element kind.
func IsGui(k Kind) bool {
	mustKnow(k)
	return k == ScreenGui || k == Frame || k == TextButton
}

// DefaultPayload returns the empty payload for a freshly created node of kind k.
func DefaultPayload(k Kind) Payload {
	switch {
	case IsScript(k):
		return Source{}
	case k == NumberValue:
		return Number{}
	case k == StringValue:
		return Text{}
	case IsContainer(k):
		return Container{}
	}
	return Leaf{}
}
