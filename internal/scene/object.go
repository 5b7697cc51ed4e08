// Package scene holds the flat list of renderable objects mirrored from the physical
// instances of the hierarchy.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"game-studio/internal/instance"
)

// Vec3 is a 3-component vector. Position is in editor units, rotation in degrees.
type Vec3 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// Transform places an object in the scene.
type Transform struct {
	Position Vec3 `json:"position" yaml:"position"`
	Rotation Vec3 `json:"rotation" yaml:"rotation"`
	Scale    Vec3 `json:"scale" yaml:"scale"`
}

// DefaultPosition is where newly added objects appear (the centre of the editor view).
var DefaultPosition = Vec3{X: 400, Y: 300, Z: 0}

// DefaultTransform is the transform of a newly added object: default position, zero
// rotation, unit scale.
func DefaultTransform() Transform {
	return Transform{
		Position: DefaultPosition,
		Scale:    Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Normalized returns t with every rotation component wrapped into [0, 360).
func (t Transform) Normalized() Transform {
	t.Rotation = Vec3{X: wrapDegrees(t.Rotation.X), Y: wrapDegrees(t.Rotation.Y), Z: wrapDegrees(t.Rotation.Z)}
	return t
}

func wrapDegrees(d float32) float32 {
	d = math32.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// CameraMode selects how the viewport follows the player in play mode.
type CameraMode string

const (
	ThirdPerson CameraMode = "third_person"
	FirstPerson CameraMode = "first_person"
)

// Light holds light-specific fields.
type Light struct {
	Intensity float32 `json:"intensity" yaml:"intensity"`
}

// Camera holds viewport-specific fields.
type Camera struct {
	Mode CameraMode `json:"mode" yaml:"mode"`
	Zoom float32    `json:"zoom" yaml:"zoom"`
}

// Object is one renderable entity. ID and Name mirror the paired instance; the other
// fields are owned by the object and edited directly.
type Object struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Kind      instance.Kind `json:"type" yaml:"type"`
	Transform Transform     `json:"transform" yaml:"transform"`
	Color     string        `json:"color" yaml:"color"`
	Texture   string        `json:"texture,omitempty" yaml:"texture,omitempty"`
	Light     *Light        `json:"light,omitempty" yaml:"light,omitempty"`
	Camera    *Camera       `json:"camera,omitempty" yaml:"camera,omitempty"`
}

// Default colors per object family.
const (
	PrimitiveColor = "#cccccc"
	LightColor     = "#ffffff"
	CameraColor    = "#9ca3af"
	PlayerColor    = "#34d399"
)

// NewObject returns the default object for a physical instance. It panics for kinds that
// have no scene presence.
func NewObject(id, name string, kind instance.Kind) Object {
	if !instance.IsPhysical(kind) {
		panic(fmt.Sprintf("scene: %s is not a physical kind", kind))
	}
	o := Object{ID: id, Name: name, Kind: kind, Transform: DefaultTransform()}
	switch {
	case instance.IsPrimitive(kind):
		o.Color = PrimitiveColor
	case instance.IsLight(kind):
		o.Color = LightColor
		o.Light = &Light{Intensity: 1}
	case kind == instance.ViewPort:
		o.Color = CameraColor
		o.Camera = &Camera{Mode: ThirdPerson, Zoom: 1}
	case kind == instance.Player:
		o.Color = PlayerColor
	}
	return o
}

// Validate checks that the kind-specific fields match the kind.
func (o Object) Validate() error {
	if !instance.IsPhysical(o.Kind) {
		return fmt.Errorf("scene object %s: %s is not a physical kind", o.ID, o.Kind)
	}
	if (o.Light != nil) != instance.IsLight(o.Kind) {
		return fmt.Errorf("scene object %s: light fields on %s", o.ID, o.Kind)
	}
	if (o.Camera != nil) != (o.Kind == instance.ViewPort) {
		return fmt.Errorf("scene object %s: camera fields on %s", o.ID, o.Kind)
	}
	return nil
}
