// Package primitives draws scene objects as lit raylib meshes, one cached mesh per shape.
package primitives

import "game-studio/internal/instance"

// Shape is the mesh family used for an object kind.
type Shape int

const (
	None Shape = iota
	Cube
	Wedge
	Cone
	Sphere
)

// meshOffset shifts meshes whose origin is at their base so the object box is centred.
var meshOffset = map[Shape][3]float32{
	Wedge: {0, -0.5, 0},
	Cone:  {0, -0.5, 0},
}

// ShapeOf returns the mesh family drawn for kind. Lights are small spheres; the player and
// the viewport camera are boxes.
func ShapeOf(kind instance.Kind) Shape {
	switch kind {
	case instance.Part, instance.Player, instance.ViewPort:
		return Cube
	case instance.Wedge:
		return Wedge
	case instance.Cone:
		return Cone
	case instance.DirectionalLight, instance.PointLight:
		return Sphere
	}
	return None
}
