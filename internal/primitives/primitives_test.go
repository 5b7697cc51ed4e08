package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"game-studio/internal/instance"
)

func TestShapeOf(t *testing.T) {
	for _, k := range instance.Kinds() {
		shape := ShapeOf(k)
		assert.Equal(t, instance.IsPhysical(k), shape != None, k.String())
	}
	assert.Equal(t, Wedge, ShapeOf(instance.Wedge))
	assert.Equal(t, Sphere, ShapeOf(instance.PointLight))
}
