package scene

import (
	"github.com/chewxy/math32"

	"game-studio/internal/instance"
)

// Editor positions are pixels on an 800x600 canvas. The 3D viewer draws Unit pixels as one
// world unit and puts the canvas centre at the world origin.
const (
	Unit       = 40
	PlayerStep = 2
)

// Canvas is the size of the editable area in editor units.
var Canvas = Vec3{X: 800, Y: 600}

// Box is an axis-aligned box in world space.
type Box struct {
	Center Vec3
	Size   Vec3
}

// Min returns the lowest corner of b.
func (b Box) Min() Vec3 {
	return Vec3{X: b.Center.X - b.Size.X/2, Y: b.Center.Y - b.Size.Y/2, Z: b.Center.Z - b.Size.Z/2}
}

// Max returns the highest corner of b.
func (b Box) Max() Vec3 {
	return Vec3{X: b.Center.X + b.Size.X/2, Y: b.Center.Y + b.Size.Y/2, Z: b.Center.Z + b.Size.Z/2}
}

// World returns the world-space bounds of o. Canvas x and y become world X and Z; the
// editor z becomes height above the ground. Players are half again as tall as they are wide.
func (o Object) World() Box {
	s := o.Transform.Scale
	size := Vec3{X: abs1(s.X), Y: abs1(s.Z), Z: abs1(s.Y)}
	if o.Kind == instance.Player {
		size.Y = abs1(s.Y) * 1.5
	}
	p := o.Transform.Position
	return Box{
		Center: Vec3{
			X: (p.X - DefaultPosition.X) / Unit,
			Y: p.Z/Unit + size.Y/2,
			Z: (p.Y - DefaultPosition.Y) / Unit,
		},
		Size: size,
	}
}

// abs1 treats a zero scale as 1 so degenerate objects stay visible and pickable.
func abs1(v float32) float32 {
	if v == 0 {
		return 1
	}
	return math32.Abs(v)
}

// Walk moves o by one step in the canvas direction (dx, dy), each in {-1, 0, 1}, and keeps
// its footprint inside the canvas. It reports whether the position changed.
func Walk(o Object, dx, dy int) (Object, bool) {
	p := o.Transform.Position
	x := clamp(p.X+float32(dx)*PlayerStep, 0, Canvas.X-Unit)
	y := clamp(p.Y+float32(dy)*PlayerStep, 0, Canvas.Y-Unit)
	if x == p.X && y == p.Y {
		return o, false
	}
	o.Transform.Position.X, o.Transform.Position.Y = x, y
	return o, true
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}

// Pick casts a ray from origin along dir and returns the id of the nearest object whose
// world box it hits.
func Pick(objs []Object, origin, dir Vec3) (string, bool) {
	best, hit := float32(math32.Inf(1)), ""
	for _, o := range objs {
		if d, ok := o.World().intersect(origin, dir); ok && d < best {
			best, hit = d, o.ID
		}
	}
	return hit, hit != ""
}

// intersect is the slab test; it returns the entry distance along dir.
func (b Box) intersect(origin, dir Vec3) (float32, bool) {
	bmin, bmax := b.Min(), b.Max()
	near, far := float32(math32.Inf(-1)), float32(math32.Inf(1))
	for _, axis := range [3][4]float32{
		{origin.X, dir.X, bmin.X, bmax.X},
		{origin.Y, dir.Y, bmin.Y, bmax.Y},
		{origin.Z, dir.Z, bmin.Z, bmax.Z},
	} {
		o, d, lo, hi := axis[0], axis[1], axis[2], axis[3]
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		near, far = math32.Max(near, t1), math32.Min(far, t2)
		if near > far {
			return 0, false
		}
	}
	if far < 0 {
		return 0, false
	}
	return math32.Max(near, 0), true
}
