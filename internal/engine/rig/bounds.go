package rig

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/packlens/pkg/math"
)

// AABB is an axis-aligned bounding box in model units.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func emptyAABB() AABB {
	inf := 1e308
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (a *AABB) extend(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		a.Min[i] = min(a.Min[i], p[i])
		a.Max[i] = max(a.Max[i], p[i])
	}
}

func (a *AABB) union(o AABB) {
	a.extend(o.Min)
	a.extend(o.Max)
}

// Size returns the box extent on each axis.
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// WorldBounds returns the bounds of the bone's own boxes after its world
// transform. Box coordinates are in pixels.
func (b *Bone) WorldBounds() (AABB, bool) {
	if !b.HasGeometry() {
		return AABB{}, false
	}

	world := b.WorldMatrix()
	bounds := emptyAABB()
	for _, box := range b.Boxes {
		lo := box.Origin.Mul(1 / math.PixelsPerUnit)
		hi := box.Origin.Add(box.Size).Mul(1 / math.PixelsPerUnit)
		for i := 0; i < 8; i++ {
			corner := lo
			if i&1 != 0 {
				corner[0] = hi[0]
			}
			if i&2 != 0 {
				corner[1] = hi[1]
			}
			if i&4 != 0 {
				corner[2] = hi[2]
			}
			bounds.extend(world.Mul4x1(corner.Vec4(1)).Vec3())
		}
	}
	return bounds, true
}

// ModelBounds returns the union of every bone's world bounds.
func ModelBounds(m *Model) (AABB, bool) {
	bounds := emptyAABB()
	found := false
	for _, b := range m.Bones() {
		if bb, ok := b.WorldBounds(); ok {
			bounds.union(bb)
			found = true
		}
	}
	if !found {
		return AABB{}, false
	}
	return bounds, true
}
