// Package rig reconstructs entity bone hierarchies and tags bone transform semantics
// for the animation player.
package rig

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/packlens/pkg/math"
)

// Box is a leaf geometry box. The rig core only cares whether a bone has any.
type Box struct {
	Origin mgl64.Vec3
	Size   mgl64.Vec3
	UV     [2]float64
}

// Bone is a named node in a model's bone tree. A bone owns its children.
type Bone struct {
	Name        string
	Translation mgl64.Vec3 // model units (16 px)
	Rotation    mgl64.Vec3 // degrees, XYZ order
	Scale       mgl64.Vec3
	Boxes       []Box
	Meta        Metadata

	parent   *Bone
	children []*Bone
	root     bool
}

// NewBone returns a bone with unit scale and an empty metadata bag.
func NewBone(name string) *Bone {
	return &Bone{
		Name:  name,
		Scale: mgl64.Vec3{1, 1, 1},
		Meta:  Metadata{},
	}
}

// Parent returns the owning bone, or nil for top-level bones.
func (b *Bone) Parent() *Bone {
	if b.parent == nil || b.parent.root {
		return nil
	}
	return b.parent
}

// ParentName returns the parent's name, or "" for top-level bones.
func (b *Bone) ParentName() string {
	if p := b.Parent(); p != nil {
		return p.Name
	}
	return ""
}

// Children returns a copy of the bone's direct children.
func (b *Bone) Children() []*Bone {
	return append([]*Bone(nil), b.children...)
}

// Child returns the direct child with the given name.
func (b *Bone) Child(name string) *Bone {
	for _, c := range b.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasGeometry reports whether the bone itself carries boxes.
func (b *Bone) HasGeometry() bool {
	return len(b.Boxes) > 0
}

// IsDescendantOf reports whether b sits anywhere below ancestor.
func (b *Bone) IsDescendantOf(ancestor *Bone) bool {
	for p := b.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// AddChild attaches child under b without touching its local transform.
// The child is detached from its previous owner first.
func (b *Bone) AddChild(child *Bone) {
	child.detach()
	child.parent = b
	b.children = append(b.children, child)
}

func (b *Bone) detach() {
	if b.parent == nil {
		return
	}
	siblings := b.parent.children
	for i, c := range siblings {
		if c == b {
			b.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	b.parent = nil
}

// LocalMatrix returns T * R * S for the bone's local transform.
func (b *Bone) LocalMatrix() mgl64.Mat4 {
	return math.Compose(b.Translation, b.Rotation, b.Scale)
}

// SetLocalMatrix replaces the local transform with the decomposition of m.
func (b *Bone) SetLocalMatrix(m mgl64.Mat4) {
	b.Translation, b.Rotation, b.Scale = math.Decompose(m)
}

// WorldMatrix returns the bone's transform composed with every ancestor.
func (b *Bone) WorldMatrix() mgl64.Mat4 {
	world := b.LocalMatrix()
	for p := b.Parent(); p != nil; p = p.Parent() {
		world = p.LocalMatrix().Mul4(world)
	}
	return world
}

// Walk visits b and its descendants depth-first. Returning false from fn
// skips the visited bone's subtree.
func (b *Bone) Walk(fn func(*Bone) bool) {
	if !fn(b) {
		return
	}
	for _, c := range b.Children() {
		c.Walk(fn)
	}
}
