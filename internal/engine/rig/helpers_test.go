package rig

import (
	"github.com/go-gl/mathgl/mgl64"
)

type boneOpt func(*Bone)

func at(x, y, z float64) boneOpt {
	return func(b *Bone) { b.Translation = mgl64.Vec3{x, y, z} }
}

func rotated(x, y, z float64) boneOpt {
	return func(b *Bone) { b.Rotation = mgl64.Vec3{x, y, z} }
}

func scaled(x, y, z float64) boneOpt {
	return func(b *Bone) { b.Scale = mgl64.Vec3{x, y, z} }
}

func withBox() boneOpt {
	return func(b *Bone) {
		b.Boxes = append(b.Boxes, Box{Origin: mgl64.Vec3{-4, 0, -4}, Size: mgl64.Vec3{8, 8, 8}})
	}
}

func withPixelOrigin(x, y, z float64) boneOpt {
	return func(b *Bone) { b.Meta[MetaPixelOrigin] = mgl64.Vec3{x, y, z} }
}

func with(children ...*Bone) boneOpt {
	return func(b *Bone) {
		for _, c := range children {
			b.AddChild(c)
		}
	}
}

func bone(name string, opts ...boneOpt) *Bone {
	b := NewBone(name)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func newTestModel(roots ...*Bone) *Model {
	m := NewModel()
	for _, r := range roots {
		m.AddRoot(r)
	}
	return m
}

func namedBones(names ...string) []*Bone {
	bones := make([]*Bone, len(names))
	for i, n := range names {
		bones[i] = bone(n)
	}
	return bones
}

func nameSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
