package rig

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/packlens/pkg/formats"
)

// FromDocument builds a model from a parsed rig document.
func FromDocument(doc *formats.RigDocument) *Model {
	m := NewModel()
	m.EntityID = doc.Entity

	for i := range doc.Bones {
		m.AddRoot(boneFromDoc(&doc.Bones[i]))
	}

	for _, layer := range doc.Animations {
		l := make(AnimationLayer, len(layer))
		for key, v := range layer {
			if v.IsNumber {
				l[key] = Number(v.Number)
			} else {
				l[key] = Expr(v.Expr)
			}
		}
		m.Layers = append(m.Layers, l)
	}

	return m
}

func boneFromDoc(d *formats.BoneDoc) *Bone {
	b := NewBone(d.Name)
	b.Translation = mgl64.Vec3(d.Translate)
	b.Rotation = mgl64.Vec3(d.Rotate)
	b.Scale = mgl64.Vec3(d.Scale)
	if d.PixelOrigin != nil {
		b.Meta[MetaPixelOrigin] = mgl64.Vec3(*d.PixelOrigin)
	}
	for _, box := range d.Boxes {
		b.Boxes = append(b.Boxes, Box{
			Origin: mgl64.Vec3(box.Origin),
			Size:   mgl64.Vec3(box.Size),
			UV:     box.UV,
		})
	}
	for i := range d.Children {
		b.AddChild(boneFromDoc(&d.Children[i]))
	}
	return b
}
