package rig

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Metadata keys read by the animation player.
const (
	MetaAbsoluteAxes  = "absoluteTranslationAxes"
	MetaAbsoluteSpace = "absoluteTranslationSpace"
	MetaPixelOrigin   = "pixelOrigin"
	MetaOriginHintY   = "originHintY"
	MetaVanillaPart   = "vanillaPart"
	MetaRestPosition  = "restPosition"
)

// SpaceLocal marks absolute translations as expressed in the parent's local space.
const SpaceLocal = "local"

// Metadata is a bone's mutable tag bag.
type Metadata map[string]any

// String returns a string value stored under key.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// Bool returns a boolean value stored under key, false when absent.
func (m Metadata) Bool(key string) bool {
	v, _ := m[key].(bool)
	return v
}

// Float returns a float value stored under key.
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

// Vec3 returns a vector value stored under key.
func (m Metadata) Vec3(key string) (mgl64.Vec3, bool) {
	v, ok := m[key].(mgl64.Vec3)
	return v, ok
}

// AbsoluteAxes returns the axes whose authored translation is a pivot coordinate.
func (b *Bone) AbsoluteAxes() string {
	axes, _ := b.Meta.String(MetaAbsoluteAxes)
	return axes
}

// MarkAbsolute unions axes into the bone's absolute translation axes.
func (b *Bone) MarkAbsolute(axes string) {
	b.setMeta(MetaAbsoluteAxes, UnionAxes(b.AbsoluteAxes(), axes))
}

// MarkAbsoluteLocal marks axes absolute and sets the translation space to local.
func (b *Bone) MarkAbsoluteLocal(axes string) {
	b.MarkAbsolute(axes)
	b.setMeta(MetaAbsoluteSpace, SpaceLocal)
}

// SetOriginHintY records the pixel-origin hint for the y channel.
func (b *Bone) SetOriginHintY(y float64) {
	b.setMeta(MetaOriginHintY, y)
}

// PixelOrigin returns the pixel-origin vector recorded by the model parser.
func (b *Bone) PixelOrigin() (mgl64.Vec3, bool) {
	return b.Meta.Vec3(MetaPixelOrigin)
}

// IsVanillaPart reports whether the bone took part in a hierarchy reparent.
func (b *Bone) IsVanillaPart() bool {
	return b.Meta.Bool(MetaVanillaPart)
}

// RestPosition returns the snapshotted rest translation.
func (b *Bone) RestPosition() (mgl64.Vec3, bool) {
	return b.Meta.Vec3(MetaRestPosition)
}

func (b *Bone) setMeta(key string, value any) {
	if b.Meta == nil {
		b.Meta = Metadata{}
	}
	b.Meta[key] = value
}

// UnionAxes merges two axis strings into canonical "xyz" order without duplicates.
func UnionAxes(a, b string) string {
	var out strings.Builder
	for _, axis := range "xyz" {
		if strings.ContainsRune(a, axis) || strings.ContainsRune(b, axis) {
			out.WriteRune(axis)
		}
	}
	return out.String()
}
