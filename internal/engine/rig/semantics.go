package rig

import (
	"strings"

	"github.com/Faultbox/packlens/pkg/math"
)

// Tuning holds the empirically tuned constants of the semantics pass.
type Tuning struct {
	// ArmPivotMinPixels is the arm pivot height (px) from which y is treated as absolute.
	ArmPivotMinPixels float64
	// Head2BaselineMax is the largest constant head2.ty that still counts as a pivot coordinate.
	Head2BaselineMax float64
	// HeadPivotName is the base name given to an empty villager head after the swap.
	HeadPivotName string
}

// DefaultTuning returns the tuning validated against vanilla rigs.
func DefaultTuning() Tuning {
	return Tuning{
		ArmPivotMinPixels: 16,
		Head2BaselineMax:  -3,
		HeadPivotName:     "head_pivot",
	}
}

// WithDefaults returns t with each zero field replaced by its DefaultTuning value.
func (t Tuning) WithDefaults() Tuning {
	def := DefaultTuning()
	if t.ArmPivotMinPixels == 0 {
		t.ArmPivotMinPixels = def.ArmPivotMinPixels
	}
	if t.Head2BaselineMax == 0 {
		t.Head2BaselineMax = def.Head2BaselineMax
	}
	if t.HeadPivotName == "" {
		t.HeadPivotName = def.HeadPivotName
	}
	return t
}

// RigFlags are rig-wide facts derived from the animation layers.
type RigFlags struct {
	HasZeroedBodyTranslation bool
	HasNegativeHead2Baseline bool
}

// DeriveRigFlags inspects the layers of m for the semantics pass.
func DeriveRigFlags(m *Model, arch Archetype, tuning Tuning) RigFlags {
	var flags RigFlags
	for _, layer := range m.Layers {
		for key, value := range layer {
			target, channel, ok := SplitChannelKey(key)
			if !ok {
				continue
			}
			switch {
			case target == "body" && IsTranslationChannel(channel):
				if v, constant := value.Constant(); constant && v == 0 {
					flags.HasZeroedBodyTranslation = true
				}
			case target == "head2" && channel == "ty" && arch.IsQuadruped:
				if negativeBaseline(value, tuning.Head2BaselineMax) {
					flags.HasNegativeHead2Baseline = true
				}
			}
		}
	}
	return flags
}

// negativeBaseline matches a numeric constant at or below limit, or an expression
// that starts with a minus sign directly followed by a digit.
func negativeBaseline(v ChannelValue, limit float64) bool {
	if v.IsNumber {
		return v.Number <= limit
	}
	expr := strings.TrimSpace(v.Expr)
	return len(expr) >= 2 && expr[0] == '-' && expr[1] >= '0' && expr[1] <= '9'
}

// semanticRule tags b when it matches. Rules are independent; a bone may match several.
type semanticRule func(b *Bone, parent string, ctx *semanticContext)

type semanticContext struct {
	arch        Archetype
	flags       RigFlags
	horseFamily bool
}

var boneRules = []semanticRule{
	func(b *Bone, _ string, _ *semanticContext) {
		if b.Name == "eyes" {
			b.MarkAbsoluteLocal("z")
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if b.Name == "body_rotation" && parent == "body" {
			b.MarkAbsolute("z")
			b.SetOriginHintY(0)
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if (b.Name == "left_eye" || b.Name == "right_eye") && (parent == "head2" || parent == "eyes") {
			b.MarkAbsoluteLocal("xyz")
			if origin, ok := b.Parent().PixelOrigin(); ok {
				b.SetOriginHintY(origin[1])
			}
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if b.Name == "mouth" && parent == "snout" {
			b.MarkAbsoluteLocal("xyz")
		}
	},
	func(b *Bone, parent string, ctx *semanticContext) {
		if ctx.arch.IsQuadruped && b.Name == "coat" && parent == "body" {
			b.MarkAbsolute("y")
			b.SetOriginHintY(0)
		}
	},
	func(b *Bone, parent string, ctx *semanticContext) {
		if !ctx.horseFamily || parent != "body" {
			return
		}
		switch b.Name {
		case "neck2":
			b.MarkAbsolute("yz")
			b.SetOriginHintY(0)
		case "tail2":
			b.MarkAbsolute("y")
			b.SetOriginHintY(0)
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if b.Name == "headpiece_neck" && parent == "saddle" {
			b.MarkAbsolute("yz")
			b.SetOriginHintY(0)
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if (b.Name == "snout2" && parent == "head2") ||
			(b.Name == "headpiece_snout" && parent == "headpiece_head") {
			b.MarkAbsoluteLocal("y")
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if strings.HasSuffix(b.Name, "_pupil") && (parent == "left_eye" || parent == "right_eye") {
			b.MarkAbsoluteLocal("xyz")
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if (b.Name == "nose" || b.Name == "tusks") && (parent == "head" || parent == "head2") {
			b.MarkAbsoluteLocal("y")
		}
	},
	func(b *Bone, parent string, _ *semanticContext) {
		if b.Name == "tail3" && parent == "body" {
			b.MarkAbsolute("yz")
			b.SetOriginHintY(0)
		}
	},
	func(b *Bone, parent string, ctx *semanticContext) {
		if !ctx.arch.IsQuadruped || b.Name != "head2" || parent != "body" {
			return
		}
		// Rigs with body_rotation express the same coupling through that bone.
		if b.Parent().Child("body_rotation") != nil || !ctx.flags.HasNegativeHead2Baseline {
			return
		}
		b.MarkAbsolute("xyz")
		b.SetOriginHintY(0)
	},
}

// TagSemantics annotates bones whose authored translation is an absolute pivot
// coordinate rather than an offset from the rest position.
func TagSemantics(m *Model, arch Archetype, flags RigFlags, tuning Tuning) {
	tagRigWide(m, arch, flags, tuning)

	ctx := &semanticContext{
		arch:        arch,
		flags:       flags,
		horseFamily: arch.IsQuadruped && m.HasBone("neck2"),
	}
	for _, b := range m.Bones() {
		parent := b.ParentName()
		for _, rule := range boneRules {
			rule(b, parent, ctx)
		}
	}
}

func tagRigWide(m *Model, arch Archetype, flags RigFlags, tuning Tuning) {
	for _, name := range arch.QuadrupedLegs() {
		if leg := m.Bone(name); leg != nil {
			leg.MarkAbsolute("xyz")
		}
	}

	if arch.IsQuadruped && !flags.HasZeroedBodyTranslation {
		if body := m.Bone("body"); body != nil {
			body.MarkAbsolute("xyz")
		}
	}

	if arch.HasHumanoidLimbs {
		for _, name := range []string{"left_arm", "right_arm"} {
			arm := m.Bone(name)
			if arm == nil {
				continue
			}
			arm.MarkAbsolute("x")
			if math.ToPixels(arm.Translation[1]) >= tuning.ArmPivotMinPixels {
				arm.MarkAbsolute("y")
			}
		}
	}
}

// SnapshotRestPositions records every bone's current local translation as its rest position.
func SnapshotRestPositions(m *Model) {
	for _, b := range m.Bones() {
		b.setMeta(MetaRestPosition, b.Translation)
	}
}
