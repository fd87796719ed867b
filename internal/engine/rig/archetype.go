package rig

import "strings"

var (
	numberedLegs = []string{"leg1", "leg2", "leg3", "leg4"}
	namedLegs    = []string{"front_left_leg", "front_right_leg", "back_left_leg", "back_right_leg"}
)

// Archetype classifies a rig by the names of its top-level bones.
// The flags are independent facts, not a single category.
type Archetype struct {
	HasBody          bool
	HasHumanoidLimbs bool
	HasArmsOnly      bool
	HasVillagerLimbs bool
	IsQuadruped      bool

	numberedLegs bool
	namedLegs    bool
}

// DetectArchetype classifies m from its top-level bones.
func DetectArchetype(m *Model) Archetype {
	return ClassifyNames(m.TopLevelNames())
}

// ClassifyNames classifies a rig from a set of top-level bone names.
func ClassifyNames(names map[string]bool) Archetype {
	hasAll := func(bones ...string) bool {
		for _, b := range bones {
			if !names[b] {
				return false
			}
		}
		return true
	}

	arms := hasAll("left_arm", "right_arm")
	legs := hasAll("left_leg", "right_leg")
	shoes := hasAll("left_shoe", "right_shoe")

	a := Archetype{
		HasBody:          names["body"],
		HasHumanoidLimbs: arms && (legs || shoes),
		HasArmsOnly:      arms && !legs && !shoes,
		HasVillagerLimbs: names["arms"] && legs,
		numberedLegs:     hasAll(numberedLegs...),
		namedLegs:        hasAll(namedLegs...),
	}

	// Six-legged rigs author leg translations differently.
	middleLegs := hasAll("middle_left_leg", "middle_right_leg")
	a.IsQuadruped = (a.numberedLegs || a.namedLegs) && !middleLegs

	return a
}

// QuadrupedLegs returns the leg bone names that classified the rig as a quadruped.
func (a Archetype) QuadrupedLegs() []string {
	if !a.IsQuadruped {
		return nil
	}
	var legs []string
	if a.numberedLegs {
		legs = append(legs, numberedLegs...)
	}
	if a.namedLegs {
		legs = append(legs, namedLegs...)
	}
	return legs
}

// String lists the set flags, or "none".
func (a Archetype) String() string {
	var flags []string
	if a.HasBody {
		flags = append(flags, "body")
	}
	if a.HasHumanoidLimbs {
		flags = append(flags, "humanoid")
	}
	if a.HasArmsOnly {
		flags = append(flags, "arms-only")
	}
	if a.HasVillagerLimbs {
		flags = append(flags, "villager")
	}
	if a.IsQuadruped {
		flags = append(flags, "quadruped")
	}
	if len(flags) == 0 {
		return "none"
	}
	return strings.Join(flags, ",")
}
