package rig

import (
	"go.uber.org/zap"

	"github.com/Faultbox/packlens/pkg/math"
)

// SkipReason explains why a proposed link was not applied.
type SkipReason int

const (
	NotSkipped SkipReason = iota
	SkipMissingBone
	SkipAlreadyParented
	SkipWouldCycle
	SkipAncestorReference
	SkipParentReadsChild
	SkipDegenerateParent
	SkipShearedLocal
)

// trsTolerance bounds the error allowed when a reparented local transform is
// rebuilt from translation, rotation and scale.
const trsTolerance = 1e-7

// String returns a short reason name.
func (r SkipReason) String() string {
	switch r {
	case NotSkipped:
		return "reparented"
	case SkipMissingBone:
		return "missing bone"
	case SkipAlreadyParented:
		return "already parented"
	case SkipWouldCycle:
		return "would create cycle"
	case SkipAncestorReference:
		return "child animation reads ancestor"
	case SkipParentReadsChild:
		return "parent animation reads child translation"
	case SkipDegenerateParent:
		return "parent transform not invertible"
	case SkipShearedLocal:
		return "local transform would need shear"
	default:
		return "unknown"
	}
}

// IsGuard reports whether the reason is one of the double-transform guards.
func (r SkipReason) IsGuard() bool {
	return r == SkipAncestorReference || r == SkipParentReadsChild
}

// Outcome is the result of one proposed link.
type Outcome struct {
	Link
	Reason SkipReason
	// Reference is the bone whose read triggered a guard.
	Reference string
}

// Reparented reports whether the link was applied.
func (o Outcome) Reparented() bool {
	return o.Reason == NotSkipped
}

// ReparentReport lists the outcome of every link in a plan, in plan order.
type ReparentReport struct {
	Outcomes []Outcome
}

// Reparented returns the links that were applied.
func (r *ReparentReport) Reparented() []Link {
	var links []Link
	for _, o := range r.Outcomes {
		if o.Reparented() {
			links = append(links, o.Link)
		}
	}
	return links
}

// Skipped returns the outcomes that were skipped for reason.
func (r *ReparentReport) Skipped(reason SkipReason) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Reason == reason {
			out = append(out, o)
		}
	}
	return out
}

// GuardSkips returns the outcomes blocked by a double-transform guard.
func (r *ReparentReport) GuardSkips() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Reason.IsGuard() {
			out = append(out, o)
		}
	}
	return out
}

// ApplyHierarchy reparents bones according to plan while keeping every moved
// bone's world transform. Unsafe or unresolvable links are skipped.
func ApplyHierarchy(m *Model, plan HierarchyPlan, refs *References) *ReparentReport {
	report := &ReparentReport{}

	for _, link := range plan.Links {
		outcome := applyLink(m, plan, refs, link)
		report.Outcomes = append(report.Outcomes, outcome)

		if outcome.Reparented() {
			log().Debug("reparented bone",
				zap.String("child", link.Child),
				zap.String("parent", link.Parent))
			continue
		}
		log().Debug("skipped reparent",
			zap.String("child", link.Child),
			zap.String("parent", link.Parent),
			zap.Stringer("reason", outcome.Reason),
			zap.String("reference", outcome.Reference))
	}

	return report
}

func applyLink(m *Model, plan HierarchyPlan, refs *References, link Link) Outcome {
	out := Outcome{Link: link}

	child, parent := m.Bone(link.Child), m.Bone(link.Parent)
	switch {
	case child == nil || parent == nil:
		out.Reason = SkipMissingBone
		return out
	case child.Parent() == parent:
		out.Reason = SkipAlreadyParented
		return out
	case parent == child || parent.IsDescendantOf(child):
		out.Reason = SkipWouldCycle
		return out
	case parent.WorldMatrix().Det() == 0:
		out.Reason = SkipDegenerateParent
		return out
	}

	if !plan.SkipSafetyChecks {
		if refs.IsAnimated(link.Child) {
			chain := plan.Links.AncestorChain(link.Parent)
			if ref, ok := refs.FirstReadOf(link.Child, chain); ok {
				out.Reason = SkipAncestorReference
				out.Reference = ref
				return out
			}
		}
		if refs.ReadsTranslation(link.Parent, link.Child) {
			out.Reason = SkipParentReadsChild
			out.Reference = link.Child
			return out
		}
	}

	if !ReparentKeepWorld(child, parent) {
		out.Reason = SkipShearedLocal
		return out
	}
	child.setMeta(MetaVanillaPart, true)
	parent.setMeta(MetaVanillaPart, true)
	return out
}

// ReparentKeepWorld moves child under parent and rewrites its local transform
// so its world transform is unchanged. It leaves the tree alone and returns
// false when the required local transform has shear, as under a non-uniformly
// scaled parent with a rotated child.
func ReparentKeepWorld(child, parent *Bone) bool {
	local := parent.WorldMatrix().Inv().Mul4(child.WorldMatrix())
	if !math.IsTRS(local, trsTolerance) {
		return false
	}
	parent.AddChild(child)
	child.SetLocalMatrix(local)
	return true
}
