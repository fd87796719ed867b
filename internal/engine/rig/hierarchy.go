package rig

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Link proposes making Child a child of Parent.
type Link struct {
	Child  string
	Parent string
}

// ParentMap is an ordered list of proposed child→parent links.
type ParentMap []Link

// ParentOf returns the proposed parent of child.
func (p ParentMap) ParentOf(child string) (string, bool) {
	for _, l := range p {
		if l.Child == child {
			return l.Parent, true
		}
	}
	return "", false
}

// AncestorChain returns start followed by its ancestors as proposed by the map.
// A cycle in the map ends the chain.
func (p ParentMap) AncestorChain(start string) []string {
	chain := []string{start}
	visited := map[string]bool{start: true}
	for cur := start; ; {
		next, ok := p.ParentOf(cur)
		if !ok || visited[next] {
			return chain
		}
		visited[next] = true
		chain = append(chain, next)
		cur = next
	}
}

// HierarchySource provides ground-truth parent maps keyed by entity id.
// An empty parent name means the bone is top-level.
type HierarchySource interface {
	Lookup(entityID string) (map[string]string, bool)
}

// HierarchyTable is an in-memory HierarchySource.
type HierarchyTable map[string]map[string]string

// Lookup returns the table for entityID. A "minecraft:" namespace is optional on either side.
func (t HierarchyTable) Lookup(entityID string) (map[string]string, bool) {
	if entityID == "" {
		return nil, false
	}
	if parents, ok := t[entityID]; ok {
		return parents, true
	}
	bare := strings.TrimPrefix(entityID, "minecraft:")
	if parents, ok := t[bare]; ok {
		return parents, true
	}
	parents, ok := t["minecraft:"+bare]
	return parents, ok
}

// PlanSource names where a hierarchy plan came from.
type PlanSource int

const (
	SourceNone PlanSource = iota
	SourceExtracted
	SourceHumanoid
	SourceArmsOnly
	SourceVillager
	SourceQuadruped
)

// String returns a human-readable source name.
func (s PlanSource) String() string {
	switch s {
	case SourceExtracted:
		return "extracted"
	case SourceHumanoid:
		return "humanoid"
	case SourceArmsOnly:
		return "arms-only"
	case SourceVillager:
		return "villager"
	case SourceQuadruped:
		return "quadruped"
	default:
		return "none"
	}
}

// HierarchyPlan is the resolved parent map and how strictly to apply it.
type HierarchyPlan struct {
	Links  ParentMap
	Source PlanSource
	// Authoritative plans come from ground-truth data.
	Authoritative bool
	// SkipSafetyChecks disables the double-transform guards.
	SkipSafetyChecks bool
	// SwappedHead is the pivot name given to an empty villager head, if swapped.
	SwappedHead string
}

// ResolveHierarchy picks extracted data for entityID when usable and falls back
// to archetype heuristics otherwise. The villager heuristic may rename bones in m.
func ResolveHierarchy(m *Model, arch Archetype, entityID string, source HierarchySource, tuning Tuning) HierarchyPlan {
	// These rigs depend on strict inherited hierarchy whatever the source.
	inheritedRig := arch.HasArmsOnly || arch.HasVillagerLimbs

	if source != nil {
		if parents, ok := source.Lookup(entityID); ok && len(parents) > 0 {
			links := filterExtracted(m, parents)
			if len(links) > 0 {
				log().Debug("using extracted hierarchy",
					zap.String("entity", entityID),
					zap.Int("links", len(links)),
					zap.Int("dropped", len(parents)-len(links)))
				return HierarchyPlan{
					Links:            links,
					Source:           SourceExtracted,
					Authoritative:    !inheritedRig,
					SkipSafetyChecks: true,
				}
			}
		}
	}

	plan := HierarchyPlan{SkipSafetyChecks: inheritedRig}
	switch {
	case arch.HasHumanoidLimbs:
		plan.Source = SourceHumanoid
		plan.Links = humanoidLinks(m)
	case arch.HasArmsOnly:
		plan.Source = SourceArmsOnly
		plan.Links = ParentMap{{"left_arm", "body"}, {"right_arm", "body"}}
	case arch.HasVillagerLimbs:
		plan.Source = SourceVillager
		plan.SwappedHead = swapVillagerHead(m, tuning.HeadPivotName)
		plan.Links = villagerLinks(m)
	case arch.IsQuadruped:
		plan.Source = SourceQuadruped
		plan.Links = ParentMap{{"saddle", "body"}}
	}

	log().Debug("using heuristic hierarchy",
		zap.Stringer("source", plan.Source),
		zap.Stringer("archetype", arch),
		zap.Int("links", len(plan.Links)))

	return plan
}

// filterExtracted keeps entries whose child and parent both exist, sorted by child.
func filterExtracted(m *Model, parents map[string]string) ParentMap {
	var links ParentMap
	for child, parent := range parents {
		if parent == "" || parent == child {
			continue
		}
		if !m.HasBone(child) || !m.HasBone(parent) {
			continue
		}
		links = append(links, Link{Child: child, Parent: parent})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Child < links[j].Child })
	return links
}

// humanoidLinks parents overlay bones to their base part. Limbs stay where they are.
func humanoidLinks(m *Model) ParentMap {
	var links ParentMap
	if m.HasBone("headwear") {
		links = append(links, Link{"headwear", "head"})
	}
	return append(links,
		Link{"jacket", "body"},
		Link{"left_ear", "head"},
		Link{"right_ear", "head"},
		Link{"left_sleeve", "left_arm"},
		Link{"right_sleeve", "right_arm"},
		Link{"left_pants", "left_leg"},
		Link{"right_pants", "right_leg"},
	)
}

func villagerLinks(m *Model) ParentMap {
	var links ParentMap
	if m.HasBone("headwear") {
		links = append(links, Link{"headwear", "head"})
	}
	if m.HasBone("nose") {
		links = append(links, Link{"nose", "head"})
	}
	return links
}

// swapVillagerHead repairs rigs whose face geometry sits under "headwear" while
// "head" is an empty pivot. It returns the pivot's new name, or "" if nothing changed.
func swapVillagerHead(m *Model, pivotName string) string {
	head := m.Bone("head")
	headwear := m.Bone("headwear")
	if head == nil || headwear == nil || head.HasGeometry() || !headwear.HasGeometry() {
		return ""
	}
	if pivotName == "" {
		pivotName = DefaultTuning().HeadPivotName
	}

	head.Name = m.uniqueName(pivotName)
	headwear.Name = "head"

	log().Debug("swapped villager head",
		zap.String("pivot", head.Name))
	return head.Name
}
