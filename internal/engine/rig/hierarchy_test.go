package rig

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func humanoidModel() *Model {
	return newTestModel(
		bone("head", at(0, 1.5, 0), withBox()),
		bone("headwear", at(0, 1.5, 0), withBox()),
		bone("body", at(0, 1.5, 0), withBox()),
		bone("jacket", at(0, 1.5, 0), withBox()),
		bone("left_arm", at(0.3125, 1.375, 0), withBox()),
		bone("right_arm", at(-0.3125, 1.375, 0), withBox()),
		bone("left_sleeve", at(0.3125, 1.375, 0), withBox()),
		bone("right_sleeve", at(-0.3125, 1.375, 0), withBox()),
		bone("left_leg", at(0.125, 0.75, 0), withBox()),
		bone("right_leg", at(-0.125, 0.75, 0), withBox()),
	)
}

func TestResolveHierarchyExtracted(t *testing.T) {
	m := newTestModel(bone("body"), bone("head"), bone("jacket"), bone("saddle"))
	table := HierarchyTable{
		"minecraft:pig": {
			"jacket": "body",
			"head":   "body",
			"saddle": "",
			"tail":   "body",
			"body":   "body",
		},
	}

	plan := ResolveHierarchy(m, DetectArchetype(m), "pig", table, DefaultTuning())

	want := ParentMap{{"head", "body"}, {"jacket", "body"}}
	if !reflect.DeepEqual(plan.Links, want) {
		t.Errorf("Links = %v, want %v", plan.Links, want)
	}
	if plan.Source != SourceExtracted {
		t.Errorf("Source = %v, want extracted", plan.Source)
	}
	if !plan.Authoritative || !plan.SkipSafetyChecks {
		t.Errorf("extracted plan should be authoritative and skip checks: %+v", plan)
	}
}

func TestResolveHierarchyExtractedInheritedRig(t *testing.T) {
	m := newTestModel(bone("body"), bone("left_arm"), bone("right_arm"))
	table := HierarchyTable{"allay": {"left_arm": "body", "right_arm": "body"}}

	plan := ResolveHierarchy(m, DetectArchetype(m), "minecraft:allay", table, DefaultTuning())

	if plan.Source != SourceExtracted {
		t.Fatalf("Source = %v, want extracted", plan.Source)
	}
	if plan.Authoritative {
		t.Error("arms-only rigs are not authoritative")
	}
	if !plan.SkipSafetyChecks {
		t.Error("extracted plans skip safety checks")
	}
}

func TestResolveHierarchyFallsBackWhenExtractedIsUnusable(t *testing.T) {
	m := humanoidModel()
	table := HierarchyTable{"zombie": {"cape": "body"}}

	plan := ResolveHierarchy(m, DetectArchetype(m), "zombie", table, DefaultTuning())

	if plan.Source != SourceHumanoid {
		t.Errorf("Source = %v, want humanoid", plan.Source)
	}
	if plan.Authoritative || plan.SkipSafetyChecks {
		t.Errorf("humanoid heuristic should be checked and non-authoritative: %+v", plan)
	}
}

func TestResolveHierarchyHeuristics(t *testing.T) {
	tests := []struct {
		name   string
		model  *Model
		source PlanSource
		links  ParentMap
		skip   bool
	}{
		{
			name:   "humanoid",
			model:  humanoidModel(),
			source: SourceHumanoid,
			links: ParentMap{
				{"headwear", "head"},
				{"jacket", "body"},
				{"left_ear", "head"},
				{"right_ear", "head"},
				{"left_sleeve", "left_arm"},
				{"right_sleeve", "right_arm"},
				{"left_pants", "left_leg"},
				{"right_pants", "right_leg"},
			},
		},
		{
			name:   "humanoid without headwear",
			model:  newTestModel(namedBones("body", "left_arm", "right_arm", "left_leg", "right_leg")...),
			source: SourceHumanoid,
			links: ParentMap{
				{"jacket", "body"},
				{"left_ear", "head"},
				{"right_ear", "head"},
				{"left_sleeve", "left_arm"},
				{"right_sleeve", "right_arm"},
				{"left_pants", "left_leg"},
				{"right_pants", "right_leg"},
			},
		},
		{
			name:   "arms only",
			model:  newTestModel(namedBones("body", "left_arm", "right_arm")...),
			source: SourceArmsOnly,
			links:  ParentMap{{"left_arm", "body"}, {"right_arm", "body"}},
			skip:   true,
		},
		{
			name:   "villager",
			model:  newTestModel(namedBones("head", "nose", "body", "arms", "left_leg", "right_leg")...),
			source: SourceVillager,
			links:  ParentMap{{"nose", "head"}},
			skip:   true,
		},
		{
			name:   "quadruped",
			model:  newTestModel(namedBones("body", "head", "leg1", "leg2", "leg3", "leg4", "saddle")...),
			source: SourceQuadruped,
			links:  ParentMap{{"saddle", "body"}},
		},
		{
			name:   "unknown",
			model:  newTestModel(namedBones("base", "lid")...),
			source: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ResolveHierarchy(tt.model, DetectArchetype(tt.model), "", nil, DefaultTuning())
			if plan.Source != tt.source {
				t.Errorf("Source = %v, want %v", plan.Source, tt.source)
			}
			if !reflect.DeepEqual(plan.Links, tt.links) {
				t.Errorf("Links = %v, want %v", plan.Links, tt.links)
			}
			if plan.SkipSafetyChecks != tt.skip {
				t.Errorf("SkipSafetyChecks = %v, want %v", plan.SkipSafetyChecks, tt.skip)
			}
			if plan.Authoritative {
				t.Error("heuristic plans are never authoritative")
			}
		})
	}
}

func TestVillagerHeadSwap(t *testing.T) {
	head := bone("head", at(0, 1.5, 0), rotated(5, 0, 0))
	headwear := bone("headwear", at(0, 1.6, 0.1), withBox())
	m := newTestModel(head, headwear,
		bone("body", withBox()), bone("arms", withBox()),
		bone("left_leg", withBox()), bone("right_leg", withBox()))
	wantBoxes := headwear.Boxes

	res := Prepare(m, Options{})

	if res.Plan.SwappedHead != "head_pivot" {
		t.Errorf("SwappedHead = %q, want head_pivot", res.Plan.SwappedHead)
	}
	newHead := m.Bone("head")
	if newHead == nil {
		t.Fatal("no bone named head after swap")
	}
	if !reflect.DeepEqual(newHead.Boxes, wantBoxes) {
		t.Error("head should carry the former headwear geometry")
	}
	pivot := m.Bone("head_pivot")
	if pivot != head {
		t.Fatal("pivot should be the former head bone")
	}
	if pivot.HasGeometry() {
		t.Error("pivot should stay empty")
	}
	if pivot.Translation != (mgl64.Vec3{0, 1.5, 0}) || pivot.Rotation[0] != 5 {
		t.Errorf("pivot transform changed: t=%v r=%v", pivot.Translation, pivot.Rotation)
	}
	if m.HasBone("headwear") {
		t.Error("headwear name should be gone")
	}
}

func TestVillagerHeadSwapNeedsEmptyHead(t *testing.T) {
	m := newTestModel(
		bone("head", withBox()), bone("headwear", withBox()),
		bone("arms"), bone("left_leg"), bone("right_leg"))

	plan := ResolveHierarchy(m, DetectArchetype(m), "", nil, DefaultTuning())

	if plan.SwappedHead != "" {
		t.Errorf("unexpected swap to %q", plan.SwappedHead)
	}
	want := ParentMap{{"headwear", "head"}}
	if !reflect.DeepEqual(plan.Links, want) {
		t.Errorf("Links = %v, want %v", plan.Links, want)
	}
}

func TestVillagerHeadSwapAvoidsTakenPivotName(t *testing.T) {
	m := newTestModel(
		bone("head"), bone("headwear", withBox()), bone("head_pivot"),
		bone("arms"), bone("left_leg"), bone("right_leg"))

	plan := ResolveHierarchy(m, DetectArchetype(m), "", nil, DefaultTuning())

	if plan.SwappedHead != "head_pivot_2" {
		t.Errorf("SwappedHead = %q, want head_pivot_2", plan.SwappedHead)
	}
}

func TestHierarchyTableLookup(t *testing.T) {
	table := HierarchyTable{
		"minecraft:cow": {"head": "body"},
		"sheep":         {"wool": "body"},
	}

	tests := []struct {
		id string
		ok bool
	}{
		{"minecraft:cow", true},
		{"cow", true},
		{"sheep", true},
		{"minecraft:sheep", true},
		{"pig", false},
		{"", false},
	}

	for _, tt := range tests {
		if _, ok := table.Lookup(tt.id); ok != tt.ok {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.id, ok, tt.ok)
		}
	}
}

func TestAncestorChain(t *testing.T) {
	links := ParentMap{{"c", "b"}, {"b", "a"}, {"x", "y"}, {"y", "x"}}

	if got, want := links.AncestorChain("c"), []string{"c", "b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AncestorChain(c) = %v, want %v", got, want)
	}
	if got, want := links.AncestorChain("x"), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AncestorChain(x) = %v, want %v", got, want)
	}
	if got, want := links.AncestorChain("a"), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AncestorChain(a) = %v, want %v", got, want)
	}
}
