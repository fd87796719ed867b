package rig

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/Faultbox/packlens/pkg/formats"
)

const sampleDoc = `{
	"entity": "minecraft:player",
	"bones": [
		{"name": "body", "translate": [0, 1.5, 0], "boxes": [{"origin": [-4, 0, -2], "size": [8, 12, 4], "uv": [16, 16]}]},
		{"name": "jacket", "translate": [0, 1.5, 0], "boxes": [{"origin": [-4, 0, -2], "size": [8, 12, 4]}]},
		{"name": "left_arm", "translate": [0.3125, 1.375, 0]},
		{"name": "right_arm", "translate": [-0.3125, 1.375, 0]},
		{"name": "left_leg", "translate": [0.125, 0.75, 0]},
		{"name": "right_leg", "translate": [-0.125, 0.75, 0]},
		{"name": "head", "translate": [0, 1.5, 0], "pixelOrigin": [0, 24, 0], "children": [
			{"name": "hat", "scale": [1.1, 1.1, 1.1]}
		]}
	],
	"animations": [{"left_arm.rx": "sin(age) * 20", "head.ry": 15}]
}`

func TestFromDocument(t *testing.T) {
	doc, err := formats.ParseRigDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseRigDocument: %v", err)
	}

	m := FromDocument(doc)

	if m.EntityID != "minecraft:player" {
		t.Errorf("EntityID = %q", m.EntityID)
	}
	if got := len(m.Roots()); got != 7 {
		t.Errorf("roots = %d, want 7", got)
	}
	hat := m.Bone("hat")
	if hat == nil || hat.ParentName() != "head" {
		t.Fatal("hat should be nested under head")
	}
	if hat.Scale[0] != 1.1 {
		t.Errorf("hat scale = %v", hat.Scale)
	}
	if origin, ok := m.Bone("head").PixelOrigin(); !ok || origin[1] != 24 {
		t.Errorf("head pixel origin = %v, %v", origin, ok)
	}
	body := m.Bone("body")
	if !body.HasGeometry() || body.Boxes[0].UV != [2]float64{16, 16} {
		t.Errorf("body boxes = %+v", body.Boxes)
	}
	if len(m.Layers) != 1 {
		t.Fatalf("layers = %d, want 1", len(m.Layers))
	}
	if v := m.Layers[0]["head.ry"]; !v.IsNumber || v.Number != 15 {
		t.Errorf("head.ry = %+v", v)
	}
	if v := m.Layers[0]["left_arm.rx"]; v.IsNumber || v.Expr != "sin(age) * 20" {
		t.Errorf("left_arm.rx = %+v", v)
	}
}

func TestDumpJSON(t *testing.T) {
	doc, err := formats.ParseRigDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseRigDocument: %v", err)
	}
	m := FromDocument(doc)
	Prepare(m, Options{})

	out, err := DumpJSON(m)
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	if !gjson.ValidBytes(out) {
		t.Fatalf("invalid JSON: %s", out)
	}

	res := gjson.ParseBytes(out)
	if got := res.Get("entity").String(); got != "minecraft:player" {
		t.Errorf("entity = %q", got)
	}
	if got := res.Get("bones.#").Int(); got != 6 {
		t.Errorf("top-level bones = %d, want 6", got)
	}

	body := res.Get(`bones.#(name=="body")`)
	if got := body.Get("children.0.name").String(); got != "jacket" {
		t.Errorf("body child = %q, want jacket", got)
	}
	if !body.Get("vanillaPart").Bool() || !body.Get("hasGeometry").Bool() {
		t.Errorf("body = %s", body.Raw)
	}

	arm := res.Get(`bones.#(name=="left_arm")`)
	if got := arm.Get(MetaAbsoluteAxes).String(); got != "xy" {
		t.Errorf("left_arm axes = %q, want xy", got)
	}
	if got := arm.Get("restPosition.1").Float(); got != 1.375 {
		t.Errorf("left_arm rest y = %v", got)
	}
	if arm.Get(MetaAbsoluteSpace).Exists() {
		t.Error("arm translation space should be omitted")
	}

	hat := res.Get(`bones.#(name=="head").children.0`)
	if got := hat.Get("scale.0").Float(); got != 1.1 {
		t.Errorf("hat scale = %v", got)
	}
	if hat.Get("vanillaPart").Exists() {
		t.Error("untouched bones omit vanillaPart")
	}
}

func TestDumpJSONEmptyModel(t *testing.T) {
	out, err := DumpJSON(NewModel())
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	if got := string(out); got != `{"bones":[]}` {
		t.Errorf("DumpJSON = %s", got)
	}
}
