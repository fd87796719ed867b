package formats

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Rig document errors.
var (
	ErrInvalidRigJSON      = errors.New("invalid rig document JSON")
	ErrMissingBones        = errors.New("rig document has no bones")
	ErrUnnamedBone         = errors.New("rig document bone has no name")
	ErrInvalidVector       = errors.New("invalid vector")
	ErrInvalidChannelValue = errors.New("invalid animation channel value")
)

// RigDocument is the JSON interchange form of a parsed entity model.
type RigDocument struct {
	Entity     string
	Bones      []BoneDoc
	Animations []map[string]AnimValue
}

// BoneDoc is one bone of a rig document. Translations are in model units.
type BoneDoc struct {
	Name        string
	Translate   [3]float64
	Rotate      [3]float64 // degrees
	Scale       [3]float64
	PixelOrigin *[3]float64
	Boxes       []BoxDoc
	Children    []BoneDoc
}

// BoxDoc is a geometry box.
type BoxDoc struct {
	Origin [3]float64
	Size   [3]float64
	UV     [2]float64
}

// AnimValue is an animation channel value: a number or an expression string.
type AnimValue struct {
	Expr     string
	Number   float64
	IsNumber bool
}

// ParseRigDocument parses a rig document from JSON.
func ParseRigDocument(data []byte) (*RigDocument, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidRigJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrInvalidRigJSON
	}

	doc := &RigDocument{Entity: root.Get("entity").String()}

	bones := root.Get("bones")
	if !bones.IsArray() || len(bones.Array()) == 0 {
		return nil, ErrMissingBones
	}
	for i, b := range bones.Array() {
		bone, err := parseBoneDoc(b)
		if err != nil {
			return nil, fmt.Errorf("bone %d: %w", i, err)
		}
		doc.Bones = append(doc.Bones, bone)
	}

	anims := root.Get("animations")
	switch {
	case anims.IsArray():
		for i, layer := range anims.Array() {
			parsed, err := parseLayer(layer)
			if err != nil {
				return nil, fmt.Errorf("animation layer %d: %w", i, err)
			}
			doc.Animations = append(doc.Animations, parsed)
		}
	case anims.IsObject():
		// A single layer may be written without the surrounding array.
		parsed, err := parseLayer(anims)
		if err != nil {
			return nil, fmt.Errorf("animation layer 0: %w", err)
		}
		doc.Animations = append(doc.Animations, parsed)
	}

	return doc, nil
}

// ParseRigDocumentFile parses a rig document from disk.
func ParseRigDocumentFile(path string) (*RigDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rig document: %w", err)
	}
	return ParseRigDocument(data)
}

func parseBoneDoc(v gjson.Result) (BoneDoc, error) {
	bone := BoneDoc{
		Name:  v.Get("name").String(),
		Scale: [3]float64{1, 1, 1},
	}
	if bone.Name == "" {
		return bone, ErrUnnamedBone
	}

	var err error
	if bone.Translate, err = readVec3(v, "translate", bone.Translate); err != nil {
		return bone, fmt.Errorf("%s: %w", bone.Name, err)
	}
	if bone.Rotate, err = readVec3(v, "rotate", bone.Rotate); err != nil {
		return bone, fmt.Errorf("%s: %w", bone.Name, err)
	}
	if bone.Scale, err = readVec3(v, "scale", bone.Scale); err != nil {
		return bone, fmt.Errorf("%s: %w", bone.Name, err)
	}
	if v.Get("pixelOrigin").Exists() {
		origin, err := readVec3(v, "pixelOrigin", [3]float64{})
		if err != nil {
			return bone, fmt.Errorf("%s: %w", bone.Name, err)
		}
		bone.PixelOrigin = &origin
	}

	for _, box := range v.Get("boxes").Array() {
		var b BoxDoc
		if b.Origin, err = readVec3(box, "origin", b.Origin); err != nil {
			return bone, fmt.Errorf("%s box: %w", bone.Name, err)
		}
		if b.Size, err = readVec3(box, "size", b.Size); err != nil {
			return bone, fmt.Errorf("%s box: %w", bone.Name, err)
		}
		if uv := box.Get("uv").Array(); len(uv) == 2 {
			b.UV = [2]float64{uv[0].Float(), uv[1].Float()}
		}
		bone.Boxes = append(bone.Boxes, b)
	}

	for _, c := range v.Get("children").Array() {
		child, err := parseBoneDoc(c)
		if err != nil {
			return bone, fmt.Errorf("%s: %w", bone.Name, err)
		}
		bone.Children = append(bone.Children, child)
	}

	return bone, nil
}

// readVec3 reads a 3-number array at key, returning def when the key is absent.
func readVec3(v gjson.Result, key string, def [3]float64) ([3]float64, error) {
	r := v.Get(key)
	if !r.Exists() {
		return def, nil
	}
	arr := r.Array()
	if !r.IsArray() || len(arr) != 3 {
		return def, fmt.Errorf("%w: %s", ErrInvalidVector, key)
	}
	var out [3]float64
	for i, n := range arr {
		if n.Type != gjson.Number {
			return def, fmt.Errorf("%w: %s[%d]", ErrInvalidVector, key, i)
		}
		out[i] = n.Float()
	}
	return out, nil
}

func parseLayer(v gjson.Result) (map[string]AnimValue, error) {
	layer := make(map[string]AnimValue)
	var err error
	v.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Number:
			layer[key.String()] = AnimValue{Number: value.Float(), IsNumber: true}
		case gjson.String:
			layer[key.String()] = AnimValue{Expr: value.String()}
		default:
			err = fmt.Errorf("%w: %s", ErrInvalidChannelValue, key.String())
			return false
		}
		return true
	})
	return layer, err
}
