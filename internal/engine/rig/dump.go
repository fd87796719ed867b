package rig

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// DumpJSON serializes the bone tree with its transform tags.
func DumpJSON(m *Model) ([]byte, error) {
	out := []byte(`{"bones":[]}`)
	var err error
	if m.EntityID != "" {
		if out, err = sjson.SetBytes(out, "entity", m.EntityID); err != nil {
			return nil, err
		}
	}

	for _, b := range m.Roots() {
		bone, err := dumpBone(b)
		if err != nil {
			return nil, fmt.Errorf("dumping %s: %w", b.Name, err)
		}
		if out, err = sjson.SetRawBytes(out, "bones.-1", bone); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type dumpField struct {
	path  string
	value any
}

func dumpBone(b *Bone) ([]byte, error) {
	fields := []dumpField{
		{"name", b.Name},
		{"translate", b.Translation[:]},
		{"rotate", b.Rotation[:]},
		{"scale", b.Scale[:]},
		{"hasGeometry", b.HasGeometry()},
	}
	if axes := b.AbsoluteAxes(); axes != "" {
		fields = append(fields, dumpField{MetaAbsoluteAxes, axes})
	}
	if space, ok := b.Meta.String(MetaAbsoluteSpace); ok {
		fields = append(fields, dumpField{MetaAbsoluteSpace, space})
	}
	if hint, ok := b.Meta.Float(MetaOriginHintY); ok {
		fields = append(fields, dumpField{MetaOriginHintY, hint})
	}
	if b.IsVanillaPart() {
		fields = append(fields, dumpField{MetaVanillaPart, true})
	}
	if rest, ok := b.RestPosition(); ok {
		fields = append(fields, dumpField{MetaRestPosition, rest[:]})
	}

	out := []byte(`{"children":[]}`)
	var err error
	for _, f := range fields {
		if out, err = sjson.SetBytes(out, f.path, f.value); err != nil {
			return nil, err
		}
	}

	for _, c := range b.Children() {
		child, err := dumpBone(c)
		if err != nil {
			return nil, fmt.Errorf("dumping %s: %w", c.Name, err)
		}
		if out, err = sjson.SetRawBytes(out, "children.-1", child); err != nil {
			return nil, err
		}
	}
	return out, nil
}
