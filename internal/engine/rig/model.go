package rig

import (
	"sort"
	"strconv"
	"strings"
)

// Pseudo-bone targets used by animation scripts. They never exist in the tree.
const (
	targetVar    = "var"
	targetRender = "render"
	targetVarB   = "varb"
)

// ChannelValue is a channel's authored value: a numeric constant or an expression.
type ChannelValue struct {
	Expr     string
	Number   float64
	IsNumber bool
}

// Number returns a constant channel value.
func Number(v float64) ChannelValue {
	return ChannelValue{Number: v, IsNumber: true}
}

// Expr returns an expression channel value.
func Expr(s string) ChannelValue {
	return ChannelValue{Expr: s}
}

// Constant returns the value when it is a numeric constant or an expression that
// is nothing but a number literal.
func (v ChannelValue) Constant() (float64, bool) {
	if v.IsNumber {
		return v.Number, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Expr), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String returns the value as authored text.
func (v ChannelValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Expr
}

// AnimationLayer maps "<bone>.<channel>" keys to channel values.
type AnimationLayer map[string]ChannelValue

// SplitChannelKey splits "head.rx" into its target bone and channel.
func SplitChannelKey(key string) (target, channel string, ok bool) {
	target, channel, ok = strings.Cut(key, ".")
	if !ok || target == "" || channel == "" {
		return "", "", false
	}
	return target, channel, true
}

// IsTranslationChannel reports whether channel is tx, ty or tz.
func IsTranslationChannel(channel string) bool {
	return channel == "tx" || channel == "ty" || channel == "tz"
}

// Model is a parsed entity model: a bone tree plus its animation layers.
type Model struct {
	EntityID string
	Layers   []AnimationLayer

	root *Bone
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{root: &Bone{root: true}}
}

// AddRoot attaches b as a top-level bone, detaching it from any parent.
func (m *Model) AddRoot(b *Bone) {
	m.ensureRoot().AddChild(b)
}

// Roots returns the top-level bones.
func (m *Model) Roots() []*Bone {
	return m.ensureRoot().Children()
}

// TopLevelNames returns the set of top-level bone names.
func (m *Model) TopLevelNames() map[string]bool {
	names := make(map[string]bool)
	for _, b := range m.Roots() {
		names[b.Name] = true
	}
	return names
}

// Walk visits every bone depth-first in authored order.
func (m *Model) Walk(fn func(*Bone) bool) {
	for _, b := range m.Roots() {
		b.Walk(fn)
	}
}

// Bones returns every bone in depth-first order.
func (m *Model) Bones() []*Bone {
	var out []*Bone
	m.Walk(func(b *Bone) bool {
		out = append(out, b)
		return true
	})
	return out
}

// Bone returns the first bone with the given name anywhere in the tree.
func (m *Model) Bone(name string) *Bone {
	var found *Bone
	m.Walk(func(b *Bone) bool {
		if found != nil {
			return false
		}
		if b.Name == name {
			found = b
			return false
		}
		return true
	})
	return found
}

// HasBone reports whether a bone with the given name exists.
func (m *Model) HasBone(name string) bool {
	return m.Bone(name) != nil
}

// uniqueName returns base, or base with a numeric suffix when base is taken.
func (m *Model) uniqueName(base string) string {
	if !m.HasBone(base) {
		return base
	}
	for i := 2; ; i++ {
		name := base + "_" + strconv.Itoa(i)
		if !m.HasBone(name) {
			return name
		}
	}
}

func (m *Model) ensureRoot() *Bone {
	if m.root == nil {
		m.root = &Bone{root: true}
	}
	return m.root
}

func sortedKeys[V any](set map[string]V) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
