package rig

// NameSet is a set of bone names.
type NameSet map[string]struct{}

// Add inserts name into the set.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	return sortedKeys(s)
}

// References records which bones are animated and which other bones each
// animated bone's expressions read from.
type References struct {
	Animated            NameSet
	ByTarget            map[string]NameSet
	TranslationByTarget map[string]NameSet
}

// BoneRef is a single "<bone>.<t|r><x|y|z>" read inside an expression.
type BoneRef struct {
	Bone        string
	Translation bool
}

// AnalyzeReferences scans every layer and builds the reference tables.
func AnalyzeReferences(layers []AnimationLayer) *References {
	refs := &References{
		Animated:            NameSet{},
		ByTarget:            make(map[string]NameSet),
		TranslationByTarget: make(map[string]NameSet),
	}

	for _, layer := range layers {
		for key, value := range layer {
			target, _, ok := SplitChannelKey(key)
			if !ok || target == targetVar || target == targetRender {
				continue
			}
			refs.Animated.Add(target)

			if _, constant := value.Constant(); constant {
				continue
			}
			for _, ref := range ScanBoneRefs(value.Expr) {
				refs.add(refs.ByTarget, target, ref.Bone)
				if ref.Translation {
					refs.add(refs.TranslationByTarget, target, ref.Bone)
				}
			}
		}
	}

	return refs
}

func (r *References) add(table map[string]NameSet, target, bone string) {
	set, ok := table[target]
	if !ok {
		set = NameSet{}
		table[target] = set
	}
	set.Add(bone)
}

// IsAnimated reports whether any layer drives a channel of bone.
func (r *References) IsAnimated(bone string) bool {
	return r != nil && r.Animated.Has(bone)
}

// FirstReadOf returns the first name in candidates (in order) that target's
// expressions read through any channel.
func (r *References) FirstReadOf(target string, candidates []string) (string, bool) {
	if r == nil {
		return "", false
	}
	set := r.ByTarget[target]
	for _, c := range candidates {
		if set.Has(c) {
			return c, true
		}
	}
	return "", false
}

// ReadsTranslation reports whether target's expressions read bone's translation.
func (r *References) ReadsTranslation(target, bone string) bool {
	return r != nil && r.TranslationByTarget[target].Has(bone)
}

// ScanBoneRefs extracts "<identifier>.<t|r><x|y|z>" reads from an expression.
// Script pseudo-bones are ignored. Duplicates are reported once.
func ScanBoneRefs(expr string) []BoneRef {
	var refs []BoneRef
	seen := make(map[BoneRef]bool)

	for i := 0; i < len(expr); {
		if !isIdentByte(expr[i]) {
			i++
			continue
		}
		start := i
		for i < len(expr) && isIdentByte(expr[i]) {
			i++
		}
		ident := expr[start:i]

		if i+2 >= len(expr) || expr[i] != '.' {
			continue
		}
		kind, axis := expr[i+1], expr[i+2]
		if (kind != 't' && kind != 'r') || (axis != 'x' && axis != 'y' && axis != 'z') {
			continue
		}
		if ident == targetVar || ident == targetRender || ident == targetVarB {
			continue
		}

		ref := BoneRef{Bone: ident, Translation: kind == 't'}
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	return refs
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
