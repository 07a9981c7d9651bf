package ir

import "dslbuilder-generator/internal/common"

// Modifier is a declaration modifier.
type Modifier int

const (
	ModifierPublic Modifier = iota + 1
	ModifierProtected
	ModifierInternal
	ModifierPrivate
	ModifierOverride
)

// String returns the modifier keyword.
func (m Modifier) String() string {
	switch m {
	case ModifierPublic:
		return "public"
	case ModifierProtected:
		return "protected"
	case ModifierInternal:
		return "internal"
	case ModifierPrivate:
		return "private"
	case ModifierOverride:
		return "override"
	default:
		return common.UnknownStr
	}
}

// IsAccess reports whether m controls visibility.
func (m Modifier) IsAccess() bool {
	switch m {
	case ModifierPublic, ModifierProtected, ModifierInternal, ModifierPrivate:
		return true
	default:
		return false
	}
}

// accessOf returns the access modifier in mods, defaulting to public.
func accessOf(mods []Modifier) Modifier {
	for _, m := range mods {
		if m.IsAccess() {
			return m
		}
	}

	return ModifierPublic
}

type modifierSet struct {
	mods []Modifier
}

func (s *modifierSet) add(spec, name string, m Modifier) error {
	if m.IsAccess() {
		for _, existing := range s.mods {
			if existing.IsAccess() {
				return &DuplicateAccessModifierError{Spec: spec, Name: name, Existing: existing, Added: m}
			}
		}
	}

	s.mods = append(s.mods, m)

	return nil
}
