// SPDX-License-Identifier: MIT

package composition

import (
	"fmt"
	"strings"
)

// Kind is the closed set of component variants.
type Kind uint8

const (
	KindMaterial      Kind = iota // named material from the material library
	KindElement                   // element from the element library
	KindIsotope                   // declared isotope; never expanded
	KindSimilar                   // scaled copy of another mixture
	KindTargetElement             // element whose isotopes are reported as targets
	KindTargetIsotope             // single isotope target, density used as-is
)

var kindNames = [...]string{
	KindMaterial:      "material",
	KindElement:       "element",
	KindIsotope:       "isotope",
	KindSimilar:       "similar",
	KindTargetElement: "target_element",
	KindTargetIsotope: "target_isotope",
}

// String returns the input keyword for k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared variants.
func (k Kind) Valid() bool { return int(k) < len(kindNames) }

// ParseKind maps an input keyword to a Kind. "like" is accepted as an
// alias of "similar", and "target element"/"target-element" spellings are
// normalized.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if key == "like" {
		return KindSimilar, nil
	}
	for k, name := range kindNames {
		if name == key {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
