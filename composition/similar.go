// SPDX-License-Identifier: MIT

package composition

import (
	"strings"

	"github.com/katalvlaran/nucprep/diag"
)

// visit states for ResolveSimilar's depth-first walk.
const (
	unvisited = iota
	visiting
	resolved
)

// ResolveSimilar replaces every Similar node of every mixture with a scaled
// copy of the referenced mixture's components.
//
// A referenced mixture is resolved before it is copied, so nested
// references are flattened and no Similar node survives. Mixtures are
// matched by exact name; the first declaration of a name wins.
//
// Errors:
//   - diag.CodeMixtureNotFound (312) for an undeclared mixture name.
//   - diag.CodeSimilarCycle (313) when references loop back on themselves.
func ResolveSimilar(mixtures []*Mixture) error {
	byName := make(map[string]*Mixture, len(mixtures))
	for _, m := range mixtures {
		if m == nil {
			return ErrNilMixture
		}
		if _, dup := byName[m.Name]; !dup {
			byName[m.Name] = m
		}
	}

	state := make(map[*Mixture]int, len(mixtures))
	var visit func(m *Mixture, chain []string) error
	visit = func(m *Mixture, chain []string) error {
		switch state[m] {
		case resolved:
			return nil
		case visiting:
			loop := strings.Join(append(chain, m.Name), " -> ")
			return diag.Fatalf(diag.CodeSimilarCycle, m.Name,
				"mixture %s is similar to itself through %s", m.Name, loop)
		}
		state[m] = visiting
		chain = append(chain, m.Name)

		list := m.Components()
		for i := 0; i < list.Len(); i++ {
			n := list.nodes[i]
			if n.Kind != KindSimilar {
				continue
			}
			target, ok := byName[n.Name]
			if !ok {
				return diag.Fatalf(diag.CodeMixtureNotFound, n.Name,
					"mixture %s is similar to undeclared mixture %s", m.Name, n.Name)
			}
			if err := visit(target, chain); err != nil {
				return err
			}
			last, err := list.ReplaceSimilar(i, target.Components())
			if err != nil {
				return err
			}
			i = last
		}
		state[m] = resolved

		return nil
	}

	for _, m := range mixtures {
		if err := visit(m, nil); err != nil {
			return err
		}
	}

	return nil
}
