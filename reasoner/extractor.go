package reasoner

import (
	"sort"

	"github.com/nodeadmin/chebi-parser/internal/term"
)

// extractSubsumers reads the root element's label and returns every
// named concept it contains, sorted lexicographically by its surface
// form. Compound labels (And/Exists ids that entered the label as
// intermediate derivations) are not concept names and are never
// reported; ⊤ is excluded too, since ⊤ trivially subsumes every
// concept and reporting it on every query would add no information
// (spec.md §4.4/§4.5, Open Question b).
func extractSubsumers(g *CompletionGraph, store *term.Store) []string {
	label := g.Label(Root)
	names := make([]string, 0, len(label))
	for id := range label {
		if id == term.Top {
			continue
		}
		if store.Kind(id) != term.KindName {
			continue
		}
		names = append(names, store.Name(id))
	}
	sort.Strings(names)
	return names
}
