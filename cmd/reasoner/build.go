package main

import (
	"github.com/nodeadmin/chebi-parser/internal/loader"
	"github.com/nodeadmin/chebi-parser/internal/term"
	"github.com/nodeadmin/chebi-parser/reasoner"
)

// buildTBox turns a parsed ontology Source into a term store, a
// normalized TBox, and the list of concept names the ontology declares
// — the three things reasoner.NewReasoner needs (spec.md §4.1-§4.3).
func buildTBox(src *loader.Source) (*term.Store, *reasoner.TBox, []string, error) {
	store := term.NewStore()

	axioms, err := src.TBox()
	if err != nil {
		return nil, nil, nil, reasoner.WrapOntologyLoad(err)
	}

	tbox, err := reasoner.Normalize(store, axioms, src.RoleAxioms())
	if err != nil {
		return nil, nil, nil, err
	}

	return store, tbox, src.ConceptNames(), nil
}
