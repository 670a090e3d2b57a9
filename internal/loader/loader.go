// Package loader adapts the ontology package's OBO/OWL parsers to the
// axiom-stream interface the reasoner core consumes (spec.md §4.2, §6):
// parse a file into a Source, then read its TBox axioms and concept
// names without the core ever depending on a specific file format.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nodeadmin/chebi-parser/ontology"
)

// RawKind classifies a not-yet-interned concept expression as read from
// an ontology file.
type RawKind int

const (
	RawName RawKind = iota
	RawAnd
	RawExists
)

// RawConcept is a concept expression in the loader's own vocabulary,
// before the normalizer interns it into the term store. And is kept
// n-ary here; binarizing it into nested pairs is the normalizer's job
// (spec.md §4.3 rule 2).
type RawConcept struct {
	Kind      RawKind
	Name      string
	Conjuncts []RawConcept // RawAnd
	Role      string       // RawExists
	Filler    *RawConcept  // RawExists
}

// Name builds a RawConcept naming a concept.
func Name(n string) RawConcept { return RawConcept{Kind: RawName, Name: n} }

// Exists builds a RawConcept for an existential restriction.
func Exists(role string, filler RawConcept) RawConcept {
	return RawConcept{Kind: RawExists, Role: role, Filler: &filler}
}

// And builds a RawConcept for an n-ary conjunction.
func And(conjuncts ...RawConcept) RawConcept {
	return RawConcept{Kind: RawAnd, Conjuncts: conjuncts}
}

// AxiomKind distinguishes a GCI from an equivalence axiom.
type AxiomKind int

const (
	AxiomGCI AxiomKind = iota
	AxiomEquivalence
)

// RawAxiom is one input axiom as read from the ontology file, classified
// per spec.md §4.2: either GCI(lhs, rhs) or Equivalence(members...).
type RawAxiom struct {
	Kind    AxiomKind
	LHS     RawConcept   // AxiomGCI
	RHS     RawConcept   // AxiomGCI
	Members []RawConcept // AxiomEquivalence, length >= 2
}

// RawRoleAxiom carries role-level declarations (transitive/reflexive
// roles) — the additive role-hierarchy extension described in
// SPEC_FULL.md §9.1. Unused by a strictly-EL ontology.
type RawRoleAxiom struct {
	Role       string
	Transitive bool
	Reflexive  bool
}

// Source wraps a parsed ontology ready to be read as an axiom stream.
type Source struct {
	ont    *ontology.Ontology
	Format string
}

// Parse opens path, detects its format (unless explicit), and parses it.
func Parse(path, explicitFormat string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format := detectFormat(path, explicitFormat)
	if format == "" {
		return nil, fmt.Errorf("cannot detect ontology format for %q", path)
	}

	var ont *ontology.Ontology
	switch format {
	case "obo":
		ont, err = ontology.ParseOBO(f)
	case "owl":
		ont, err = ontology.ParseOWL(f)
	default:
		return nil, fmt.Errorf("unknown ontology format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &Source{ont: ont, Format: format}, nil
}

func detectFormat(path, explicit string) string {
	if explicit != "" && explicit != "auto" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obo":
		return "obo"
	case ".owl", ".xml", ".rdf":
		return "owl"
	}
	return ""
}

// Ontology exposes the underlying parsed ontology for callers that need
// the raw term/typedef data rather than the axiom-stream view (e.g. the
// CLI's inspect subcommand).
func (s *Source) Ontology() *ontology.Ontology { return s.ont }

// ConvertToBinaryConjunctions mirrors the loader interface operation
// named in spec.md §6. Both ontology adapters here only ever produce
// flat intersection lists (never deeply nested n-ary expressions), and
// flattening an n-ary conjunction into a binary tree is defined as the
// TBox normalizer's responsibility (spec.md §4.3 rule 2), so this is a
// deliberate no-op kept for interface fidelity with the loader
// contract — a richer adapter that parsed pre-nested expressions would
// do real work here.
func (s *Source) ConvertToBinaryConjunctions() {}

// ConceptNames returns every non-obsolete concept name id declared by
// the ontology (spec.md §4.2's concept_names operation).
func (s *Source) ConceptNames() []string {
	names := make([]string, 0, len(s.ont.Terms))
	for i := range s.ont.Terms {
		t := &s.ont.Terms[i]
		if t.IsObsolete {
			continue
		}
		names = append(names, t.ID)
	}
	return names
}

// RoleAxioms returns the role-level declarations from Typedef stanzas.
func (s *Source) RoleAxioms() []RawRoleAxiom {
	axioms := make([]RawRoleAxiom, 0, len(s.ont.TypeDefs))
	for i := range s.ont.TypeDefs {
		td := &s.ont.TypeDefs[i]
		if td.IsTransitive || td.IsReflexive {
			axioms = append(axioms, RawRoleAxiom{
				Role:       td.ID,
				Transitive: td.IsTransitive,
				Reflexive:  td.IsReflexive,
			})
		}
	}
	return axioms
}

// TBox returns the ontology's axioms as GCIs and equivalences, spelled
// out in the loader's RawConcept vocabulary for the normalizer to intern
// and flatten (spec.md §4.2, §4.3).
func (s *Source) TBox() ([]RawAxiom, error) {
	axioms := make([]RawAxiom, 0, len(s.ont.Terms)*2)

	for i := range s.ont.Terms {
		t := &s.ont.Terms[i]
		if t.IsObsolete {
			continue
		}
		c := Name(t.ID)

		for _, rel := range t.Relationships {
			if rel.Type == "is_a" {
				axioms = append(axioms, RawAxiom{Kind: AxiomGCI, LHS: c, RHS: Name(rel.TargetID)})
			} else {
				axioms = append(axioms, RawAxiom{Kind: AxiomGCI, LHS: c, RHS: Exists(rel.Type, Name(rel.TargetID))})
			}
		}

		// OBO intersection_of: genus/differentia conjuncts ⊑ C. The
		// forward direction (C ⊑ each conjunct) is expected to already
		// appear as separate is_a/relationship stanzas, matching ChEBI's
		// own authoring convention.
		if len(t.IntersectionOf) > 0 {
			conjuncts := intersectionPartsToRaw(t.IntersectionOf)
			axioms = append(axioms, RawAxiom{Kind: AxiomGCI, LHS: And(conjuncts...), RHS: c})
		}

		// OWL equivalentClass: true bidirectional equivalence.
		if len(t.EquivalentTo) > 0 {
			conjuncts := intersectionPartsToRaw(t.EquivalentTo)
			var rhs RawConcept
			if len(conjuncts) == 1 {
				rhs = conjuncts[0]
			} else {
				rhs = And(conjuncts...)
			}
			axioms = append(axioms, RawAxiom{Kind: AxiomEquivalence, Members: []RawConcept{c, rhs}})
		}
	}

	return axioms, nil
}

func intersectionPartsToRaw(parts []ontology.IntersectionPart) []RawConcept {
	conjuncts := make([]RawConcept, 0, len(parts))
	for _, part := range parts {
		if part.Relationship == "" {
			conjuncts = append(conjuncts, Name(part.TargetID))
		} else {
			conjuncts = append(conjuncts, Exists(part.Relationship, Name(part.TargetID)))
		}
	}
	return conjuncts
}
