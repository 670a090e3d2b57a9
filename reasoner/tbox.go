package reasoner

import (
	"fmt"

	"github.com/nodeadmin/chebi-parser/internal/loader"
	"github.com/nodeadmin/chebi-parser/internal/term"
)

// conjPartner records that `other` is the partner conjunct of `and`:
// whenever both a concept id and `other` are in an element's label,
// `and` should be derived (CR-AND⁺).
type conjPartner struct {
	other term.ConceptID
	and   term.ConceptID
}

// TBox is the normalized, indexed set of GCIs and role axioms the
// saturation engine consumes. It is built once per ontology and shared
// read-only across queries (spec.md §3, §5).
type TBox struct {
	store *term.Store

	// gciByLHS[lhs] = rhs concepts such that lhs ⊑ rhs. Triggers CR1.
	gciByLHS map[term.ConceptID][]term.ConceptID

	// conjPartners[c] = partners of c in some And concept registered
	// anywhere in the TBox (possibly nested inside a larger
	// conjunction). Triggers CR-AND⁺.
	conjPartners map[term.ConceptID][]conjPartner

	registered map[term.ConceptID]bool // subterm-registration visited set

	roleSub   map[term.RoleID][]term.RoleID
	roleChain map[term.RoleID]map[term.RoleID][]term.RoleID
	reflexive map[term.RoleID]bool
}

func newTBox(store *term.Store) *TBox {
	return &TBox{
		store:        store,
		gciByLHS:     make(map[term.ConceptID][]term.ConceptID),
		conjPartners: make(map[term.ConceptID][]conjPartner),
		registered:   make(map[term.ConceptID]bool),
		roleSub:      make(map[term.RoleID][]term.RoleID),
		roleChain:    make(map[term.RoleID]map[term.RoleID][]term.RoleID),
		reflexive:    make(map[term.RoleID]bool),
	}
}

// Store returns the term store the TBox's concept ids are drawn from.
func (tb *TBox) Store() *term.Store { return tb.store }

// GCIsFor returns the rhs concepts for GCIs whose lhs is exactly id.
func (tb *TBox) GCIsFor(id term.ConceptID) []term.ConceptID {
	return tb.gciByLHS[id]
}

// ConjPartnersFor returns the conjunction partners registered for id.
func (tb *TBox) ConjPartnersFor(id term.ConceptID) []conjPartner {
	return tb.conjPartners[id]
}

// RoleSubsFor returns roles that r is declared to be subsumed by.
func (tb *TBox) RoleSubsFor(r term.RoleID) []term.RoleID {
	return tb.roleSub[r]
}

// RoleChainsFor returns, for a first role r1, the map from a second
// role r2 to the roles implied by the composition r1∘r2.
func (tb *TBox) RoleChainsFor(r1 term.RoleID) map[term.RoleID][]term.RoleID {
	return tb.roleChain[r1]
}

// IsReflexive reports whether role r was declared reflexive.
func (tb *TBox) IsReflexive(r term.RoleID) bool {
	return tb.reflexive[r]
}

func (tb *TBox) addGCI(lhs, rhs term.ConceptID) {
	if rhs == term.Top {
		// C ⊑ ⊤ is implied by rule T; spec.md §4.3 rule 3 says it need
		// not be materialized.
		return
	}
	tb.gciByLHS[lhs] = append(tb.gciByLHS[lhs], rhs)
	tb.registerSubterms(lhs)
	tb.registerSubterms(rhs)
}

func (tb *TBox) addRoleSub(sub, sup term.RoleID) {
	tb.roleSub[sub] = append(tb.roleSub[sub], sup)
}

func (tb *TBox) addRoleChain(r1, r2, sup term.RoleID) {
	if tb.roleChain[r1] == nil {
		tb.roleChain[r1] = make(map[term.RoleID][]term.RoleID, 2)
	}
	tb.roleChain[r1][r2] = append(tb.roleChain[r1][r2], sup)
}

// registerSubterms walks id's structure, registering every And node it
// finds (including nested ones) so CR-AND⁺ can later recognize it as
// "appearing in the TBox". This is the trigger index for conjunction
// introduction described in spec.md §4.3 and DESIGN NOTES.
func (tb *TBox) registerSubterms(id term.ConceptID) {
	if tb.registered[id] {
		return
	}
	tb.registered[id] = true

	switch tb.store.Kind(id) {
	case term.KindAnd:
		left, right := tb.store.And(id)
		tb.conjPartners[left] = append(tb.conjPartners[left], conjPartner{other: right, and: id})
		if left != right {
			tb.conjPartners[right] = append(tb.conjPartners[right], conjPartner{other: left, and: id})
		}
		tb.registerSubterms(left)
		tb.registerSubterms(right)
	case term.KindExists:
		_, filler := tb.store.Exists(id)
		tb.registerSubterms(filler)
	}
}

// Normalize builds a TBox from a loader's raw axiom and role-axiom
// streams: equivalences are expanded into GCI pairs, n-ary conjunctions
// are flattened left-associatively into binary And nodes, and GCIs are
// indexed by trigger (spec.md §4.3).
func Normalize(store *term.Store, axioms []loader.RawAxiom, roleAxioms []loader.RawRoleAxiom) (*TBox, error) {
	tb := newTBox(store)

	for _, ax := range axioms {
		switch ax.Kind {
		case loader.AxiomGCI:
			lhs, err := internRaw(store, ax.LHS)
			if err != nil {
				return nil, err
			}
			rhs, err := internRaw(store, ax.RHS)
			if err != nil {
				return nil, err
			}
			tb.addGCI(lhs, rhs)

		case loader.AxiomEquivalence:
			if len(ax.Members) < 2 {
				return nil, invariantErr("equivalence axiom with fewer than two members")
			}
			ids := make([]term.ConceptID, len(ax.Members))
			for i, m := range ax.Members {
				id, err := internRaw(store, m)
				if err != nil {
					return nil, err
				}
				ids[i] = id
			}
			// Rule 1 (spec.md §4.3): emit C_i ⊑ C_j for every ordered pair
			// i != j. Transitive closure falls out of saturation regardless
			// of whether this or the adjacent-pair variant is chosen
			// (spec.md Open Question c).
			for i := range ids {
				for j := range ids {
					if i != j {
						tb.addGCI(ids[i], ids[j])
					}
				}
			}
		}
	}

	for _, ra := range roleAxioms {
		role := store.InternRole(ra.Role)
		if ra.Transitive {
			tb.addRoleChain(role, role, role)
		}
		if ra.Reflexive {
			tb.reflexive[role] = true
		}
	}

	return tb, nil
}

// internRaw interns a loader.RawConcept into the term store, flattening
// n-ary conjunctions left-associatively into binary And nodes
// (spec.md §4.3 rule 2).
func internRaw(store *term.Store, raw loader.RawConcept) (term.ConceptID, error) {
	switch raw.Kind {
	case loader.RawName:
		if isTopSynonym(raw.Name) {
			return term.Top, nil
		}
		return store.InternName(raw.Name), nil

	case loader.RawAnd:
		if len(raw.Conjuncts) == 0 {
			return 0, invariantErr("conjunction with no conjuncts")
		}
		acc, err := internRaw(store, raw.Conjuncts[0])
		if err != nil {
			return 0, err
		}
		for i := 1; i < len(raw.Conjuncts); i++ {
			next, err := internRaw(store, raw.Conjuncts[i])
			if err != nil {
				return 0, err
			}
			acc = store.MkAnd(acc, next)
		}
		return acc, nil

	case loader.RawExists:
		if raw.Filler == nil {
			return 0, invariantErr("existential restriction with no filler")
		}
		filler, err := internRaw(store, *raw.Filler)
		if err != nil {
			return 0, err
		}
		role := store.InternRole(raw.Role)
		return store.MkExists(role, filler), nil

	default:
		return 0, invariantErr(fmt.Sprintf("unknown raw concept kind %d", raw.Kind))
	}
}

func isTopSynonym(name string) bool {
	switch name {
	case term.TopSymbol, "owl:Thing", "http://www.w3.org/2002/07/owl#Thing":
		return true
	default:
		return false
	}
}
