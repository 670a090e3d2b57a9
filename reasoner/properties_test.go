package reasoner

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/nodeadmin/chebi-parser/internal/loader"
	"github.com/nodeadmin/chebi-parser/internal/term"
)

var propertyNames = []string{"A", "B", "C", "D", "E"}

func genGCIAxioms(t *rapid.T) []loader.RawAxiom {
	n := rapid.IntRange(0, 8).Draw(t, "numAxioms")
	axioms := make([]loader.RawAxiom, 0, n)
	nameGen := rapid.SampledFrom(propertyNames)
	for i := 0; i < n; i++ {
		lhs := nameGen.Draw(t, "lhs")
		rhs := nameGen.Draw(t, "rhs")
		if lhs == rhs {
			continue
		}
		axioms = append(axioms, loader.RawAxiom{Kind: loader.AxiomGCI, LHS: loader.Name(lhs), RHS: loader.Name(rhs)})
	}
	return axioms
}

func subsumersOf(t *rapid.T, axioms []loader.RawAxiom, root string) []string {
	store := term.NewStore()
	tb, err := Normalize(store, axioms, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	// A root that no axiom mentions is still a concept name of the query.
	id := store.InternName(root)
	g := saturate(store, tb, id, nil)
	return extractSubsumers(g, store)
}

// Invariant 1: reflexivity — a concept always subsumes itself.
func TestPropertyReflexivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		axioms := genGCIAxioms(t)
		root := rapid.SampledFrom(propertyNames).Draw(t, "root")
		got := subsumersOf(t, axioms, root)

		found := false
		for _, n := range got {
			if n == root {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%q does not subsume itself; subsumers = %v", root, got)
		}
	})
}

// Invariant 2: transitivity — if B is a subsumer of A's answer set, and we
// query B directly, every one of B's own subsumers also appears when
// querying A (the completion graph's saturation is already transitively
// closed; re-querying from a different root must agree with it).
func TestPropertyTransitivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		axioms := genGCIAxioms(t)
		root := rapid.SampledFrom(propertyNames).Draw(t, "root")
		rootSubs := subsumersOf(t, axioms, root)

		for _, mid := range rootSubs {
			if mid == root {
				continue
			}
			midSubs := subsumersOf(t, axioms, mid)
			for _, s := range midSubs {
				present := false
				for _, r := range rootSubs {
					if r == s {
						present = true
						break
					}
				}
				if !present {
					t.Fatalf("transitivity violated: %q subsumes %q, %q subsumes %q, but %q is missing from subsumers(%q) = %v",
						mid, root, s, mid, s, root, rootSubs)
				}
			}
		}
	})
}

// Invariant 3: shuffling GCI declaration order never changes the answer —
// the TBox's index is built from an unordered axiom set, not a sequence.
func TestPropertyAxiomOrderInvariance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		axioms := genGCIAxioms(t)
		root := rapid.SampledFrom(propertyNames).Draw(t, "root")

		baseline := subsumersOf(t, axioms, root)

		shuffled := append([]loader.RawAxiom(nil), axioms...)
		perm := rapid.Permutation(indices(len(shuffled))).Draw(t, "perm")
		reordered := make([]loader.RawAxiom, len(shuffled))
		for i, p := range perm {
			reordered[i] = shuffled[p]
		}

		got := subsumersOf(t, reordered, root)
		if !stringSlicesEqual(baseline, got) {
			t.Fatalf("axiom order changed the result: %v != %v", baseline, got)
		}
	})
}

// Invariant 4: equivalence expansion is symmetric — every member of a
// declared equivalence class subsumes, and is subsumed by, every other
// member.
func TestPropertyEquivalenceSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(2, len(propertyNames)).Draw(t, "k")
		members := propertyNames[:k]

		rawMembers := make([]loader.RawConcept, len(members))
		for i, m := range members {
			rawMembers[i] = loader.Name(m)
		}
		axioms := []loader.RawAxiom{{Kind: loader.AxiomEquivalence, Members: rawMembers}}

		for _, m := range members {
			got := subsumersOf(t, axioms, m)
			for _, other := range members {
				present := false
				for _, s := range got {
					if s == other {
						present = true
						break
					}
				}
				if !present {
					t.Fatalf("equivalence class %v: subsumers(%q) = %v, missing equivalent member %q", members, m, got, other)
				}
			}
		}
	})
}

// Invariant 5: n-ary conjunction flattening is associative in effect — a
// flat three-way conjunct list and an explicitly pre-nested binary tree
// over the same conjuncts in the same order intern to the same concept
// id, since both go through the same left-associative fold.
func TestPropertyConjunctionFlatteningAssociative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := term.NewStore()
		a := rapid.SampledFrom(propertyNames).Draw(t, "a")
		b := rapid.SampledFrom(propertyNames).Draw(t, "b")
		c := rapid.SampledFrom(propertyNames).Draw(t, "c")

		flat, err := internRaw(store, loader.And(loader.Name(a), loader.Name(b), loader.Name(c)))
		if err != nil {
			t.Fatalf("internRaw(flat): %v", err)
		}
		nested, err := internRaw(store, loader.And(loader.And(loader.Name(a), loader.Name(b)), loader.Name(c)))
		if err != nil {
			t.Fatalf("internRaw(nested): %v", err)
		}
		if flat != nested {
			t.Fatalf("flat and pre-nested conjunctions over (%s, %s, %s) interned to different ids: %d != %d", a, b, c, flat, nested)
		}
	})
}

// genAcyclicAxioms draws GCI axioms Name(i) ⊑ Name(j) and existential
// axioms Name(i) ⊑ ∃r.Name(j), both restricted to j > i. That ordering
// constraint guarantees the TBox is acyclic, so saturation terminates even with
// element reuse disabled (TestPropertyElementReuseSafety needs both runs to
// halt).
func genAcyclicAxioms(t *rapid.T) []loader.RawAxiom {
	n := rapid.IntRange(0, 6).Draw(t, "numAxioms")
	axioms := make([]loader.RawAxiom, 0, n)
	idxGen := rapid.IntRange(0, len(propertyNames)-1)
	existsGen := rapid.Bool()
	for i := 0; i < n; i++ {
		li := idxGen.Draw(t, "lhsIdx")
		ri := idxGen.Draw(t, "rhsIdx")
		if li == ri {
			continue
		}
		if li > ri {
			li, ri = ri, li
		}
		if existsGen.Draw(t, "exists") && ri > li {
			axioms = append(axioms, loader.RawAxiom{
				Kind: loader.AxiomGCI,
				LHS:  loader.Name(propertyNames[li]),
				RHS:  loader.Exists("r", loader.Name(propertyNames[ri])),
			})
			continue
		}
		axioms = append(axioms, loader.RawAxiom{
			Kind: loader.AxiomGCI,
			LHS:  loader.Name(propertyNames[li]),
			RHS:  loader.Name(propertyNames[ri]),
		})
	}
	return axioms
}

func subsumersOfWithReuse(t *rapid.T, axioms []loader.RawAxiom, root string, reuse bool) []string {
	store := term.NewStore()
	tb, err := Normalize(store, axioms, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	id, ok := store.LookupName(root)
	if !ok {
		return nil
	}
	g := saturateWithReuse(store, tb, id, nil, reuse)
	return extractSubsumers(g, store)
}

// Invariant 6: ⊤-maximality — every element's label contains ⊤ at
// fixpoint, since rule T fires on element creation and nothing ever
// removes a label.
func TestPropertyTopMaximality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		axioms := genAcyclicAxioms(t)
		root := rapid.SampledFrom(propertyNames).Draw(t, "root")

		store := term.NewStore()
		tb, err := Normalize(store, axioms, nil)
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		id, ok := store.LookupName(root)
		if !ok {
			return
		}
		g := saturate(store, tb, id, nil)
		for e := 0; e < g.Elements(); e++ {
			if !g.Label(ElementID(e))[term.Top] {
				t.Fatalf("element %d missing ⊤ from its label at fixpoint", e)
			}
		}
	})
}

// Invariant 7: element-reuse safety — disabling CR-∃₁'s witness reuse and
// always minting a fresh element instead yields the same named-subsumer
// set, since reuse only changes which element plays a role, never which
// concepts end up in the root's label.
func TestPropertyElementReuseSafety(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		axioms := genAcyclicAxioms(t)
		root := rapid.SampledFrom(propertyNames).Draw(t, "root")

		withReuse := subsumersOfWithReuse(t, axioms, root, true)
		withoutReuse := subsumersOfWithReuse(t, axioms, root, false)

		if !stringSlicesEqual(withReuse, withoutReuse) {
			t.Fatalf("element reuse changed the subsumer set: reuse=%v no-reuse=%v", withReuse, withoutReuse)
		}
	})
}

func indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
