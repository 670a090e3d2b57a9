package reasoner

import (
	"go.uber.org/zap"

	"github.com/nodeadmin/chebi-parser/internal/term"
)

// ElementID indexes an element of a CompletionGraph.
type ElementID int

type element struct {
	label map[term.ConceptID]bool
	succ  map[term.RoleID][]ElementID
	pred  map[term.RoleID][]ElementID
}

func newElement() *element {
	return &element{
		label: make(map[term.ConceptID]bool, 8),
		succ:  make(map[term.RoleID][]ElementID, 2),
		pred:  make(map[term.RoleID][]ElementID, 2),
	}
}

type labelEvent struct {
	elem    ElementID
	concept term.ConceptID
}

type edgeEvent struct {
	src, tgt ElementID
	role     term.RoleID
}

// CompletionGraph is the canonical model built for a single query,
// rooted at element 0 (spec.md §3). It grows monotonically — labels and
// edges are only ever added — and is discarded when the query returns.
type CompletionGraph struct {
	store  *term.Store
	tbox   *TBox
	logger *zap.Logger
	reuse  bool

	elements []*element

	labelQueue []labelEvent
	edgeQueue  []edgeEvent
}

// Root is always element 0.
const Root ElementID = 0

func newCompletionGraph(store *term.Store, tbox *TBox, logger *zap.Logger, reuse bool) *CompletionGraph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompletionGraph{store: store, tbox: tbox, logger: logger, reuse: reuse}
}

// Label returns the current label set of element e (read-only view).
func (g *CompletionGraph) Label(e ElementID) map[term.ConceptID]bool {
	return g.elements[e].label
}

// Elements returns the number of elements currently in the graph.
func (g *CompletionGraph) Elements() int { return len(g.elements) }

func (g *CompletionGraph) newElement() ElementID {
	id := ElementID(len(g.elements))
	g.elements = append(g.elements, newElement())
	g.logger.Debug("completion graph: element created", zap.Int("element", int(id)))
	g.addLabel(id, term.Top) // rule T
	for role, refl := range g.tbox.reflexive {
		if refl {
			g.addEdge(id, role, id)
		}
	}
	return id
}

func (g *CompletionGraph) addLabel(e ElementID, c term.ConceptID) bool {
	el := g.elements[e]
	if el.label[c] {
		return false
	}
	el.label[c] = true
	g.labelQueue = append(g.labelQueue, labelEvent{elem: e, concept: c})
	if ce := g.logger.Check(zap.DebugLevel, "completion graph: label added"); ce != nil {
		ce.Write(zap.Int("element", int(e)), zap.String("concept", Format(g.store, c)))
	}
	return true
}

func (g *CompletionGraph) addEdge(src ElementID, role term.RoleID, tgt ElementID) bool {
	el := g.elements[src]
	for _, t := range el.succ[role] {
		if t == tgt {
			return false
		}
	}
	el.succ[role] = append(el.succ[role], tgt)
	g.elements[tgt].pred[role] = append(g.elements[tgt].pred[role], src)
	g.edgeQueue = append(g.edgeQueue, edgeEvent{src: src, tgt: tgt, role: role})
	if ce := g.logger.Check(zap.DebugLevel, "completion graph: edge added"); ce != nil {
		ce.Write(zap.Int("src", int(src)), zap.Int("tgt", int(tgt)), zap.String("role", g.store.RoleName(role)))
	}
	return true
}

// saturate builds the completion graph rooted at `root` and closes it
// under the EL completion rules to fixpoint (spec.md §4.4). Ordering of
// rule application never affects the result — completion is confluent —
// so draining the label queue before the edge queue on each pass is
// simply a scheduling choice, not a correctness requirement.
func saturate(store *term.Store, tbox *TBox, rootConcept term.ConceptID, logger *zap.Logger) *CompletionGraph {
	return saturateWithReuse(store, tbox, rootConcept, logger, true)
}

// saturateWithReuse is saturate with the CR-∃₁ element-reuse optimization
// toggled explicitly. Disabling reuse (reuse=false) makes every existential
// restriction mint a fresh element instead of searching for an existing
// witness; this only terminates on an acyclic TBox, so it exists purely to
// let tests compare the reuse and no-reuse subsumer sets against each other
// (spec.md §8, element-reuse safety).
func saturateWithReuse(store *term.Store, tbox *TBox, rootConcept term.ConceptID, logger *zap.Logger, reuse bool) *CompletionGraph {
	g := newCompletionGraph(store, tbox, logger, reuse)
	root := g.newElement()
	if root != Root {
		panic("reasoner: root element was not index 0")
	}
	g.addLabel(root, rootConcept)

	for len(g.labelQueue) > 0 || len(g.edgeQueue) > 0 {
		for len(g.labelQueue) > 0 {
			ev := g.labelQueue[len(g.labelQueue)-1]
			g.labelQueue = g.labelQueue[:len(g.labelQueue)-1]
			g.applyLabelRules(ev)
		}
		for len(g.edgeQueue) > 0 {
			ev := g.edgeQueue[len(g.edgeQueue)-1]
			g.edgeQueue = g.edgeQueue[:len(g.edgeQueue)-1]
			g.applyEdgeRules(ev)
		}
	}
	return g
}

// applyLabelRules reacts to concept c having just been added to
// label[e]: CR1 (GCI), CR-AND⁻ (elimination), CR-AND⁺ (introduction),
// CR-∃₁ (witness creation/reuse), and the label-growth half of CR-∃₂.
func (g *CompletionGraph) applyLabelRules(ev labelEvent) {
	e, c := ev.elem, ev.concept

	// CR1: C ∈ label[d], C ⊑ D in the TBox ⇒ D ∈ label[d].
	for _, d := range g.tbox.GCIsFor(c) {
		g.addLabel(e, d)
	}

	switch g.store.Kind(c) {
	case term.KindAnd:
		// CR-AND⁻: A⊓B ∈ label[d] ⇒ A, B ∈ label[d].
		left, right := g.store.And(c)
		g.addLabel(e, left)
		g.addLabel(e, right)

	case term.KindExists:
		// CR-∃₁: ∃r.C ∈ label[d] ⇒ d has an r-successor with C in its
		// label. Reuse any existing element whose label already contains
		// C (the canonical-model construction); otherwise create one.
		role, filler := g.store.Exists(c)
		witness := ElementID(-1)
		if g.reuse {
			witness = g.findWitness(filler)
		}
		if witness < 0 {
			witness = g.newElement()
			g.addLabel(witness, filler)
		}
		g.addEdge(e, role, witness)
	}

	// CR-AND⁺: A, B ∈ label[d] and A⊓B appears in the TBox ⇒ A⊓B ∈ label[d].
	for _, p := range g.tbox.ConjPartnersFor(c) {
		if g.elements[e].label[p.other] {
			g.addLabel(e, p.and)
		}
	}

	// CR-∃₂ (label-growth half): a predecessor p with p --r--> e, and
	// ∃r.C registered in the TBox for the C that just grew e's label,
	// gets ∃r.C added to its own label.
	for role, preds := range g.elements[e].pred {
		if exID, ok := g.store.LookupExists(role, c); ok {
			for _, p := range preds {
				g.addLabel(p, exID)
			}
		}
	}
}

// findWitness returns an existing element whose label already contains
// filler, or -1 if none exists. Bounded by the number of elements, which
// spec.md §4.4 argues is itself bounded by the number of distinct
// subconcepts.
func (g *CompletionGraph) findWitness(filler term.ConceptID) ElementID {
	for i, el := range g.elements {
		if el.label[filler] {
			return ElementID(i)
		}
	}
	return -1
}

// applyEdgeRules reacts to a new edge src --role--> tgt: the edge-growth
// half of CR-∃₂, plus the additive role-hierarchy rules CR-ROLESUB and
// CR-ROLECHAIN (SPEC_FULL.md §9.1), which are no-ops when the ontology
// declares no role axioms.
func (g *CompletionGraph) applyEdgeRules(ev edgeEvent) {
	src, role, tgt := ev.src, ev.role, ev.tgt

	// CR-∃₂ (edge-growth half): concepts already in tgt's label at the
	// time this edge formed also need to propagate to src.
	for c := range g.elements[tgt].label {
		if exID, ok := g.store.LookupExists(role, c); ok {
			g.addLabel(src, exID)
		}
	}

	// CR-ROLESUB: src --role--> tgt and role ⊑ s ⇒ src --s--> tgt.
	for _, s := range g.tbox.RoleSubsFor(role) {
		g.addEdge(src, s, tgt)
	}

	// CR-ROLECHAIN, first half: src --role--> tgt is the *second* edge of
	// a chain p --r1--> src, r1∘role ⊑ s ⇒ p --s--> tgt.
	for r1, preds := range g.elements[src].pred {
		if chain, ok := g.tbox.RoleChainsFor(r1)[role]; ok {
			for _, p := range preds {
				for _, s := range chain {
					g.addEdge(p, s, tgt)
				}
			}
		}
	}

	// CR-ROLECHAIN, second half: src --role--> tgt is the *first* edge of
	// a chain tgt --r2--> e, role∘r2 ⊑ s ⇒ src --s--> e.
	if chains := g.tbox.RoleChainsFor(role); chains != nil {
		for r2, sups := range chains {
			for _, e := range g.elements[tgt].succ[r2] {
				for _, s := range sups {
					g.addEdge(src, s, e)
				}
			}
		}
	}
}
