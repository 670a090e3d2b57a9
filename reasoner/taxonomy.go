package reasoner

import "sort"

// ClassifiedConcept is one node of a batch-classified taxonomy: a
// concept name together with its direct parents and children in the
// subsumption hierarchy, after transitive reduction.
type ClassifiedConcept struct {
	Name           string   `json:"name"`
	DirectParents  []string `json:"direct_parents"`
	DirectChildren []string `json:"direct_children"`
}

// ClassificationStats summarizes a batch classification run.
type ClassificationStats struct {
	TotalConcepts int `json:"total_concepts"`
	TotalEdges    int `json:"total_edges"`
	RootConcepts  int `json:"root_concepts"` // concepts with no direct parent other than ⊤
}

// ClassifiedHierarchy is the result of classifying an entire ontology.
type ClassifiedHierarchy struct {
	Concepts []ClassifiedConcept `json:"concepts"`
	Stats    ClassificationStats `json:"stats"`
}

// Classify computes the full subsumption taxonomy over every concept
// name the reasoner knows about (SPEC_FULL.md §9.2). It is built
// entirely on top of the per-query Subsumers engine — run once per
// concept — rather than a separate batch algorithm, so a classified
// taxonomy and an individual subsumers(class_name) answer can never
// disagree.
func Classify(r *Reasoner) (*ClassifiedHierarchy, error) {
	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)

	ancestors := make(map[string]map[string]bool, len(names))
	for _, n := range names {
		subs, err := r.Subsumers(n)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool, len(subs))
		for _, s := range subs {
			if s != n {
				set[s] = true
			}
		}
		ancestors[n] = set
	}

	children := make(map[string][]string, len(names))
	totalEdges := 0
	rootCount := 0

	for _, n := range names {
		parents := directParents(n, ancestors)
		if len(parents) == 0 {
			rootCount++
		}
		for _, p := range parents {
			children[p] = append(children[p], n)
			totalEdges++
		}
	}

	concepts := make([]ClassifiedConcept, 0, len(names))
	for _, n := range names {
		parents := directParents(n, ancestors)
		kids := children[n]
		sort.Strings(kids)
		concepts = append(concepts, ClassifiedConcept{
			Name:           n,
			DirectParents:  parents,
			DirectChildren: kids,
		})
	}

	return &ClassifiedHierarchy{
		Concepts: concepts,
		Stats: ClassificationStats{
			TotalConcepts: len(names),
			TotalEdges:    totalEdges,
			RootConcepts:  rootCount,
		},
	}, nil
}

// directParents reduces n's full ancestor set to its direct parents: a
// candidate parent p is redundant if some other candidate q (q != p) in
// n's ancestor set also has p in its own ancestor set, since that makes
// the edge n->p implied by n->q->p.
func directParents(n string, ancestors map[string]map[string]bool) []string {
	candidates := ancestors[n]
	direct := make([]string, 0, len(candidates))

	for p := range candidates {
		redundant := false
		for q := range candidates {
			if q == p {
				continue
			}
			if ancestors[q][p] {
				redundant = true
				break
			}
		}
		if !redundant {
			direct = append(direct, p)
		}
	}

	sort.Strings(direct)
	return direct
}
