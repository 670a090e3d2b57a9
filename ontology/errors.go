package ontology

import "fmt"

// UnsupportedConstructError reports an axiom or class expression that
// uses an OWL construct outside EL (disjunction, negation, universal
// restriction, nominals, cardinality restrictions). The loader adapter
// must surface this rather than silently dropping or misreading the
// construct.
type UnsupportedConstructError struct {
	Construct string // e.g. "owl:unionOf", "owl:allValuesFrom"
	Concept   string // the class the construct was found on, if known
}

func (e *UnsupportedConstructError) Error() string {
	if e.Concept != "" {
		return fmt.Sprintf("unsupported construct %s on %s: EL supports only conjunction and existential restriction", e.Construct, e.Concept)
	}
	return fmt.Sprintf("unsupported construct %s: EL supports only conjunction and existential restriction", e.Construct)
}
