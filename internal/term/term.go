// Package term implements the EL reasoner's term store: interning of
// concept names, roles, and compound concepts (conjunctions and
// existential restrictions) into stable integer identifiers with
// structural sharing.
package term

// ConceptID is an integer identifier for an interned concept.
type ConceptID uint32

// RoleID is an integer identifier for an interned role (object property).
type RoleID uint32

// Top is the reserved id for the distinguished top concept ⊤.
const Top ConceptID = 0

// TopSymbol is the canonical name of the top concept.
const TopSymbol = "⊤"

// Kind classifies a concept as one of the three EL concept forms.
type Kind int

const (
	KindName Kind = iota
	KindAnd
	KindExists
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "Name"
	case KindAnd:
		return "And"
	case KindExists:
		return "Exists"
	default:
		return "Unknown"
	}
}

// concept is the internal representation of one interned concept.
// Only the fields relevant to its Kind are meaningful.
type concept struct {
	kind   Kind
	name   string    // KindName
	left   ConceptID // KindAnd
	right  ConceptID // KindAnd
	role   RoleID    // KindExists
	filler ConceptID // KindExists
}

type andKey struct {
	left, right ConceptID
}

type existsKey struct {
	role   RoleID
	filler ConceptID
}

// Store interns concept names, roles, and compound concepts. Two
// structurally equal concepts always share the same id; the store is
// append-only for the lifetime of a query.
type Store struct {
	concepts []concept

	nameToID map[string]ConceptID
	andToID  map[andKey]ConceptID
	exToID   map[existsKey]ConceptID

	roleToID map[string]RoleID
	roleName []string
}

// NewStore creates a Store with the reserved top concept already interned.
func NewStore() *Store {
	s := &Store{
		concepts: make([]concept, 1, 1024),
		nameToID: make(map[string]ConceptID, 1024),
		andToID:  make(map[andKey]ConceptID, 256),
		exToID:   make(map[existsKey]ConceptID, 256),
		roleToID: make(map[string]RoleID, 16),
		roleName: make([]string, 0, 16),
	}
	s.concepts[Top] = concept{kind: KindName, name: TopSymbol}
	s.nameToID[TopSymbol] = Top
	return s
}

// InternName canonicalizes a concept name by exact string match and
// returns its stable id, creating one if this is the first occurrence.
func (s *Store) InternName(text string) ConceptID {
	if id, ok := s.nameToID[text]; ok {
		return id
	}
	id := ConceptID(len(s.concepts))
	s.concepts = append(s.concepts, concept{kind: KindName, name: text})
	s.nameToID[text] = id
	return id
}

// MkAnd canonicalizes a binary conjunction. Commutativity and
// associativity are not normalized: And(a, b) and And(b, a) are
// distinct ids unless the caller already ordered operands consistently.
func (s *Store) MkAnd(a, b ConceptID) ConceptID {
	key := andKey{a, b}
	if id, ok := s.andToID[key]; ok {
		return id
	}
	id := ConceptID(len(s.concepts))
	s.concepts = append(s.concepts, concept{kind: KindAnd, left: a, right: b})
	s.andToID[key] = id
	return id
}

// MkExists canonicalizes an existential restriction by (role, filler).
func (s *Store) MkExists(role RoleID, filler ConceptID) ConceptID {
	key := existsKey{role, filler}
	if id, ok := s.exToID[key]; ok {
		return id
	}
	id := ConceptID(len(s.concepts))
	s.concepts = append(s.concepts, concept{kind: KindExists, role: role, filler: filler})
	s.exToID[key] = id
	return id
}

// LookupAnd returns the id for And(a, b) only if already interned,
// without creating one. Used by the saturation engine to test whether
// a conjunction is part of the TBox's known universe (CR-AND⁺'s
// "appears anywhere in the TBox" precondition).
func (s *Store) LookupAnd(a, b ConceptID) (ConceptID, bool) {
	id, ok := s.andToID[andKey{a, b}]
	return id, ok
}

// LookupExists returns the id for Exists(role, filler) only if already
// interned, without creating one.
func (s *Store) LookupExists(role RoleID, filler ConceptID) (ConceptID, bool) {
	id, ok := s.exToID[existsKey{role, filler}]
	return id, ok
}

// InternRole returns the stable id for a role name, creating one if needed.
func (s *Store) InternRole(name string) RoleID {
	if id, ok := s.roleToID[name]; ok {
		return id
	}
	id := RoleID(len(s.roleName))
	s.roleToID[name] = id
	s.roleName = append(s.roleName, name)
	return id
}

// Kind returns the structural kind of the given concept id.
func (s *Store) Kind(id ConceptID) Kind {
	return s.concepts[id].kind
}

// Name returns the string for a KindName concept. Panics on other kinds.
func (s *Store) Name(id ConceptID) string {
	c := s.concepts[id]
	if c.kind != KindName {
		panic("term: Name called on non-Name concept")
	}
	return c.name
}

// And destructures a KindAnd concept into its two conjuncts. Panics on other kinds.
func (s *Store) And(id ConceptID) (left, right ConceptID) {
	c := s.concepts[id]
	if c.kind != KindAnd {
		panic("term: And called on non-And concept")
	}
	return c.left, c.right
}

// Exists destructures a KindExists concept into its role and filler. Panics on other kinds.
func (s *Store) Exists(id ConceptID) (role RoleID, filler ConceptID) {
	c := s.concepts[id]
	if c.kind != KindExists {
		panic("term: Exists called on non-Exists concept")
	}
	return c.role, c.filler
}

// RoleName returns the string for a role id.
func (s *Store) RoleName(id RoleID) string {
	if int(id) < len(s.roleName) {
		return s.roleName[id]
	}
	return ""
}

// ConceptCount returns the number of interned concepts, including Top.
func (s *Store) ConceptCount() int { return len(s.concepts) }

// RoleCount returns the number of interned roles.
func (s *Store) RoleCount() int { return len(s.roleName) }

// LookupName returns the id for a concept name if already interned.
func (s *Store) LookupName(text string) (ConceptID, bool) {
	id, ok := s.nameToID[text]
	return id, ok
}

// IsQuoted reports whether any interned concept name (other than ⊤) is
// surrounded by double quotes — used by the façade to match the
// ontology's own spelling convention for bare query input.
func (s *Store) IsQuoted() bool {
	for _, c := range s.concepts {
		if c.kind == KindName && c.name != TopSymbol && len(c.name) >= 2 &&
			c.name[0] == '"' && c.name[len(c.name)-1] == '"' {
			return true
		}
	}
	return false
}
