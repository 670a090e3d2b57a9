package term

import "testing"

func TestInternNameIsStable(t *testing.T) {
	s := NewStore()
	a := s.InternName("A")
	b := s.InternName("A")
	if a != b {
		t.Fatalf("InternName(%q) returned different ids: %d != %d", "A", a, b)
	}
}

func TestInternNameDistinctForDistinctText(t *testing.T) {
	s := NewStore()
	a := s.InternName("A")
	b := s.InternName("B")
	if a == b {
		t.Fatalf("distinct names interned to the same id %d", a)
	}
}

func TestMkAndStructuralSharing(t *testing.T) {
	s := NewStore()
	a := s.InternName("A")
	b := s.InternName("B")

	id1 := s.MkAnd(a, b)
	id2 := s.MkAnd(a, b)
	if id1 != id2 {
		t.Fatalf("MkAnd(a, b) not idempotent: %d != %d", id1, id2)
	}

	left, right := s.And(id1)
	if left != a || right != b {
		t.Fatalf("And(%d) = (%d, %d), want (%d, %d)", id1, left, right, a, b)
	}
}

func TestMkAndIsOrderSensitive(t *testing.T) {
	s := NewStore()
	a := s.InternName("A")
	b := s.InternName("B")

	ab := s.MkAnd(a, b)
	ba := s.MkAnd(b, a)
	if ab == ba {
		t.Fatalf("MkAnd(a, b) and MkAnd(b, a) collapsed to the same id; And is not commutative at the store level")
	}
}

func TestMkExistsStructuralSharing(t *testing.T) {
	s := NewStore()
	r := s.InternRole("r")
	c := s.InternName("C")

	id1 := s.MkExists(r, c)
	id2 := s.MkExists(r, c)
	if id1 != id2 {
		t.Fatalf("MkExists(r, c) not idempotent: %d != %d", id1, id2)
	}

	role, filler := s.Exists(id1)
	if role != r || filler != c {
		t.Fatalf("Exists(%d) = (%d, %d), want (%d, %d)", id1, role, filler, r, c)
	}
}

func TestLookupAndWithoutCreating(t *testing.T) {
	s := NewStore()
	a := s.InternName("A")
	b := s.InternName("B")

	if _, ok := s.LookupAnd(a, b); ok {
		t.Fatalf("LookupAnd found an id before MkAnd was ever called")
	}
	before := s.ConceptCount()
	if _, ok := s.LookupAnd(a, b); ok || s.ConceptCount() != before {
		t.Fatalf("LookupAnd must never create a concept")
	}

	want := s.MkAnd(a, b)
	got, ok := s.LookupAnd(a, b)
	if !ok || got != want {
		t.Fatalf("LookupAnd(a, b) = (%d, %v), want (%d, true)", got, ok, want)
	}
}

func TestTopIsReservedAndNamed(t *testing.T) {
	s := NewStore()
	if s.Kind(Top) != KindName {
		t.Fatalf("Top concept has kind %v, want KindName", s.Kind(Top))
	}
	if s.Name(Top) != TopSymbol {
		t.Fatalf("Top concept name = %q, want %q", s.Name(Top), TopSymbol)
	}
	id, ok := s.LookupName(TopSymbol)
	if !ok || id != Top {
		t.Fatalf("LookupName(%q) = (%d, %v), want (%d, true)", TopSymbol, id, ok, Top)
	}
}

func TestIsQuotedDetectsQuotedNames(t *testing.T) {
	s := NewStore()
	if s.IsQuoted() {
		t.Fatalf("fresh store should not report quoted names")
	}
	s.InternName(`"CHEBI:12345"`)
	if !s.IsQuoted() {
		t.Fatalf("store with a quoted name should report IsQuoted() == true")
	}
}

func TestAndPanicsOnWrongKind(t *testing.T) {
	s := NewStore()
	a := s.InternName("A")
	defer func() {
		if recover() == nil {
			t.Fatalf("And() on a Name concept should panic")
		}
	}()
	s.And(a)
}
