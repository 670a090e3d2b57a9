package reasoner

import (
	"strings"

	"github.com/nodeadmin/chebi-parser/internal/term"
)

// Format renders a concept id in the canonical EL surface syntax used
// in the saturation engine's debug logs: ⊤ for top, "A ⊓ B" for conjunction, and
// "∃r.C" for existential restriction (spec.md §4.5).
func Format(store *term.Store, id term.ConceptID) string {
	var b strings.Builder
	formatInto(&b, store, id)
	return b.String()
}

func formatInto(b *strings.Builder, store *term.Store, id term.ConceptID) {
	switch store.Kind(id) {
	case term.KindName:
		b.WriteString(store.Name(id))

	case term.KindAnd:
		left, right := store.And(id)
		formatOperand(b, store, left)
		b.WriteString(" ⊓ ")
		formatOperand(b, store, right)

	case term.KindExists:
		role, filler := store.Exists(id)
		b.WriteString("∃")
		b.WriteString(store.RoleName(role))
		b.WriteByte('.')
		formatOperand(b, store, filler)
	}
}

// formatOperand parenthesizes a conjunction operand when it is itself a
// conjunction, so "A ⊓ (B ⊓ C)" round-trips unambiguously; an
// existential operand never needs parens since ∃r. binds tighter than ⊓.
func formatOperand(b *strings.Builder, store *term.Store, id term.ConceptID) {
	if store.Kind(id) == term.KindAnd {
		b.WriteByte('(')
		formatInto(b, store, id)
		b.WriteByte(')')
		return
	}
	formatInto(b, store, id)
}
