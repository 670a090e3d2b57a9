package reasoner

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nodeadmin/chebi-parser/internal/term"
)

// Reasoner is the single public entry point described in spec.md §4.6:
// load an ontology once, then ask subsumers(class_name) any number of
// times against the shared, read-only TBox.
type Reasoner struct {
	store *term.Store
	tbox  *TBox
	names map[string]bool

	cache  *resultCache
	logger *zap.Logger
}

// NewReasoner wraps a normalized TBox and the set of concept names the
// ontology actually declares (used to tell "unknown concept" apart from
// "well-formed but derived" concept ids that only ever exist as And/Exists
// compounds).
func NewReasoner(store *term.Store, tbox *TBox, conceptNames []string) *Reasoner {
	names := make(map[string]bool, len(conceptNames))
	for _, n := range conceptNames {
		names[n] = true
	}
	return &Reasoner{
		store:  store,
		tbox:   tbox,
		names:  names,
		cache:  newResultCache(),
		logger: zap.NewNop(),
	}
}

// SetLogger installs the logger used for per-query correlation-id
// tracing (SPEC_FULL.md §7.4). Defaults to a no-op logger.
func (r *Reasoner) SetLogger(logger *zap.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// SetCacheEnabled toggles the per-class-name result cache (gated by the
// config file's cache_enabled field, SPEC_FULL.md §7.3). Disabling it
// also drops any cached results.
func (r *Reasoner) SetCacheEnabled(enabled bool) {
	r.cache.setEnabled(enabled)
}

// Store exposes the underlying term store, so callers can format
// concept ids consistently with the reasoner's own internal formatting.
func (r *Reasoner) Store() *term.Store { return r.store }

// Subsumers computes the sorted list of named concepts that subsume
// className, per spec.md §4.6. A bare name is matched against the
// ontology's own quoting convention (IsQuoted) before lookup, so CLI
// callers never have to know whether the source ontology quotes its
// identifiers.
func (r *Reasoner) Subsumers(className string) (result []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = invariantErr(fmt.Sprintf("panic during saturation: %v", rec))
		}
	}()

	queryID := uuid.New().String()
	logger := r.logger.With(zap.String("query_id", queryID), zap.String("class", className))
	logger.Debug("subsumers query started")

	if cached, ok := r.cache.get(className); ok {
		logger.Debug("subsumers query served from cache")
		return cached, nil
	}

	name := className
	if r.store.IsQuoted() && !isQuotedString(name) {
		name = `"` + name + `"`
	}

	id, ok := r.store.LookupName(name)
	if !ok || !r.names[name] {
		return nil, unknownConceptErr(className)
	}

	graph := saturate(r.store, r.tbox, id, logger)
	result = extractSubsumers(graph, r.store)

	logger.Debug("subsumers query completed",
		zap.Int("elements", graph.Elements()),
		zap.Int("subsumers", len(result)),
	)

	r.cache.put(className, result)
	return result, nil
}

// InvalidateCache drops all cached Subsumers results. Exported for
// completeness even though the TBox is immutable for the lifetime of a
// Reasoner today; a future incremental-update path would call this
// after mutating the TBox.
func (r *Reasoner) InvalidateCache() {
	r.cache.invalidate()
}

func isQuotedString(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}
