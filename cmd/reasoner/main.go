// Command reasoner answers EL subsumption queries against an OBO or
// OWL/RDF-XML ontology file, either one class at a time (the default
// subsumers query) or as a full batch classification (the classify
// subcommand).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nodeadmin/chebi-parser/reasoner"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return 0
}

// exitCodeFor maps an error to the process exit code spec.md §6
// mandates. Errors that never made it into the reasoner's typed
// hierarchy — a bad flag, a missing argument, cobra's own usage errors —
// fall back to 2, matching an ontology-load-style failure since in
// practice they all mean "this invocation cannot proceed".
func exitCodeFor(err error) int {
	var rerr *reasoner.Error
	if errors.As(err, &rerr) {
		return rerr.ExitCode()
	}
	return 2
}
