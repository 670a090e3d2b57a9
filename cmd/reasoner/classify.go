package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/nodeadmin/chebi-parser/reasoner"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "classify ONTOLOGY_FILE",
		Short:         "Batch-classify every concept in an ontology into a taxonomy",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runClassify,
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	ontologyPath := args[0]

	_, logger, r, err := loadReasonerInputs(ontologyPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	hierarchy, err := reasoner.Classify(r)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(hierarchy)
}
