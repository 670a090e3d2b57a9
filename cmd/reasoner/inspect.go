package main

import (
	"github.com/spf13/cobra"

	"github.com/nodeadmin/chebi-parser/internal/config"
	"github.com/nodeadmin/chebi-parser/internal/loader"
	"github.com/nodeadmin/chebi-parser/ontology"
)

var flagInspectPretty bool

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inspect ONTOLOGY_FILE",
		Short:         "Parse an ontology file and dump it as JSON, for debugging a load failure",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInspect,
	}
	cmd.Flags().BoolVar(&flagInspectPretty, "pretty", true, "indent the JSON output")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	ontologyFormat := flagFormat
	if ontologyFormat == "" {
		cfg, _ := config.Load(flagConfig)
		ontologyFormat = cfg.DefaultFormat
	}

	src, err := loader.Parse(args[0], ontologyFormat)
	if err != nil {
		return err
	}

	ont := src.Ontology()
	if flagInspectPretty {
		return ontology.WriteJSONPretty(ont, cmd.OutOrStdout())
	}
	return ontology.WriteJSON(ont, cmd.OutOrStdout())
}
