package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nodeadmin/chebi-parser/internal/config"
	"github.com/nodeadmin/chebi-parser/internal/loader"
	"github.com/nodeadmin/chebi-parser/internal/obslog"
	"github.com/nodeadmin/chebi-parser/reasoner"
)

var (
	flagVerbose      bool
	flagFormat       string
	flagOutputFormat string
	flagConfig       string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reasoner ONTOLOGY_FILE CLASS_NAME",
		Short:         "Compute the subsumers of a class in an EL ontology",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSubsumers,
	}

	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "ontology source format: auto, obo, or owl (overrides config)")
	cmd.PersistentFlags().StringVarP(&flagOutputFormat, "output-format", "o", "", "result serialization: text or json (overrides config)")
	cmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "reasoner.toml", "path to a reasoner.toml config file")

	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newInspectCmd())
	return cmd
}

func loadReasonerInputs(ontologyPath string) (cfg config.Config, logger *zap.Logger, r *reasoner.Reasoner, err error) {
	cfg, cfgErr := config.Load(flagConfig)

	levelName := cfg.LogLevel
	if flagVerbose {
		levelName = "debug"
	}
	logger, err = obslog.New(flagVerbose, levelName)
	if err != nil {
		return cfg, nil, nil, err
	}
	if cfgErr != nil {
		logger.Warn("failed to parse config file, using defaults", zap.String("path", flagConfig), zap.Error(cfgErr))
	}

	ontologyFormat := flagFormat
	if ontologyFormat == "" {
		ontologyFormat = cfg.DefaultFormat
	}
	src, err := loader.Parse(ontologyPath, ontologyFormat)
	if err != nil {
		return cfg, logger, nil, reasoner.WrapOntologyLoad(err)
	}

	store, tbox, names, err := buildTBox(src)
	if err != nil {
		return cfg, logger, nil, err
	}

	r = reasoner.NewReasoner(store, tbox, names)
	r.SetLogger(logger)
	r.SetCacheEnabled(cfg.CacheEnabled)
	return cfg, logger, r, nil
}

func runSubsumers(cmd *cobra.Command, args []string) error {
	ontologyPath, className := args[0], args[1]

	cfg, logger, r, err := loadReasonerInputs(ontologyPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := r.Subsumers(className)
	if err != nil {
		return err
	}

	outputFormat := flagOutputFormat
	if outputFormat == "" {
		outputFormat = cfg.OutputFormat
	}
	return printSubsumers(cmd, className, result, outputFormat)
}

func printSubsumers(cmd *cobra.Command, className string, result []string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"class":     className,
			"subsumers": result,
		})
	default:
		for _, s := range result {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	}
}
