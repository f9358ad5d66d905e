package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/department-enricher/internal/config"
	"github.com/spec-kit/department-enricher/internal/domain"
	"github.com/spec-kit/department-enricher/internal/enrichment"
	"github.com/spec-kit/department-enricher/internal/observability"
)

type options struct {
	keyName  string
	skip     bool
	pretty   bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "enrich [file]",
		Short: "Add a department field to collected documents",
		Long: `Reads a JSON array of documents from a file, or stdin when no file is
given, resolves the leading department code in the --key field and writes
the enriched array to stdout.

A document missing the key, or whose value does not start with a <...>
code, stops the run unless --skip is set.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.keyName, "key", "k", "department_codes", "field holding the department codes")
	cmd.Flags().BoolVar(&opts.skip, "skip", false, "drop documents that break the input contract instead of failing")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	logger, err := observability.NewCLILogger(config.LoggerConfig{Level: opts.logLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	enricher, err := enrichment.NewDepartmentEnricher(opts.keyName)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	docs, err := readDocuments(in)
	if err != nil {
		return err
	}

	out, err := enrichAll(enricher, docs, opts.skip, logger)
	if err != nil {
		logger.Error("enrichment failed", zap.Error(err))
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func readDocuments(r io.Reader) ([]domain.Document, error) {
	var docs []domain.Document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}

func enrichAll(enricher *enrichment.DepartmentEnricher, docs []domain.Document, skip bool, logger *zap.Logger) ([]domain.Document, error) {
	if !skip {
		return enricher.Enrich(docs)
	}
	out, rejected := enricher.EnrichValid(docs)
	for _, docErr := range rejected {
		logger.Warn("skipping document",
			zap.Int("index", docErr.Index),
			zap.String("key", enricher.KeyName()),
			zap.String("reason", docErr.Err.Error()))
	}
	return out, nil
}
