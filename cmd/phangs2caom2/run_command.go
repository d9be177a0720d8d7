package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"phangs2caom2/internal/ingest"
	"phangs2caom2/internal/ledger"
	"phangs2caom2/internal/lineage"
	"phangs2caom2/internal/preflight"
)

type runOptions struct {
	local         []string
	lineage       []string
	collection    string
	observationID string
	output        string
	input         string
	noValidate    bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest artifact headers into an observation record",
		Long: `Ingest one observation from local header dumps and/or lineage entries.

Lineage entries take the form <product_id>/<scheme>:<archive>/<file>. When no
lineage is given, URIs are derived from the local header file names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.local) == 0 && len(opts.lineage) == 0 {
				return errors.New("at least one of --local or --lineage is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
				names := make([]string, 0, len(failed))
				for _, r := range failed {
					names = append(names, fmt.Sprintf("%s %s", r.Name, r.Detail))
				}
				return fmt.Errorf("preflight failed: %s", strings.Join(names, "; "))
			}

			decoder, err := ctx.newDecoder()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			collection := strings.TrimSpace(opts.collection)
			if collection == "" {
				collection = cfg.Collection.Name
			}
			observationID := strings.TrimSpace(opts.observationID)
			output := strings.TrimSpace(opts.output)
			if output == "" {
				if observationID == "" {
					uris, err := lineage.URIs(decoder, opts.lineage, opts.local)
					if err != nil {
						return err
					}
					name, err := decoder.Decode(uris[0])
					if err != nil {
						return err
					}
					observationID = name.ObservationID()
				}
				output = cfg.OutputPath(observationID)
			}

			return ctx.withLedger(func(store *ledger.Store) error {
				processor := ingest.NewProcessor(decoder, logger,
					ingest.WithRecorder(store),
					ingest.WithHeaderValidation(cfg.Validation.RequireHeaders && !opts.noValidate),
				)
				result, err := processor.Run(cmd.Context(), ingest.Request{
					Collection:    collection,
					ObservationID: observationID,
					LocalPaths:    opts.local,
					Lineage:       opts.lineage,
					InputPath:     strings.TrimSpace(opts.input),
					OutputPath:    output,
				})
				if err != nil {
					if result != nil && result.RunID != "" {
						return fmt.Errorf("run %s: %w", shortID(result.RunID), err)
					}
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s: ingested %d, skipped %d\n", shortID(result.RunID), result.Ingested, result.Skipped)
				fmt.Fprintf(out, "Record written to %s\n", result.OutputPath)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&opts.local, "local", nil, "Local header dump paths (repeatable or comma-separated)")
	cmd.Flags().StringSliceVar(&opts.lineage, "lineage", nil, "Lineage entries as <product_id>/<uri>")
	cmd.Flags().StringVar(&opts.collection, "collection", "", "Collection name (defaults to the configured collection)")
	cmd.Flags().StringVar(&opts.observationID, "observation", "", "Observation ID (defaults to the first artifact's)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output record path (defaults to <output_dir>/<observation>.json)")
	cmd.Flags().StringVar(&opts.input, "input", "", "Existing record to update")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "Allow artifacts without a local header")
	return cmd
}

// shortID trims a run UUID to its first block for display.
func shortID(id string) string {
	if head, _, ok := strings.Cut(id, "-"); ok {
		return head
	}
	return id
}
