package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"phangs2caom2/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directories, ledger, and naming configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report := newStatusReport(cmd.OutOrStdout())

			report.section("Configuration")
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found, defaults in use)"
			}
			report.line("Config", statusInfo, configDetail)
			report.line("Collection", statusInfo, fmt.Sprintf("%s (archive %s)", cfg.Collection.Name, cfg.Collection.Archive))
			report.line("Header validation", statusInfo, yesNo(cfg.Validation.RequireHeaders))

			report.section("Preflight")
			results := preflight.RunAll(cfg)
			for _, r := range results {
				level := statusOK
				if !r.Passed {
					level = statusError
				}
				report.line(r.Name, level, r.Detail)
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d preflight check(s) failed", len(failed))
			}
			return nil
		},
	}
}
