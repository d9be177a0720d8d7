package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"phangs2caom2/internal/ledger"
)

const defaultHistoryLimit = 20

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent ingestion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			return ctx.withLedger(func(store *ledger.Store) error {
				runs, err := store.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.ObservationID,
						string(run.Status),
						formatTime(run.StartedAt),
						formatDuration(*run),
						run.ErrorKind,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Run", "Observation", "Status", "Started", "Duration", "Error"}, rows, 5))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of runs to list")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its artifact outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *ledger.Store) error {
				run, artifacts, err := loadRun(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, struct {
						Run       *ledger.Run       `json:"run"`
						Artifacts []ledger.Artifact `json:"artifacts"`
					}{run, artifacts})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderRun(run, artifacts))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

func loadRun(ctx context.Context, store *ledger.Store, id string) (*ledger.Run, []ledger.Artifact, error) {
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	artifacts, err := store.Artifacts(ctx, run.ID)
	if err != nil {
		return nil, nil, err
	}
	return run, artifacts, nil
}

func renderRun(run *ledger.Run, artifacts []ledger.Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run:          %s\n", run.ID)
	fmt.Fprintf(&b, "Collection:   %s\n", run.Collection)
	fmt.Fprintf(&b, "Observation:  %s\n", run.ObservationID)
	fmt.Fprintf(&b, "Status:       %s\n", run.Status)
	fmt.Fprintf(&b, "Started:      %s\n", formatTime(run.StartedAt))
	if run.FinishedAt != nil {
		fmt.Fprintf(&b, "Duration:     %s\n", formatDuration(*run))
	}
	if run.OutputPath != "" {
		fmt.Fprintf(&b, "Output:       %s\n", run.OutputPath)
	}
	if run.ErrorKind != "" {
		fmt.Fprintf(&b, "Error:        [%s] %s\n", run.ErrorKind, run.ErrorMessage)
	}
	if len(artifacts) == 0 {
		b.WriteString("\nNo artifacts processed\n")
		return b.String()
	}

	rows := make([][]string, 0, len(artifacts))
	for i, a := range artifacts {
		detail := a.ErrorKind
		if a.ErrorMessage != "" {
			detail = fmt.Sprintf("[%s] %s", a.ErrorKind, a.ErrorMessage)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.URI,
			a.ProductID,
			string(a.Status),
			yesNo(a.HeaderPath != ""),
			detail,
		})
	}
	b.WriteString("\n")
	b.WriteString(renderTable([]string{"#", "URI", "Product", "Status", "Header", "Detail"}, rows, 1))
	b.WriteString("\n")
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDuration(run ledger.Run) string {
	if run.FinishedAt == nil {
		return ""
	}
	return run.Duration().Round(time.Millisecond).String()
}
