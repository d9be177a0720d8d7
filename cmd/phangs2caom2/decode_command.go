package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"phangs2caom2/internal/lineage"
	"phangs2caom2/internal/naming"
)

type decodedName struct {
	Input            string `json:"input"`
	FileID           string `json:"file_id,omitempty"`
	FileURI          string `json:"file_uri,omitempty"`
	ObservationID    string `json:"observation_id,omitempty"`
	ProductID        string `json:"product_id,omitempty"`
	Telescope        string `json:"telescope,omitempty"`
	TargetName       string `json:"target_name,omitempty"`
	EnergyTransition string `json:"energy_transition,omitempty"`
	AlgorithmName    string `json:"algorithm_name,omitempty"`
	Lineage          string `json:"lineage,omitempty"`
	Derived          bool   `json:"derived"`
	Preview          bool   `json:"preview"`
	Error            string `json:"error,omitempty"`
}

func newDecodeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <name-or-uri>...",
		Short: "Show the fields decoded from artifact file names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := ctx.newDecoder()
			if err != nil {
				return err
			}
			decoded, errs := decodeAll(decoder, args)
			if asJSON {
				if err := writeJSON(cmd, decoded); err != nil {
					return err
				}
				return errors.Join(errs...)
			}

			rows := make([][]string, 0, len(decoded))
			for _, d := range decoded {
				if d.Error != "" {
					rows = append(rows, []string{d.Input, "error: " + d.Error})
					continue
				}
				rows = append(rows, []string{
					d.Input,
					d.ObservationID,
					d.ProductID,
					d.Telescope,
					d.TargetName,
					d.EnergyTransition,
					d.AlgorithmName,
					yesNo(d.Derived),
					yesNo(d.Preview),
				})
			}
			headers := []string{"Input", "Observation", "Product", "Telescope", "Target", "Line", "Algorithm", "Derived", "Preview"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func decodeAll(decoder *naming.Decoder, inputs []string) ([]decodedName, []error) {
	out := make([]decodedName, 0, len(inputs))
	var errs []error
	for _, input := range inputs {
		name, err := decoder.Decode(input)
		if err != nil {
			out = append(out, decodedName{Input: input, Error: err.Error()})
			errs = append(errs, fmt.Errorf("decode %s: %w", input, err))
			continue
		}
		out = append(out, decodedName{
			Input:            input,
			FileID:           name.FileID(),
			FileURI:          name.FileURI(),
			ObservationID:    name.ObservationID(),
			ProductID:        name.ProductID(),
			Telescope:        name.Telescope(),
			TargetName:       name.TargetName(),
			EnergyTransition: name.EnergyTransition(),
			AlgorithmName:    name.AlgorithmName(),
			Lineage:          lineage.EntryFor(name).String(),
			Derived:          name.IsDerived(),
			Preview:          name.IsPreview(),
		})
	}
	return out, errs
}
