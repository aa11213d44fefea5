package cmd

import (
	"encoding/json"
	"fmt"

	"molgen/pkg/formatter"
	"molgen/pkg/reference"

	"github.com/spf13/cobra"
)

var elementsCmd = &cobra.Command{
	Use:   "elements [symbol...]",
	Short: "List the element reference table",
	Long: `List the chemical elements known to the parser with their atomic number,
default radius and default colour. Pass symbols to show only those elements.
The table is the embedded default unless reference_table is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		entries := table.Entries()
		if len(args) > 0 {
			var selected []reference.Entry
			for _, symbol := range args {
				entry, err := table.MustLookup(symbol)
				if err != nil {
					return err
				}
				selected = append(selected, entry)
			}
			entries = selected
		}

		out := cmd.OutOrStdout()
		if cfg.Output.Format == "json" {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}

		for _, e := range entries {
			fmt.Fprintln(out, formatEntry(e))
		}
		return nil
	},
}

var coloursCmd = &cobra.Command{
	Use:     "colours",
	Aliases: []string{"colors"},
	Short:   "List the named colours accepted in aes(colour=...)",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.New().Palette())
		return nil
	},
}

func init() {
	elementsCmd.Flags().StringP("format", "f", "human", "Output format (human, json)")
}

func formatEntry(e reference.Entry) string {
	return fmt.Sprintf("%s %3d  %-2s  %-14s r=%-6g %s",
		formatter.Swatch(e.Colour), e.AtomicNumber, e.Symbol, e.Name, e.Radius, e.Colour)
}
