package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"molgen/pkg/document"
	"molgen/pkg/molecule"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a molecule file and print a summary",
	Long: `Parse a molecule file and print its formula, element and bond counts,
fragments and any structural warnings. The output can be human-readable or
JSON for further processing, in which case the full molecule is included.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		doc, err := loadDocument(filename)
		if err != nil {
			return err
		}

		switch cfg.Output.Format {
		case "json":
			return outputJSON(cmd.OutOrStdout(), doc)
		default:
			return outputHuman(cmd.OutOrStdout(), doc)
		}
	},
}

func init() {
	parseCmd.Flags().StringP("format", "f", "human", "Output format (human, json)")
}

// loadDocument parses a file with the configured parser and formatter
func loadDocument(filename string) (*document.Document, error) {
	p, err := newParser()
	if err != nil {
		return nil, err
	}
	table, err := p.Table()
	if err != nil {
		return nil, err
	}

	doc, err := document.NewFromFile(filename,
		document.WithParser(p),
		document.WithFormatter(newFormatter(table, "")),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("document parsed", "file", filename, "elements", len(doc.GetMolecule().Elements))
	return doc, nil
}

func outputJSON(w io.Writer, doc *document.Document) error {
	stats, err := doc.GetStats()
	if err != nil {
		return err
	}
	issues, err := doc.Validate()
	if err != nil {
		return err
	}

	output := struct {
		Filename string                     `json:"filename"`
		Stats    *document.Stats            `json:"stats"`
		Issues   []document.ValidationIssue `json:"issues"`
		Molecule *molecule.Molecule         `json:"molecule"`
	}{
		Filename: doc.GetFilename(),
		Stats:    stats,
		Issues:   issues,
		Molecule: doc.GetMolecule(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputHuman(w io.Writer, doc *document.Document) error {
	summary, err := doc.Summary()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, summary)
	return err
}
