package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"molgen/pkg/molecule"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file] [element-index]",
	Short: "Extract the neighbourhood of an element as a document",
	Long: `Extract an element together with its bonded neighbours and write them out
as a self-contained molecule document. Only bonds whose two ends are both
extracted are kept.

Use --fragment to extract the whole connected fragment, --path-to to extract
the shortest bond path to another element, or --scope for the element alone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid element index %q: %w", args[1], err)
		}

		doc, err := loadDocument(filename)
		if err != nil {
			return err
		}
		m := doc.GetMolecule()
		g := doc.GetTopology()

		if _, ok := m.Element(index); !ok {
			return fmt.Errorf("element not found: %d", index)
		}

		wholeFragment, _ := cmd.Flags().GetBool("fragment")
		scopeOnly, _ := cmd.Flags().GetBool("scope")
		pathTo, _ := cmd.Flags().GetInt("path-to")

		var selected []int
		switch {
		case cmd.Flags().Changed("path-to"):
			selected, err = g.Path(index, pathTo)
		case wholeFragment:
			var fragments [][]int
			fragments, err = g.Fragments()
			for _, fragment := range fragments {
				if containsIndex(fragment, index) {
					selected = fragment
				}
			}
		case scopeOnly:
			selected = []int{index}
		default:
			selected, err = g.Neighbours(index)
			selected = append([]int{index}, selected...)
		}
		if err != nil {
			return err
		}

		sub := subMolecule(m, selected)
		logger.Debug("elements extracted", "from", index, "elements", len(sub.Elements), "bonds", len(sub.Bonds))

		table, err := loadTable()
		if err != nil {
			return err
		}
		comment := fmt.Sprintf("extracted from %s around element %d", filepath.Base(filename), index)
		fmt.Fprint(cmd.OutOrStdout(), newFormatter(table, comment).Format(sub))
		return nil
	},
}

func init() {
	extractCmd.Flags().BoolP("fragment", "F", false, "Extract the whole connected fragment")
	extractCmd.Flags().BoolP("scope", "", false, "Extract only the element itself (no bonds)")
	extractCmd.Flags().IntP("path-to", "p", 0, "Extract the shortest bond path to this element")
}

// subMolecule keeps the selected elements and the bonds between them, both in document order
func subMolecule(m *molecule.Molecule, selected []int) *molecule.Molecule {
	keep := make(map[int]bool, len(selected))
	for _, index := range selected {
		keep[index] = true
	}

	var elements []molecule.Element
	for _, e := range m.Elements {
		if keep[e.Index] {
			elements = append(elements, e)
		}
	}

	var bonds []molecule.Bond
	for _, b := range m.Bonds {
		if keep[b.From] && keep[b.To] {
			bonds = append(bonds, b)
		}
	}

	return molecule.New(elements, bonds)
}

func containsIndex(indices []int, index int) bool {
	for _, i := range indices {
		if i == index {
			return true
		}
	}
	return false
}
