package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Rewrite a molecule file in canonical form",
	Long: `Parse a molecule file and write it back in canonical form: one statement
per line, consistent indentation, default aesthetics omitted and numbers in
their shortest exact form. Comments are not preserved. The canonical form
parses back to the same molecule.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		inPlace, _ := cmd.Flags().GetBool("in-place")
		outputFile, _ := cmd.Flags().GetString("output")
		backup, _ := cmd.Flags().GetBool("backup")
		comment, _ := cmd.Flags().GetString("comment")

		if inPlace && outputFile != "" {
			return fmt.Errorf("--in-place and --output cannot be used together")
		}

		doc, err := loadDocument(filename)
		if err != nil {
			return err
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		formatted := newFormatter(table, comment).Format(doc.GetMolecule())

		switch {
		case inPlace:
			if backup {
				backupFile := filename + ".bak"
				if err := copyFile(filename, backupFile); err != nil {
					return fmt.Errorf("failed to create backup: %w", err)
				}
				logger.Info("backup created", "file", backupFile)
			}
			if err := os.WriteFile(filename, []byte(formatted), 0644); err != nil {
				return fmt.Errorf("failed to write file %s: %w", filename, err)
			}
			logger.Info("file formatted", "file", filename)
		case outputFile != "":
			if err := os.WriteFile(outputFile, []byte(formatted), 0644); err != nil {
				return fmt.Errorf("failed to write file %s: %w", outputFile, err)
			}
			logger.Info("formatted output written", "file", outputFile)
		default:
			fmt.Fprint(cmd.OutOrStdout(), formatted)
		}

		return nil
	},
}

func init() {
	formatCmd.Flags().BoolP("in-place", "i", false, "Rewrite the file in place")
	formatCmd.Flags().StringP("output", "o", "", "Write output to a specific file")
	formatCmd.Flags().BoolP("backup", "b", false, "Create a .bak copy when rewriting in place")
	formatCmd.Flags().StringP("comment", "c", "", "Comment to place above the ELEMENTS block")
	formatCmd.Flags().Int("indent", 4, "Spaces per indentation level")
	formatCmd.Flags().Bool("tabs", false, "Indent with tabs instead of spaces")
}

func copyFile(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, content, 0644)
}
