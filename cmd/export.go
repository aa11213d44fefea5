package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"molgen/pkg/export"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export a molecule to JSON, YAML, TOML, MessagePack or XYZ",
	Long: `Parse a molecule file and encode the resulting molecule for other tools.

Formats: json, yaml, toml, msgpack (binary) and xyz (symbols and coordinates
only). The result goes to stdout unless --output or --auto-name is given.

Examples:
  molgen export water.mol --to yaml
  molgen export water.mol --to msgpack -o water.msgpack
  molgen export water.mol --to xyz --auto-name`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		to, _ := cmd.Flags().GetString("to")
		outputFile, _ := cmd.Flags().GetString("output")
		autoName, _ := cmd.Flags().GetBool("auto-name")

		format, err := export.ParseFormat(to)
		if err != nil {
			return err
		}
		if autoName {
			if outputFile != "" {
				return fmt.Errorf("--auto-name and --output cannot be used together")
			}
			outputFile = strings.TrimSuffix(filename, filepath.Ext(filename)) + format.Extension()
		}

		doc, err := loadDocument(filename)
		if err != nil {
			return err
		}

		data, err := export.Marshal(doc.GetMolecule(), format)
		if err != nil {
			return err
		}

		if outputFile == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", outputFile, err)
		}
		logger.Info("molecule exported", "file", outputFile, "format", string(format), "bytes", len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("to", "t", "json", "Export format ("+strings.Join(export.Names(), ", ")+")")
	exportCmd.Flags().StringP("output", "o", "", "Write output to a specific file")
	exportCmd.Flags().BoolP("auto-name", "a", false, "Write next to the input, replacing its extension")
}
