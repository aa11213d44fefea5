package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"molgen/pkg/config"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a .molgen.yaml configuration file",
	Long: `Write a .molgen.yaml configuration file holding the current settings, so
they can be edited and picked up by later runs. Settings given on the command
line (for example --reference-table or --log-level) are written too.

Examples:
  # Create .molgen.yaml in the current directory
  molgen init

  # Create it next to your molecules, replacing any existing file
  molgen init --overwrite molecules/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var overwrite bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing .molgen.yaml file")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	info, err := os.Stat(targetDir)
	if err != nil {
		return fmt.Errorf("failed to access directory %s: %w", targetDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", targetDir)
	}

	settings := config.Defaults()
	if cfg != nil {
		settings = *cfg
	}

	path := filepath.Join(targetDir, config.FileName)
	if err := settings.WriteFile(path, overwrite); err != nil {
		return err
	}

	logger.Info("config file written", "file", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
