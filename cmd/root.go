package cmd

import (
	"fmt"
	"log/slog"

	"molgen/pkg/config"
	"molgen/pkg/formatter"
	"molgen/pkg/parser"
	"molgen/pkg/reference"

	"github.com/spf13/cobra"
)

// Version information
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Settings shared by every command, filled in before a command runs
var (
	cfgFile string
	cfg     *config.Config
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "molgen",
	Short: "A parser and toolkit for molecule description files",
	Long: `molgen reads molecule description files made of an ELEMENTS block and a
BONDS block, validates them against a chemical element reference table and
turns them into a molecule model. The model can be summarised, checked for
structural problems, re-emitted in canonical form or exported to JSON, YAML,
TOML, MessagePack and XYZ.`,
	Version:       getVersionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = cfg.Log.NewLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		if cfg.ConfigFile != "" {
			logger.Debug("config loaded", "file", cfg.ConfigFile)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "molgen %s\n", getVersionString())
		fmt.Fprintf(out, "  Version: %s\n", version)
		fmt.Fprintf(out, "  Commit:  %s\n", commit)
		fmt.Fprintf(out, "  Date:    %s\n", date)
	},
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func Execute() error {
	return rootCmd.Execute()
}

// loadTable returns the configured reference table, or the embedded one
func loadTable() (*reference.Table, error) {
	if cfg == nil || cfg.ReferenceTable == "" {
		return reference.Default()
	}
	table, err := reference.LoadFile(cfg.ReferenceTable)
	if err != nil {
		return nil, err
	}
	logger.Debug("reference table loaded", "file", cfg.ReferenceTable, "symbols", table.Len())
	return table, nil
}

// newParser builds a parser bound to the configured table and logger
func newParser() (*parser.Parser, error) {
	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	return parser.New(table, parser.WithLogger(logger)), nil
}

// newFormatter builds a formatter from the configured output settings
func newFormatter(table *reference.Table, comment string) *formatter.Formatter {
	opts := []formatter.Option{formatter.WithTable(table)}
	if cfg != nil {
		opts = append(opts, formatter.WithIndent(cfg.Output.Indent, !cfg.Output.Tabs))
	}
	if comment != "" {
		opts = append(opts, formatter.WithComment(comment))
	}
	return formatter.New(opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .molgen.yaml in the working directory or $HOME/.config/molgen)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().String("reference-table", "", "Element reference table CSV (default: embedded table)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(elementsCmd)
	rootCmd.AddCommand(coloursCmd)
	rootCmd.AddCommand(versionCmd)
}
