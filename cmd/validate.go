package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"molgen/pkg/document"
	"molgen/pkg/parser"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check molecule files for errors and structural warnings",
	Long: `Parse each file and report the first error with its line number, or the
structural warnings for files that parse (disconnected fragments, isolated
atoms, atoms sharing a position, invisible bonds). The command fails when any
file has an error, or with --strict when any file has a warning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		var results []validationResult
		failed := 0
		for _, filename := range args {
			result := validateFile(filename)
			if result.Error != nil || (strict && len(result.Issues) > 0) {
				failed++
			}
			results = append(results, result)
		}

		var err error
		if cfg.Output.Format == "json" {
			err = writeValidationJSON(cmd.OutOrStdout(), results)
		} else {
			err = writeValidationHuman(cmd.OutOrStdout(), results)
		}
		if err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("format", "f", "human", "Output format (human, json)")
	validateCmd.Flags().Bool("strict", false, "Treat warnings as failures")
}

type validationError struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

type validationResult struct {
	File    string                     `json:"file"`
	Formula string                     `json:"formula,omitempty"`
	Error   *validationError           `json:"error,omitempty"`
	Issues  []document.ValidationIssue `json:"issues,omitempty"`
}

func validateFile(filename string) validationResult {
	result := validationResult{File: filename}

	doc, err := loadDocument(filename)
	if err != nil {
		result.Error = describeError(err)
		logger.Debug("validation failed", "file", filename, "error", err)
		return result
	}

	result.Formula = doc.GetMolecule().Formula()
	issues, err := doc.Validate()
	if err != nil {
		result.Error = describeError(err)
		return result
	}
	result.Issues = issues
	return result
}

// describeError flattens parse errors into kind, line and message; anything
// else (I/O, reference table) is reported as an IOError
func describeError(err error) *validationError {
	var pe *parser.Error
	if errors.As(err, &pe) {
		return &validationError{Kind: pe.Kind.String(), Line: pe.Line, Message: pe.Message()}
	}
	return &validationError{Kind: "IOError", Message: err.Error()}
}

func writeValidationJSON(w io.Writer, results []validationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func writeValidationHuman(w io.Writer, results []validationResult) error {
	for _, r := range results {
		switch {
		case r.Error != nil && r.Error.Line > 0:
			fmt.Fprintf(w, "%s:%d: %s: %s\n", r.File, r.Error.Line, r.Error.Kind, r.Error.Message)
		case r.Error != nil:
			fmt.Fprintf(w, "%s: %s\n", r.File, r.Error.Message)
		default:
			fmt.Fprintf(w, "%s: ok (%s)\n", r.File, valueOr(r.Formula, "empty"))
			for _, issue := range r.Issues {
				fmt.Fprintf(w, "  %s: %s\n", issue.Severity, issue.Message)
			}
		}
	}
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
