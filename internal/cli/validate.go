package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ratelab/ratelab/internal/config"
)

// ValidationIssue is one schedule configuration problem.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	FileCount int               `json:"file_count"`
	Errors    []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schedule-dir>",
		Short: "Validate a schedule configuration directory",
		Long: `Validate CUE schedule configuration without opening a database.

Checks bracket contiguity, rate vector lengths, preset completeness,
and population dataset shape against the bracket schema.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, loadErrors := config.Load(dir, config.LoadModeCollectAll)

	// Hard load errors (directory not found, no files, broken CUE).
	if result == nil && len(loadErrors) > 0 {
		var loadErr *config.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", loadErr.Code, loadErr.Message))
		}
		_ = formatter.Error(config.ErrCodeGeneric, loadErrors[0].Error(), nil)
		return NewExitError(ExitCommandError, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, dir)

	issues := make([]ValidationIssue, 0, len(loadErrors))
	for _, err := range loadErrors {
		var loadErr *config.LoadError
		if errors.As(err, &loadErr) {
			issue := ValidationIssue{Code: loadErr.Code, Message: loadErr.Message}
			if loadErr.Pos.IsValid() {
				issue.Line = loadErr.Pos.Line()
			}
			issues = append(issues, issue)
			continue
		}
		issues = append(issues, ValidationIssue{Code: config.ErrCodeGeneric, Message: err.Error()})
	}

	if len(issues) > 0 {
		return outputValidationErrors(formatter, result.FileCount, issues)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, FileCount: result.FileCount})
	}
	fmt.Fprintln(formatter.Writer, "✓ Schedule configuration valid")
	return nil
}

// outputValidationErrors outputs validation errors with exit code 1.
func outputValidationErrors(formatter *OutputFormatter, fileCount int, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: false, FileCount: fileCount, Errors: issues}
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", issue.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
