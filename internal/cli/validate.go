package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/oidkit/internal/registry"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	FailFast bool
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Entries int               `json:"entries"`
	Files   int               `json:"files"`
	Errors  []LoadErrorDetail `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [registry-dir]",
		Short: "Validate registry files",
		Long: `Validate the YAML, CUE and HCL registry files in a directory.

Every entry must have a well-formed name and arcs that form a valid
identifier, and names must be unique across files. Without a directory
argument the configured registry directory is used.

Exits with status 1 when any entry is invalid.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first error")

	return cmd
}

func runValidate(opts *ValidateOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dir, err := resolveRegistryDir(opts.RootOptions, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	mode := registry.LoadModeCollectAll
	if opts.FailFast {
		mode = registry.LoadModeFailFast
	}
	loadResult, loadErrors := loadRegistry(opts.RootOptions, dir, mode)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil {
		return outputDirError(formatter, loadErrors)
	}

	formatter.VerboseLog("Found %d registry file(s) in %s", len(loadResult.Files), dir)

	if len(loadErrors) > 0 {
		return outputLoadErrors(formatter, "Validation failed", ExitFailure, loadErrors)
	}

	reg := loadResult.Registry
	for _, e := range reg.Entries() {
		formatter.VerboseLog("Validated %s = %s (%s)", e.Name, e.OID, e.Source)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{
			Valid:   true,
			Entries: reg.Len(),
			Files:   len(loadResult.Files),
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d identifier(s) valid in %d file(s)\n", reg.Len(), len(loadResult.Files))
	return nil
}
