package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/oidkit/internal/registry"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
	CBOR   bool   // write deterministic CBOR instead of canonical JSON
}

// CompilationResult summarises a compiled registry.
type CompilationResult struct {
	Entries   int             `json:"entries"`
	Files     int             `json:"files"`
	Digest    string          `json:"digest"`
	Encoding  string          `json:"encoding"` // "json" | "cbor"
	Output    string          `json:"output,omitempty"`
	Canonical json.RawMessage `json:"canonical,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [registry-dir]",
		Short: "Compile registry files to canonical form",
		Long: `Compile the registry files in a directory to canonical JSON, or to
deterministic CBOR with --cbor, and print the registry digest.

Without --output the canonical JSON is written to stdout. The digest is
the SHA-256 of the canonical JSON and does not depend on the source
format, file layout or entry order.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&opts.CBOR, "cbor", false, "write deterministic CBOR (requires --output)")

	return cmd
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.CBOR && opts.Output == "" {
		return formatter.fail(ExitCommandError, ErrCodeConfig, "--cbor requires --output", nil)
	}

	dir, err := resolveRegistryDir(opts.RootOptions, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	// Collect every error so one run reports all of them
	loadResult, loadErrors := loadRegistry(opts.RootOptions, dir, registry.LoadModeCollectAll)
	if loadResult == nil {
		return outputDirError(formatter, loadErrors)
	}

	formatter.VerboseLog("Found %d registry file(s) in %s", len(loadResult.Files), dir)

	if len(loadErrors) > 0 {
		return outputLoadErrors(formatter, "Compilation failed", ExitCommandError, loadErrors)
	}

	reg := loadResult.Registry
	canonical, err := reg.MarshalCanonical()
	if err != nil {
		return formatter.fail(ExitCommandError, registry.ErrCodeGeneric, err.Error(), nil)
	}
	digest, err := reg.Digest()
	if err != nil {
		return formatter.fail(ExitCommandError, registry.ErrCodeGeneric, err.Error(), nil)
	}

	result := CompilationResult{
		Entries:  reg.Len(),
		Files:    len(loadResult.Files),
		Digest:   digest,
		Encoding: "json",
		Output:   opts.Output,
	}

	if opts.Output != "" {
		data := canonical
		if opts.CBOR {
			result.Encoding = "cbor"
			if data, err = reg.EncodeCBOR(); err != nil {
				return formatter.fail(ExitCommandError, registry.ErrCodeGeneric, err.Error(), nil)
			}
		}
		if err := os.WriteFile(opts.Output, data, 0644); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
		opts.logger().Info("registry compiled", "output", opts.Output, "encoding", result.Encoding, "bytes", len(data), "digest", digest)
	}

	if formatter.Format == "json" {
		if opts.Output == "" {
			result.Canonical = canonical
		}
		return formatter.Success(result)
	}

	if opts.Output == "" {
		fmt.Fprintf(formatter.Writer, "%s\n", canonical)
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d identifier(s) from %d file(s)\n", result.Entries, result.Files)
	fmt.Fprintf(formatter.Writer, "digest: %s\n", digest)
	if opts.CBOR {
		fmt.Fprintf(formatter.Writer, "Wrote CBOR to %s\n", opts.Output)
	} else {
		fmt.Fprintf(formatter.Writer, "Wrote canonical JSON to %s\n", opts.Output)
	}
	return nil
}
