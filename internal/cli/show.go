package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/oidkit/internal/oid"
	"github.com/roach88/oidkit/internal/registry"
	"github.com/roach88/oidkit/internal/wellknown"
)

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	OID         oid.ObjectIdentifier `json:"oid"`
	Arcs        []uint32             `json:"arcs"`
	Name        string               `json:"name,omitempty"`
	Description string               `json:"description,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <arc>...",
		Short: "Render an identifier in dotted-decimal form",
		Long: `Build an identifier from its arcs and print it in dotted-decimal form.
If the identifier is a well-known one, its name is printed as well.

Example:
  oidkit show 1 2 840 10045 3 1 7`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	arcs, err := parseArcs(args)
	if err != nil {
		code, message := errorParts(err)
		return formatter.fail(ExitCommandError, code, message, nil)
	}

	id, err := oid.New(arcs...)
	if err != nil {
		var details any
		var invalid *oid.InvalidError
		if errors.As(err, &invalid) {
			details = map[string]any{"reason": invalid.Reason, "arcs": invalid.Nodes}
		}
		return formatter.fail(ExitFailure, registry.ErrCodeInvalidOID, err.Error(), details)
	}

	known, isKnown := wellknown.Find(id)
	opts.logger().Debug("identifier built", "oid", id, "arcs", id.Len(), "well_known", isKnown)

	if formatter.Format == "json" {
		result := ShowResult{OID: id, Arcs: id.Nodes()}
		if isKnown {
			result.Name = known.Name
			result.Description = known.Description
		}
		return formatter.Success(result)
	}

	if _, err := id.WriteTo(formatter.Writer); err != nil {
		return WrapExitError(ExitCommandError, "writing output", err)
	}
	if isKnown {
		fmt.Fprintf(formatter.Writer, " (%s)", known.Name)
	}
	fmt.Fprintln(formatter.Writer)
	return nil
}
