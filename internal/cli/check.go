package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/oidkit/internal/oid"
)

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Valid   bool       `json:"valid"`
	Arcs    []uint32   `json:"arcs"`
	OID     string     `json:"oid,omitempty"`
	Reason  oid.Reason `json:"reason,omitempty"`
	Message string     `json:"message,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <arc>...",
		Short: "Check whether arcs form a valid identifier",
		Long: `Check arcs against the identifier rules: at least three arcs, a root
arc of 0, 1 or 2, and a first-level arc of at most 39.

Exits with status 1 when the identifier is invalid.

Example:
  oidkit check 1 40 1`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	arcs, err := parseArcs(args)
	if err != nil {
		code, message := errorParts(err)
		return formatter.fail(ExitCommandError, code, message, nil)
	}

	// Static defers the failure, so the result can be inspected without
	// going through an error return first.
	id := oid.Static(arcs)
	result := CheckResult{Valid: id.Valid(), Arcs: arcs}

	var invalid *oid.InvalidError
	if errors.As(id.Err(), &invalid) {
		result.Reason = invalid.Reason
		result.Message = invalid.Error()
	} else {
		result.OID = id.String()
	}
	opts.logger().Debug("identifier checked", "arcs", len(arcs), "valid", result.Valid, "reason", result.Reason)

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", result.OID)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s\n", result.Message)
	}

	if !result.Valid {
		return reported(NewExitError(ExitFailure, result.Message))
	}
	return nil
}
