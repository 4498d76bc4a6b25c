package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/oidkit/internal/registry"
	"github.com/roach88/oidkit/internal/wellknown"
)

// NewKnownCommand creates the known command.
func NewKnownCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "known [name]",
		Short: "List built-in well-known identifiers",
		Long: `List the built-in table of well-known identifiers (curves, hash and
signature algorithms, X.509 extensions), or show one by name.

Example:
  oidkit known
  oidkit known p256`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKnown(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runKnown(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	entries := wellknown.All()
	if len(args) == 1 {
		e, ok := wellknown.Lookup(args[0])
		if !ok {
			return formatter.fail(ExitFailure, registry.ErrCodeNotFound,
				fmt.Sprintf("no well-known identifier named %q", args[0]), nil)
		}
		if formatter.Format == "json" {
			return formatter.Success(e)
		}
		entries = []wellknown.Entry{e}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, e.OID.String(), e.Description}
	}
	return writeTable(formatter.Writer, []string{"NAME", "OID", "DESCRIPTION"}, rows)
}

// writeTable writes tab-aligned columns with a header row. Empty cells are
// written as "-".
func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if c == "" {
				c = "-"
			}
			cells[i] = c
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
