package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/oidkit/internal/registry"
	"github.com/roach88/oidkit/internal/store"
)

// CatalogOptions holds flags shared by the catalog commands.
type CatalogOptions struct {
	*RootOptions
	Database string
}

// addDatabaseFlag registers --db on a catalog command.
func addDatabaseFlag(cmd *cobra.Command, opts *CatalogOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite catalog (default from config)")
}

// databasePath returns --db or the configured database.
func (o *CatalogOptions) databasePath() string {
	if o.Database != "" {
		return o.Database
	}
	return o.cfg().Database
}

// openStore opens the catalog with the command's logger and ID generator.
func (o *CatalogOptions) openStore() (*store.Store, error) {
	path := o.databasePath()
	storeOpts := []store.Option{store.WithLogger(o.logger())}
	if o.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(o.IDGenerator))
	}
	o.logger().Debug("opening catalog", "path", path)
	return store.Open(path, storeOpts...)
}

// closeStore closes st, logging any error.
func (o *CatalogOptions) closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		o.logger().Error("error closing catalog", "error", err)
	}
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import [registry-dir | registry.cbor]",
		Short: "Import a registry into the catalog",
		Long: `Import a registry into the SQLite catalog. The source is either a
directory of registry files or a CBOR file written by "compile --cbor".

Entries replace catalog rows with the same name. Every import is recorded
with a UUIDv7 ID, a sequence number and the registry digest.

Example:
  oidkit import --db ./oidkit.db ./registry`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args, cmd)
		},
	}

	addDatabaseFlag(cmd, opts)

	return cmd
}

func runImport(opts *CatalogOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	source, err := resolveRegistryDir(opts.RootOptions, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	var reg *registry.Registry
	if filepath.Ext(source) == ".cbor" {
		data, err := os.ReadFile(source)
		if err != nil {
			return formatter.fail(ExitCommandError, registry.ErrCodeNotFound, fmt.Sprintf("reading %s: %v", source, err), nil)
		}
		reg, err = registry.DecodeCBOR(data)
		if err != nil {
			return formatter.fail(ExitCommandError, registry.ErrCodeLoadFailed, err.Error(), nil)
		}
	} else {
		loadResult, loadErrors := loadRegistry(opts.RootOptions, source, registry.LoadModeCollectAll)
		if loadResult == nil {
			return outputDirError(formatter, loadErrors)
		}
		if len(loadErrors) > 0 {
			return outputLoadErrors(formatter, "Import failed", ExitCommandError, loadErrors)
		}
		reg = loadResult.Registry
	}

	st, err := opts.openStore()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, fmt.Sprintf("opening catalog: %v", err), nil)
	}
	defer opts.closeStore(st)

	rec, err := st.Import(cmd.Context(), reg, source)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(rec)
	}

	fmt.Fprintf(formatter.Writer, "✓ Imported %d identifier(s) from %s\n", rec.EntryCount, rec.Source)
	fmt.Fprintf(formatter.Writer, "import: %s\n", rec.ID)
	fmt.Fprintf(formatter.Writer, "seq:    %d\n", rec.Seq)
	fmt.Fprintf(formatter.Writer, "digest: %s\n", rec.Digest)
	return nil
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look up a named identifier in the catalog",
		Long: `Look up a named identifier in the SQLite catalog.

Exits with status 1 when the name is not in the catalog.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(opts, args[0], cmd)
		},
	}

	addDatabaseFlag(cmd, opts)

	return cmd
}

func runLookup(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, fmt.Sprintf("opening catalog: %v", err), nil)
	}
	defer opts.closeStore(st)

	rec, err := st.Lookup(cmd.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.fail(ExitFailure, registry.ErrCodeNotFound, fmt.Sprintf("no identifier named %q in catalog", name), nil)
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(rec)
	}

	fmt.Fprintf(formatter.Writer, "name:        %s\n", rec.Name)
	fmt.Fprintf(formatter.Writer, "oid:         %s\n", rec.OID)
	if rec.Description != "" {
		fmt.Fprintf(formatter.Writer, "description: %s\n", rec.Description)
	}
	fmt.Fprintf(formatter.Writer, "import:      %s\n", rec.ImportID)
	fmt.Fprintf(formatter.Writer, "seq:         %d\n", rec.Seq)
	return nil
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	CatalogOptions
	Imports bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{CatalogOptions: CatalogOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		Long: `List every identifier in the SQLite catalog, ordered by arcs.
With --imports, list the recorded imports instead, oldest first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	addDatabaseFlag(cmd, &opts.CatalogOptions)
	cmd.Flags().BoolVar(&opts.Imports, "imports", false, "list imports instead of identifiers")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, fmt.Sprintf("opening catalog: %v", err), nil)
	}
	defer opts.closeStore(st)

	if opts.Imports {
		imports, err := st.Imports(cmd.Context())
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
		}
		if formatter.Format == "json" {
			return formatter.Success(imports)
		}
		rows := make([][]string, len(imports))
		for i, imp := range imports {
			rows[i] = []string{strconv.FormatInt(imp.Seq, 10), imp.ID, strconv.Itoa(imp.EntryCount), imp.Digest, imp.Source}
		}
		return writeTable(formatter.Writer, []string{"SEQ", "ID", "ENTRIES", "DIGEST", "SOURCE"}, rows)
	}

	records, err := st.List(cmd.Context())
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}
	if formatter.Format == "json" {
		return formatter.Success(records)
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Name, r.OID.String(), r.Description}
	}
	return writeTable(formatter.Writer, []string{"NAME", "OID", "DESCRIPTION"}, rows)
}
