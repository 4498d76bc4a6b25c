package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/oidkit/internal/oid"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading a registry directory.
type LoadResult struct {
	// Registry holds every entry that loaded cleanly. In collect-all mode it
	// is built even when some entries failed.
	Registry *Registry
	// Files lists the registry files found, in load order.
	Files []string
}

// Format is a registry file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
	FormatHCL  Format = "hcl"
)

// FormatOf returns the registry format for a file name, or "" if the
// extension is not recognised.
func FormatOf(path string) Format {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cue":
		return FormatCUE
	case ".hcl":
		return FormatHCL
	default:
		return ""
	}
}

// LoadDir loads every registry file directly inside dir (subdirectories are
// not scanned). If mode is LoadModeFailFast, returns on the first error. If
// mode is LoadModeCollectAll, collects all errors.
//
// A nil LoadResult means the directory itself could not be used.
func LoadDir(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("registry directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing registry directory: %v", err), Err: err}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	files, err := FindFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Err: err}}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no registry files found in %s", dir)}}
	}

	result := &LoadResult{Files: files}
	var (
		entries []Entry
		errs    []error
	)

	// CUE files in one directory form a single instance, so they are loaded
	// together rather than per file.
	var cueFiles []string
	for _, path := range files {
		var (
			loaded   []Entry
			fileErrs []error
		)
		switch FormatOf(path) {
		case FormatYAML:
			loaded, fileErrs = loadYAMLFile(path)
		case FormatHCL:
			loaded, fileErrs = loadHCLFile(path)
		case FormatCUE:
			cueFiles = append(cueFiles, path)
			continue
		}
		entries = append(entries, loaded...)
		errs = append(errs, fileErrs...)
		if mode == LoadModeFailFast && len(errs) > 0 {
			return result, errs[:1]
		}
	}
	if len(cueFiles) > 0 {
		loaded, cueErrs := loadCUEDir(dir)
		entries = append(entries, loaded...)
		errs = append(errs, cueErrs...)
		if mode == LoadModeFailFast && len(errs) > 0 {
			return result, errs[:1]
		}
	}

	entries, dupErrs := dedupe(entries)
	errs = append(errs, dupErrs...)
	if mode == LoadModeFailFast && len(errs) > 0 {
		return result, errs[:1]
	}

	reg, err := New(entries)
	if err != nil {
		// dedupe and the per-format loaders already checked everything New
		// checks, so this is unexpected.
		errs = append(errs, err)
		return result, errs
	}
	result.Registry = reg

	if reg.Len() == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no identifiers found in registry files"})
	}

	return result, errs
}

// FindFiles returns the registry files directly inside dir, sorted by name.
func FindFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if FormatOf(de.Name()) != "" {
			files = append(files, filepath.Join(dir, de.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// dedupe keeps the first definition of each name and reports the rest.
func dedupe(entries []Entry) ([]Entry, []error) {
	var errs []error
	seen := make(map[string]Entry, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if prev, dup := seen[e.Name]; dup {
			errs = append(errs, duplicateError(e, prev))
			continue
		}
		seen[e.Name] = e
		out = append(out, e)
	}
	return out, errs
}

// newEntry validates raw decoded fields and builds an Entry.
func newEntry(name string, values []int64, description string, pos Position) (Entry, error) {
	if err := ValidateName(name); err != nil {
		return Entry{}, &LoadError{Code: ErrCodeInvalidName, Message: err.Error(), Pos: pos}
	}
	if values == nil {
		return Entry{}, &LoadError{Code: ErrCodeMissingArcs, Message: fmt.Sprintf("%s: arcs is required", name), Pos: pos}
	}
	arcs, err := arcsFromInt64(values)
	if err != nil {
		return Entry{}, &LoadError{Code: ErrCodeArcRange, Message: fmt.Sprintf("%s: %v", name, err), Pos: pos, Err: err}
	}
	id, err := oid.New(arcs...)
	if err != nil {
		return Entry{}, &LoadError{Code: ErrCodeInvalidOID, Message: fmt.Sprintf("%s: %v", name, err), Pos: pos, Err: err}
	}
	return Entry{Name: name, OID: id, Description: description, Source: pos}, nil
}

// Code returns the LoadError code carried by err, or ErrCodeGeneric.
func Code(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}
