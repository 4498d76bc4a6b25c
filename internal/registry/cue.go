package registry

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// loadCUEDir builds the CUE instance in dir and extracts the top-level
// "oid" struct:
//
//	oid: p256: {
//		arcs:        [1, 2, 840, 10045, 3, 1, 7]
//		description: "NIST P-256"
//	}
func loadCUEDir(dir string) ([]Entry, []error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{cueLoadError(ErrCodeLoadFailed, "loading CUE files", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{cueLoadError(ErrCodeBuildFailed, "building CUE value", err)}
	}
	return extractCUE(value)
}

// extractCUE reads entries from a built CUE value.
func extractCUE(value cue.Value) ([]Entry, []error) {
	oidsVal := value.LookupPath(cue.ParsePath("oid"))
	if !oidsVal.Exists() {
		return nil, nil
	}

	iter, err := oidsVal.Fields()
	if err != nil {
		return nil, []error{cueLoadError(ErrCodeGeneric, "iterating oid", err)}
	}

	var (
		entries []Entry
		errs    []error
	)
	for iter.Next() {
		name := iter.Label()
		v := iter.Value()
		pos := positionOf(v.Pos())

		values, err := cueArcs(v)
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeArcRange, Message: fmt.Sprintf("%s: %v", name, err), Pos: pos, Err: err})
			continue
		}

		var description string
		if d := v.LookupPath(cue.ParsePath("description")); d.Exists() {
			description, err = d.String()
			if err != nil {
				errs = append(errs, cueLoadError(ErrCodeGeneric, name+": description", err))
				continue
			}
		}

		e, err := newEntry(name, values, description, pos)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

// cueArcs returns nil (not an error) when the arcs field is absent so that
// newEntry reports it as missing.
func cueArcs(v cue.Value) ([]int64, error) {
	arcsVal := v.LookupPath(cue.ParsePath("arcs"))
	if !arcsVal.Exists() {
		return nil, nil
	}
	list, err := arcsVal.List()
	if err != nil {
		return nil, fmt.Errorf("arcs must be a list of integers: %w", err)
	}
	values := []int64{}
	for i := 0; list.Next(); i++ {
		n, err := list.Value().Int64()
		if err != nil {
			return nil, fmt.Errorf("arc %d: %w", i, err)
		}
		values = append(values, n)
	}
	return values, nil
}

func positionOf(p token.Pos) Position {
	if !p.IsValid() {
		return Position{}
	}
	return Position{File: p.Filename(), Line: p.Line(), Column: p.Column()}
}

// cueLoadError keeps the position of the first CUE error, if any.
func cueLoadError(code, context string, err error) *LoadError {
	le := &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", context, err), Err: err}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
			le.Pos = positionOf(positions[0])
		}
	}
	return le
}
