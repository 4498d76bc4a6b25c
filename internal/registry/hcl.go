package registry

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the body schema of an HCL registry file:
//
//	oid "p256" {
//	  arcs        = [1, 2, 840, 10045, 3, 1, 7]
//	  description = "NIST P-256"
//	}
type hclFile struct {
	OIDs []hclEntry `hcl:"oid,block"`
}

type hclEntry struct {
	Name        string         `hcl:"name,label"`
	Arcs        hcl.Expression `hcl:"arcs,attr"`
	Description string         `hcl:"description,optional"`
}

// loadHCLFile reads one HCL registry file.
func loadHCLFile(path string) ([]Entry, []error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("failed to read registry file: %v", err), Pos: Position{File: path}, Err: err}}
	}
	return decodeHCL(path, src)
}

// decodeHCL parses HCL registry source. path must end in .hcl so that
// hclsimple selects native syntax.
func decodeHCL(path string, src []byte) ([]Entry, []error) {
	var doc hclFile
	if err := hclsimple.Decode(path, src, nil, &doc); err != nil {
		return nil, []error{hclLoadError(path, err)}
	}

	var (
		entries []Entry
		errs    []error
	)
	for _, raw := range doc.OIDs {
		rng := raw.Arcs.Range()
		pos := Position{File: path, Line: rng.Start.Line, Column: rng.Start.Column}

		values, err := hclArcs(raw.Arcs)
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeArcRange, Message: fmt.Sprintf("%s: %v", raw.Name, err), Pos: pos, Err: err})
			continue
		}
		e, err := newEntry(raw.Name, values, raw.Description, pos)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

// hclArcs evaluates a static list or tuple of whole numbers. An absent
// arcs attribute decodes to a null expression; that returns nil so
// newEntry reports it as missing.
func hclArcs(expr hcl.Expression) ([]int64, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("arcs must be a list of integers")
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("arcs must be a list of integers, got %s", ty.FriendlyName())
	}

	values := []int64{}
	for i, it := 0, val.ElementIterator(); it.Next(); i++ {
		_, elem := it.Element()
		if elem.IsNull() || !elem.Type().Equals(cty.Number) {
			return nil, fmt.Errorf("arc %d: must be a number, got %s", i, elem.Type().FriendlyName())
		}
		bf := elem.AsBigFloat()
		if !bf.IsInt() {
			return nil, fmt.Errorf("arc %d: %s is not a whole number", i, bf.Text('g', -1))
		}
		n, acc := bf.Int64()
		if acc != big.Exact {
			return nil, fmt.Errorf("arc %d: %s out of range", i, bf.Text('f', 0))
		}
		values = append(values, n)
	}
	return values, nil
}

// hclLoadError keeps the subject range of the first diagnostic, if any.
func hclLoadError(path string, err error) *LoadError {
	le := &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("failed to parse HCL: %v", err), Pos: Position{File: path}, Err: err}
	var diags hcl.Diagnostics
	if errors.As(err, &diags) {
		for _, d := range diags {
			if d.Subject != nil {
				le.Pos = Position{File: path, Line: d.Subject.Start.Line, Column: d.Subject.Start.Column}
				break
			}
		}
	}
	return le
}
