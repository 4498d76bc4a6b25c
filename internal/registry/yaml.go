package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile is the document shape of a YAML registry file.
type yamlFile struct {
	OIDs []yamlEntry `yaml:"oids"`
}

// yamlEntry is one item of the oids list.
type yamlEntry struct {
	Name        string    `yaml:"name"`
	Arcs        yaml.Node `yaml:"arcs"`
	Description string    `yaml:"description"`

	line   int
	column int
}

var yamlEntryFields = map[string]bool{"name": true, "arcs": true, "description": true}

// UnmarshalYAML records the entry position. Node.Decode does not inherit
// the decoder's KnownFields setting, so unknown keys are rejected here.
func (e *yamlEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: oid entry must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !yamlEntryFields[key.Value] {
			return fmt.Errorf("line %d: field %s not found in oid entry", key.Line, key.Value)
		}
	}

	type plain yamlEntry
	if err := value.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line, e.column = value.Line, value.Column
	return nil
}

// loadYAMLFile reads one YAML registry file.
func loadYAMLFile(path string) ([]Entry, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("failed to read registry file: %v", err), Pos: Position{File: path}, Err: err}}
	}
	return decodeYAML(path, data)
}

// decodeYAML parses YAML registry data with strict field validation.
func decodeYAML(path string, data []byte) ([]Entry, []error) {
	var doc yamlFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown top-level fields
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("failed to parse YAML: %v", err), Pos: Position{File: path}, Err: err}}
	}

	var (
		entries []Entry
		errs    []error
	)
	for _, raw := range doc.OIDs {
		pos := Position{File: path, Line: raw.line, Column: raw.column}
		values, err := yamlArcs(&raw.Arcs)
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

// yamlArcs decodes the arcs sequence one element at a time, so a bad arc
// rejects only its own entry. An absent or null arcs field returns nil.
func yamlArcs(node *yaml.Node) ([]int64, error) {
	if node.Kind == 0 || node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("arcs must be a list of integers")
	}

	values := []int64{}
	for i, elem := range node.Content {
		if elem.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("arc %d: must be a number", i)
		}
		switch elem.ShortTag() {
		case "!!int":
			var n int64
			if err := elem.Decode(&n); err != nil {
				return nil, fmt.Errorf("arc %d: %s out of range", i, elem.Value)
			}
			values = append(values, n)
		case "!!float":
			return nil, fmt.Errorf("arc %d: %s is not a whole number", i, elem.Value)
		default:
			return nil, fmt.Errorf("arc %d: %q is not a number", i, elem.Value)
		}
	}
	return values, nil
}
