package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `oids:
  - name: p256
    arcs: [1, 2, 840, 10045, 3, 1, 7]
    description: NIST P-256
  - name: ed25519
    arcs: [1, 3, 101, 112]
    description: "Ed25519 <sig> & key"
`

const sampleCUE = `package oids

oid: p256: {
	arcs:        [1, 2, 840, 10045, 3, 1, 7]
	description: "NIST P-256"
}

oid: ed25519: {
	arcs:        [1, 3, 101, 112]
	description: "Ed25519 <sig> & key"
}
`

const sampleHCL = `oid "p256" {
  arcs        = [1, 2, 840, 10045, 3, 1, 7]
  description = "NIST P-256"
}

oid "ed25519" {
  arcs        = [1, 3, 101, 112]
  description = "Ed25519 <sig> & key"
}
`

// writeDir creates a temp directory holding the given files.
func writeDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoadDir_SameDigestForEveryFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
	}{
		{"yaml", "oids.yaml", sampleYAML},
		{"yml", "oids.yml", sampleYAML},
		{"cue", "oids.cue", sampleCUE},
		{"hcl", "oids.hcl", sampleHCL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeDir(t, map[string]string{tt.file: tt.src})

			result, errs := LoadDir(dir, LoadModeCollectAll)
			require.Empty(t, errs)
			require.NotNil(t, result)
			require.NotNil(t, result.Registry)
			assert.Equal(t, 2, result.Registry.Len())
			assert.Len(t, result.Files, 1)

			digest, err := result.Registry.Digest()
			require.NoError(t, err)
			assert.Equal(t, sampleDigest, digest)
		})
	}
}

func TestLoadDir_RecordsSourcePositions(t *testing.T) {
	dir := writeDir(t, map[string]string{"oids.yaml": sampleYAML})

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.Empty(t, errs)

	e, ok := result.Registry.Lookup("ed25519")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "oids.yaml"), e.Source.File)
	assert.Equal(t, 5, e.Source.Line)
}

func TestLoadDir_MixedFormats(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"a.yaml":    "oids:\n  - name: sha256\n    arcs: [2, 16, 840, 1, 101, 3, 4, 2, 1]\n",
		"b.hcl":     "oid \"key-usage\" {\n  arcs = [2, 5, 29, 15]\n}\n",
		"c.cue":     "package oids\n\noid: x25519: arcs: [1, 3, 101, 110]\n",
		"notes.txt": "ignored",
	})

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.Empty(t, errs)
	assert.Len(t, result.Files, 3)

	for name, want := range map[string]string{
		"sha256":    "2.16.840.1.101.3.4.2.1",
		"key-usage": "2.5.29.15",
		"x25519":    "1.3.101.110",
	} {
		e, ok := result.Registry.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, want, e.OID.String())
	}
}

func TestLoadDir_DirectoryErrors(t *testing.T) {
	result, errs := LoadDir(filepath.Join(t.TempDir(), "missing"), LoadModeCollectAll)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeNotFound, Code(errs[0]))

	file := filepath.Join(t.TempDir(), "file.yaml")
	require.NoError(t, os.WriteFile(file, []byte("oids: []\n"), 0644))
	result, errs = LoadDir(file, LoadModeCollectAll)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeNotFound, Code(errs[0]))

	empty := writeDir(t, map[string]string{"readme.md": "# nothing"})
	result, errs = LoadDir(empty, LoadModeCollectAll)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeNoFiles, Code(errs[0]))
}

func TestLoadDir_NoEntries(t *testing.T) {
	dir := writeDir(t, map[string]string{"oids.yaml": "oids: []\n"})

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.NotNil(t, result)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeGeneric, Code(errs[0]))
}

func TestLoadDir_InvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
		code string
	}{
		{"yaml_root_arc", "a.yaml", "oids:\n  - name: bad\n    arcs: [3, 0, 1]\n", ErrCodeInvalidOID},
		{"yaml_first_level", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 40, 1]\n", ErrCodeInvalidOID},
		{"yaml_too_short", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 2]\n", ErrCodeInvalidOID},
		{"yaml_negative", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 2, -1]\n", ErrCodeArcRange},
		{"yaml_too_large", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 2, 4294967296]\n", ErrCodeArcRange},
		{"yaml_missing_arcs", "a.yaml", "oids:\n  - name: bad\n", ErrCodeMissingArcs},
		{"yaml_bad_name", "a.yaml", "oids:\n  - name: 9lives\n    arcs: [1, 2, 3]\n", ErrCodeInvalidName},
		{"yaml_dotted_string", "a.yaml", "oids:\n  - name: bad\n    arcs: \"1.2.3\"\n", ErrCodeArcRange},
		{"yaml_fraction", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 2, 3.5]\n", ErrCodeArcRange},
		{"yaml_beyond_int64", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 2, 99999999999999999999]\n", ErrCodeArcRange},
		{"yaml_string_arc", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 2, x]\n", ErrCodeArcRange},
		{"yaml_null_arcs", "a.yaml", "oids:\n  - name: bad\n    arcs:\n", ErrCodeMissingArcs},
		{"yaml_unknown_field", "a.yaml", "oids:\n  - name: bad\n    arcs: [1, 2, 3]\n    color: red\n", ErrCodeLoadFailed},
		{"yaml_unknown_top_level", "a.yaml", "oid:\n  - name: bad\n", ErrCodeLoadFailed},
		{"cue_root_arc", "a.cue", "package oids\n\noid: bad: arcs: [3, 0, 1]\n", ErrCodeInvalidOID},
		{"cue_negative", "a.cue", "package oids\n\noid: bad: arcs: [1, 2, -5]\n", ErrCodeArcRange},
		{"cue_not_a_list", "a.cue", "package oids\n\noid: bad: arcs: \"1.2.3\"\n", ErrCodeArcRange},
		{"cue_syntax", "a.cue", "package oids\n\noid: bad: arcs: [1, 2,\n", ErrCodeLoadFailed},
		{"hcl_first_level", "a.hcl", "oid \"bad\" {\n  arcs = [1, 40, 1]\n}\n", ErrCodeInvalidOID},
		{"hcl_fraction", "a.hcl", "oid \"bad\" {\n  arcs = [1, 2, 3.5]\n}\n", ErrCodeArcRange},
		{"hcl_string_arc", "a.hcl", "oid \"bad\" {\n  arcs = [1, 2, \"x\"]\n}\n", ErrCodeArcRange},
		{"hcl_missing_arcs", "a.hcl", "oid \"bad\" {\n}\n", ErrCodeMissingArcs},
		{"hcl_missing_arcs_with_description", "a.hcl", "oid \"bad\" {\n  description = \"x\"\n}\n", ErrCodeMissingArcs},
		{"hcl_syntax", "a.hcl", "oid \"bad\" {\n  arcs = [1, 2\n", ErrCodeLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeDir(t, map[string]string{tt.file: tt.src})

			result, errs := LoadDir(dir, LoadModeCollectAll)
			require.NotNil(t, result)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.code, Code(errs[0]), "%v", errs[0])
		})
	}
}

func TestLoadDir_ErrorPositions(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"a.hcl": "oid \"ok\" {\n  arcs = [1, 2, 3]\n}\n\noid \"bad\" {\n  arcs = [1, 40, 1]\n}\n",
	})

	_, errs := LoadDir(dir, LoadModeCollectAll)
	require.Len(t, errs, 1)

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, filepath.Join(dir, "a.hcl"), le.Pos.File)
	assert.Equal(t, 6, le.Pos.Line)
}

func TestLoadDir_DuplicatesAcrossFiles(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"a.yaml": "oids:\n  - name: p256\n    arcs: [1, 2, 840, 10045, 3, 1, 7]\n",
		"b.hcl":  "oid \"p256\" {\n  arcs = [1, 3, 132, 0, 34]\n}\n",
	})

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeDuplicateName, Code(errs[0]))
	assert.Contains(t, errs[0].Error(), "first defined at")

	// The first definition wins.
	e, ok := result.Registry.Lookup("p256")
	require.True(t, ok)
	assert.Equal(t, "1.2.840.10045.3.1.7", e.OID.String())
}

func TestLoadDir_Modes(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"a.yaml": "oids:\n  - name: one\n    arcs: [3, 0, 1]\n  - name: two\n    arcs: [1, 40, 1]\n  - name: good\n    arcs: [1, 2, 3]\n",
	})

	_, errs := LoadDir(dir, LoadModeFailFast)
	assert.Len(t, errs, 1)

	result, errs := LoadDir(dir, LoadModeCollectAll)
	assert.Len(t, errs, 2)
	require.NotNil(t, result.Registry)
	assert.Equal(t, 1, result.Registry.Len(), "valid entries still load in collect-all mode")
}

func TestLoadDir_YAMLBadArcKeepsOtherEntries(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"a.yaml": "oids:\n  - name: half\n    arcs: [1, 2, 3.5]\n  - name: good\n    arcs: [1, 2, 3]\n",
	})

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeArcRange, Code(errs[0]))
	assert.Contains(t, errs[0].Error(), "half: arc 2: 3.5 is not a whole number")

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, 2, le.Pos.Line)

	require.NotNil(t, result.Registry)
	_, ok := result.Registry.Lookup("good")
	assert.True(t, ok)
}

func TestFindFiles(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"b.hcl":  "",
		"a.yaml": "",
		"c.cue":  "",
		"d.json": "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	files, err := FindFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "c.cue"),
	}, files)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("x.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("x.yml"))
	assert.Equal(t, FormatCUE, FormatOf("x.cue"))
	assert.Equal(t, FormatHCL, FormatOf("x.hcl"))
	assert.Equal(t, Format(""), FormatOf("x.json"))
}
