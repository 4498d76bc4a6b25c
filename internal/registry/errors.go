package registry

import "fmt"

// Error codes shared with the CLI.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No registry files found
	ErrCodeLoadFailed  = "E004" // File read or syntax error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	ErrCodeInvalidOID    = "E201" // Arcs break the OID structural rules
	ErrCodeArcRange      = "E202" // Arc negative, fractional or above MaxUint32
	ErrCodeDuplicateName = "E203" // Same name defined twice
	ErrCodeInvalidName   = "E204" // Missing or malformed name
	ErrCodeMissingArcs   = "E205" // Entry has no arcs field
)

// Position locates an entry in a source file.
type Position struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// IsValid reports whether the position names a file.
func (p Position) IsValid() bool {
	return p.File != ""
}

func (p Position) String() string {
	switch {
	case p.File == "":
		return "-"
	case p.Line == 0:
		return p.File
	case p.Column == 0:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
}

// LoadError is a registry loading or validation error with source position.
type LoadError struct {
	Code    string
	Message string
	Pos     Position
	Err     error // underlying error (optional)
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
