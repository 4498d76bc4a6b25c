package registry

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// DomainRegistry is the domain prefix for registry digests.
// The version suffix allows the canonical form to change later.
const DomainRegistry = "oidkit/registry/v1"

// MarshalCanonical produces the canonical JSON form of the registry:
//
//	{"oids":[{"arcs":[1,2,840],"description":"...","name":"...","oid":"1.2.840"}]}
//
// Entries are sorted by name, object keys are sorted, strings are NFC
// normalized and HTML characters are not escaped. Source positions are not
// included.
func (r *Registry) MarshalCanonical() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"oids":[`)
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"arcs":[`)
		for j, arc := range e.OID.Nodes() {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatUint(uint64(arc), 10))
		}
		buf.WriteString(`],"description":`)
		if err := writeCanonicalString(&buf, e.Description); err != nil {
			return nil, fmt.Errorf("entry %q: description: %w", e.Name, err)
		}
		buf.WriteString(`,"name":`)
		if err := writeCanonicalString(&buf, e.Name); err != nil {
			return nil, fmt.Errorf("entry %q: name: %w", e.Name, err)
		}
		buf.WriteString(`,"oid":"`)
		buf.WriteString(e.OID.String())
		buf.WriteString(`"}`)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// Digest returns the hex SHA-256 of the canonical form with domain
// separation: SHA256(DomainRegistry + 0x00 + canonical).
func (r *Registry) Digest() (string, error) {
	canonical, err := r.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("registry digest: %w", err)
	}
	return hashWithDomain(DomainRegistry, canonical), nil
}

// hashWithDomain computes SHA-256 with a null byte between domain and data.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// writeCanonicalString writes s as a JSON string after NFC normalization.
// <, > and & are written literally; U+2028 and U+2029 are not escaped.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	out := bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'})
	buf.Write(unescapeLineSeparators(out))
	return nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes added by
// encoding/json back into literal characters. An escape preceded by an odd
// number of backslashes is literal text and is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) && data[i+1] == 'u' &&
			data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			backslashes := 0
			for j := len(out) - 1; j >= 0 && out[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				if data[i+5] == '8' {
					out = append(out, "\u2028"...)
				} else {
					out = append(out, "\u2029"...)
				}
				i += 5
				continue
			}
		}
		out = append(out, data[i])
	}
	return out
}
