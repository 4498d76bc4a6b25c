package oid

import (
	"io"
	"strconv"
)

// String returns the dotted-decimal form, e.g. "1.2.840.10045.3.1.7".
// Panics if the identifier is not valid.
func (o ObjectIdentifier) String() string {
	b, _ := o.AppendText(make([]byte, 0, 4*len(o.nodes)))
	return string(b)
}

// AppendText implements encoding.TextAppender.
func (o ObjectIdentifier) AppendText(b []byte) ([]byte, error) {
	for i, n := range o.Nodes() {
		if i > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendUint(b, uint64(n), 10)
	}
	return b, nil
}

// MarshalText implements encoding.TextMarshaler.
// JSON encodes identifiers as dotted-decimal strings through this method.
func (o ObjectIdentifier) MarshalText() ([]byte, error) {
	return o.AppendText(nil)
}

// WriteTo implements io.WriterTo. Each arc and separator is written in
// order; the first error from w is returned unchanged.
func (o ObjectIdentifier) WriteTo(w io.Writer) (int64, error) {
	var (
		total int64
		buf   [10]byte
	)
	for i, n := range o.Nodes() {
		if i > 0 {
			written, err := w.Write([]byte{'.'})
			total += int64(written)
			if err != nil {
				return total, err
			}
		}
		written, err := w.Write(strconv.AppendUint(buf[:0], uint64(n), 10))
		total += int64(written)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
