// Package oid provides an immutable Object Identifier (OID) value type.
//
// An OID is a sequence of unsigned integer arcs such as 1.2.840.10045.3.1.7.
// Validity is decided once, when the value is constructed:
//   - at least three arcs
//   - root arc in 0..2
//   - first-level arc in 0..39
//
// New is the normal constructor and returns an *InvalidError for bad input.
// Static exists for package-level tables: it never fails, borrows the
// caller's slice, and defers the failure to the first read of an invalid
// value (Nodes, String, WriteTo and friends panic with the *InvalidError).
//
// This package does not parse dotted-decimal text and does not encode
// DER/BER. Arcs always come in as integers.
package oid
