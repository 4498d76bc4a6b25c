// Package registry loads named object identifiers from data files.
//
// Three file formats are accepted, chosen by extension:
//
//	*.yaml, *.yml   oids: [{name: p256, arcs: [1, 2, 840, 10045, 3, 1, 7]}]
//	*.cue           oid: p256: {arcs: [1, 2, 840, 10045, 3, 1, 7]}
//	*.hcl           oid "p256" { arcs = [1, 2, 840, 10045, 3, 1, 7] }
//
// Arcs are always integer lists; dotted-decimal strings are rejected.
// Every entry is validated with oid.New, so a loaded Registry only holds
// valid identifiers.
//
// A Registry has a canonical JSON form (sorted entries, no HTML escaping,
// NFC-normalized strings) and a SHA-256 digest over it. The same entries
// produce the same digest whichever file format they came from. The CBOR
// codec uses Core Deterministic Encoding (RFC 8949 4.2) for the same reason.
package registry
