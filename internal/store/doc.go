// Package store provides a SQLite-backed catalog of imported OID registries.
//
// The catalog holds two tables:
//   - imports: one row per registry import, with its canonical digest
//   - oids: the current definition of every named identifier
//
// Importing a registry replaces rows by name; the row records which import
// last defined it.
//
// # Ordering
//
//   - Imports are ordered by seq, a logical clock assigned inside the
//     import transaction, never by wall time.
//   - Identifiers are ordered by sort_key, the arcs encoded as big-endian
//     uint32 values. SQLite compares BLOBs with memcmp, which gives the same
//     order as oid.ObjectIdentifier.Compare.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
