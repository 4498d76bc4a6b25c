package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/oidkit/internal/oid"
)

// Record is a catalog row for one named identifier.
type Record struct {
	Name        string               `json:"name"`
	OID         oid.ObjectIdentifier `json:"oid"`
	Description string               `json:"description,omitempty"`
	ImportID    string               `json:"import_id"`
	Seq         int64                `json:"seq"`
}

// ImportRecord describes one registry import.
type ImportRecord struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Digest     string `json:"digest"`
	EntryCount int    `json:"entry_count"`
	Seq        int64  `json:"seq"`
}

// Lookup returns the identifier stored under name.
// Returns an error wrapping ErrNotFound if there is none.
func (s *Store) Lookup(ctx context.Context, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, arcs, description, import_id, seq
		FROM oids
		WHERE name = ?
	`, name)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("lookup %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("lookup %q: %w", name, err)
	}
	return rec, nil
}

// List returns every identifier in the catalog ordered by arcs, ties broken
// by name.
//
// Returns an empty slice (not nil) if the catalog is empty.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, arcs, description, import_id, seq
		FROM oids
		ORDER BY sort_key ASC, name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query oids: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate oids: %w", err)
	}
	return records, nil
}

// Imports returns every import ordered by seq.
//
// Returns an empty slice (not nil) if nothing was imported.
func (s *Store) Imports(ctx context.Context) ([]ImportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, digest, entry_count, seq
		FROM imports
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	imports := []ImportRecord{}
	for rows.Next() {
		var rec ImportRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Digest, &rec.EntryCount, &rec.Seq); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imports = append(imports, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return imports, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec  Record
		arcs string
	)
	if err := row.Scan(&rec.Name, &arcs, &rec.Description, &rec.ImportID, &rec.Seq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan oid: %w", err)
	}
	id, err := unmarshalArcs(arcs)
	if err != nil {
		return Record{}, fmt.Errorf("oid %q: %w", rec.Name, err)
	}
	rec.OID = id
	return rec, nil
}
