package store

import (
	"context"
	"fmt"

	"github.com/roach88/oidkit/internal/registry"
)

// Import records reg in the catalog as a single transaction.
//
// A new imports row is written with an ID from the store's IDGenerator and
// the next logical seq. Every entry is upserted by name: an existing row
// with the same name is replaced and now points at this import.
func (s *Store) Import(ctx context.Context, reg *registry.Registry, source string) (ImportRecord, error) {
	digest, err := reg.Digest()
	if err != nil {
		return ImportRecord{}, fmt.Errorf("import: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportRecord{}, fmt.Errorf("import: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM imports`).Scan(&seq); err != nil {
		return ImportRecord{}, fmt.Errorf("import: next seq: %w", err)
	}

	rec := ImportRecord{
		ID:         s.ids.Generate(),
		Source:     source,
		Digest:     digest,
		EntryCount: reg.Len(),
		Seq:        seq,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO imports (id, source, digest, entry_count, seq)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.Source, rec.Digest, rec.EntryCount, rec.Seq)
	if err != nil {
		return ImportRecord{}, fmt.Errorf("import: write import %s: %w", rec.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO oids (name, dotted, arcs, sort_key, description, import_id, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			dotted = excluded.dotted,
			arcs = excluded.arcs,
			sort_key = excluded.sort_key,
			description = excluded.description,
			import_id = excluded.import_id,
			seq = excluded.seq
	`)
	if err != nil {
		return ImportRecord{}, fmt.Errorf("import: prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range reg.Entries() {
		arcs := e.OID.Nodes()
		arcsJSON, err := marshalArcs(arcs)
		if err != nil {
			return ImportRecord{}, fmt.Errorf("import %s: %w", e.Name, err)
		}
		if _, err := stmt.ExecContext(ctx,
			e.Name,
			e.OID.String(),
			arcsJSON,
			sortKey(arcs),
			e.Description,
			rec.ID,
			rec.Seq,
		); err != nil {
			return ImportRecord{}, fmt.Errorf("import %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportRecord{}, fmt.Errorf("import: commit: %w", err)
	}

	s.logger.Info("registry imported",
		"id", rec.ID,
		"source", rec.Source,
		"entries", rec.EntryCount,
		"seq", rec.Seq,
		"digest", rec.Digest,
	)
	return rec, nil
}
