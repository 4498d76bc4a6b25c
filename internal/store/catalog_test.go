package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/oidkit/internal/oid"
	"github.com/roach88/oidkit/internal/testutil"
)

func TestImport_WritesRows(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	reg := createTestRegistry(t,
		entry(t, "p256", "NIST P-256", 1, 2, 840, 10045, 3, 1, 7),
		entry(t, "ed25519", "", 1, 3, 101, 112),
	)

	rec, err := s.Import(ctx, reg, "registry/")
	require.NoError(t, err)

	digest, err := reg.Digest()
	require.NoError(t, err)
	assert.Equal(t, ImportRecord{
		ID:         "00000000-0000-7000-8000-000000000001",
		Source:     "registry/",
		Digest:     digest,
		EntryCount: 2,
		Seq:        1,
	}, rec)

	got, err := s.Lookup(ctx, "p256")
	require.NoError(t, err)
	assert.Equal(t, "p256", got.Name)
	assert.Equal(t, "1.2.840.10045.3.1.7", got.OID.String())
	assert.Equal(t, "NIST P-256", got.Description)
	assert.Equal(t, rec.ID, got.ImportID)
	assert.Equal(t, int64(1), got.Seq)

	var dotted, arcs string
	require.NoError(t, s.db.QueryRow(`SELECT dotted, arcs FROM oids WHERE name = 'ed25519'`).Scan(&dotted, &arcs))
	assert.Equal(t, "1.3.101.112", dotted)
	assert.Equal(t, "[1,3,101,112]", arcs)
}

func TestImport_ReplacesByName(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	first, err := s.Import(ctx, createTestRegistry(t,
		entry(t, "curve", "old", 1, 3, 132, 0, 34),
		entry(t, "hash", "", 2, 16, 840, 1, 101, 3, 4, 2, 1),
	), "a")
	require.NoError(t, err)

	second, err := s.Import(ctx, createTestRegistry(t,
		entry(t, "curve", "new", 1, 2, 840, 10045, 3, 1, 7),
	), "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Seq)

	curve, err := s.Lookup(ctx, "curve")
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10045.3.1.7", curve.OID.String())
	assert.Equal(t, "new", curve.Description)
	assert.Equal(t, second.ID, curve.ImportID)

	hash, err := s.Lookup(ctx, "hash")
	require.NoError(t, err)
	assert.Equal(t, first.ID, hash.ImportID, "entries missing from a later import are kept")

	imports, err := s.Imports(ctx)
	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, []string{"a", "b"}, []string{imports[0].Source, imports[1].Source})
	assert.Equal(t, []int64{1, 2}, []int64{imports[0].Seq, imports[1].Seq})
}

func TestImport_SeqSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	reg := createTestRegistry(t, entry(t, "x25519", "", 1, 3, 101, 110))

	s1, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator("import-1")))
	require.NoError(t, err)
	_, err = s1.Import(ctx, reg, "a")
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator("import-2")))
	require.NoError(t, err)
	defer s2.Close()

	rec, err := s2.Import(ctx, reg, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Seq)
}

func TestImport_DuplicateIDRollsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator("same", "same")))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Import(ctx, createTestRegistry(t, entry(t, "a", "", 1, 2, 3)), "one")
	require.NoError(t, err)

	_, err = s.Import(ctx, createTestRegistry(t, entry(t, "b", "", 1, 2, 4)), "two")
	require.Error(t, err)

	_, err = s.Lookup(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound, "failed import must not leave rows behind")

	imports, err := s.Imports(ctx)
	require.NoError(t, err)
	assert.Len(t, imports, 1)
}

func TestImport_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Import(ctx, createTestRegistry(t, entry(t, "a", "", 1, 2, 3)), "dir")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestImport_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithLogger(logger),
		WithIDGenerator(testutil.NewFixedIDGenerator("import-1")),
	)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Import(context.Background(), createTestRegistry(t, entry(t, "a", "", 1, 2, 3)), "dir")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "catalog opened")
	assert.Contains(t, out, "registry imported")
	assert.Contains(t, out, "id=import-1")
	assert.Contains(t, out, "entries=1")
}

func TestImport_DefaultIDsAreUUIDv7(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	rec, err := s.Import(context.Background(), createTestRegistry(t, entry(t, "a", "", 1, 2, 3)), "dir")
	require.NoError(t, err)

	id, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestLookup_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Lookup(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestLookup_CorruptArcs(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`INSERT INTO imports (id, source, digest, entry_count, seq) VALUES ('i', 'dir', 'd', 1, 1)`)
	require.NoError(t, err)
	_, err = s.db.Exec(`
		INSERT INTO oids (name, dotted, arcs, sort_key, description, import_id, seq)
		VALUES ('bad', '3.0.1', '[3,0,1]', x'', '', 'i', 1)
	`)
	require.NoError(t, err)

	_, err = s.Lookup(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, oid.IsInvalid(err), "got %v", err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestList_OrderedByArcs(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.Import(ctx, createTestRegistry(t,
		entry(t, "d", "", 2, 5, 29, 15),
		entry(t, "c", "", 1, 2, 840, 10045),
		entry(t, "b", "", 1, 2, 840, 10045, 3, 1, 7),
		entry(t, "a", "", 1, 2, 840, 113549),
		entry(t, "e", "", 1, 2, 256),
		entry(t, "f", "", 1, 2, 840),
		entry(t, "g", "", 1, 2, 840), // same arcs, ordered by name
	), "dir")
	require.NoError(t, err)

	records, err := s.List(ctx)
	require.NoError(t, err)

	var names, dotted []string
	for _, r := range records {
		names = append(names, r.Name)
		dotted = append(dotted, r.OID.String())
	}
	assert.Equal(t, []string{"e", "f", "g", "c", "b", "a", "d"}, names)
	assert.Equal(t, "1.2.256 1.2.840 1.2.840 1.2.840.10045 1.2.840.10045.3.1.7 1.2.840.113549 2.5.29.15", strings.Join(dotted, " "))

	for i := 1; i < len(records); i++ {
		assert.LessOrEqual(t, records[i-1].OID.Compare(records[i].OID), 0)
	}
}

func TestList_Empty(t *testing.T) {
	s := createTestStore(t)

	records, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	imports, err := s.Imports(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, imports)
	assert.Empty(t, imports)
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0x03, 0x48}, sortKey([]uint32{1, 2, 840}))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, sortKey([]uint32{4294967295}))
	assert.Empty(t, sortKey(nil))

	// Byte order agrees with Compare, including prefixes.
	pairs := [][2][]uint32{
		{{1, 2, 3}, {1, 2, 3, 0}},
		{{1, 2, 255}, {1, 2, 256}},
		{{1, 39, 4294967295}, {2, 0, 0}},
	}
	for _, p := range pairs {
		assert.Equal(t, -1, bytes.Compare(sortKey(p[0]), sortKey(p[1])), "%v < %v", p[0], p[1])
	}
}

func TestMarshalArcs(t *testing.T) {
	data, err := marshalArcs([]uint32{1, 2, 840, 4294967295})
	require.NoError(t, err)
	assert.Equal(t, "[1,2,840,4294967295]", data)

	id, err := unmarshalArcs(data)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 840, 4294967295}, id.Nodes())

	_, err = unmarshalArcs("[1,2,-1]")
	assert.Error(t, err)
	_, err = unmarshalArcs("not json")
	assert.Error(t, err)
	_, err = unmarshalArcs("[1,40,1]")
	assert.True(t, oid.IsInvalid(err))
}
