package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/evcharge/core/metrics"
)

func sampleRecords() []Record {
	now := time.Unix(1700000000, 0).UTC()
	return []Record{
		{RunID: "r1", Kind: KindCharge, Turn: 1, Plate: "0CCC", Tier: "standard", StationID: "CC00", ChargerID: "CC00_004", KWh: 25, Cost: 20, Accepted: true, Timestamp: now},
		{RunID: "r1", Kind: KindCharge, Turn: 2, Plate: "1CCC", Tier: "vtc", StationID: "CC00", ChargerID: "CC00_004", KWh: 10, Cost: -1, Timestamp: now},
		{RunID: "r1", Kind: KindArrival, Turn: 6, Plate: "0CCC", Tier: "standard", Cost: 20, Accepted: true, Timestamp: now},
		{RunID: "r2", Kind: KindArrival, Turn: 3, Plate: "0CCC", Tier: "standard", Accepted: true, Timestamp: now},
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	for _, r := range sampleRecords() {
		require.NoError(t, store.Append(ctx, r))
	}

	all, err := store.Query(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), all)

	tests := []struct {
		name  string
		q     Query
		turns []int
	}{
		{"by run", Query{RunID: "r1"}, []int{1, 2, 6}},
		{"by plate", Query{RunID: "r1", Plate: "0CCC"}, []int{1, 6}},
		{"by kind", Query{Kind: KindArrival}, []int{6, 3}},
		{"no match", Query{RunID: "r3"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := store.Query(ctx, tt.q)
			require.NoError(t, err)
			var turns []int
			for _, r := range out {
				turns = append(turns, r.Turn)
			}
			assert.Equal(t, tt.turns, turns)
		})
	}
}

func TestJSONLStore(t *testing.T) {
	store, err := NewJSONLStore(filepath.Join(t.TempDir(), "journal.jsonl"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestJSONLStore_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0o644))
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), Record{RunID: "r1", Kind: KindCharge}))

	out, err := store.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestRotatingJSONLStore(t *testing.T) {
	store, err := NewRotatingJSONLStore(filepath.Join(t.TempDir(), "logs", "journal.jsonl"), 1, 2, 1)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(Config{})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = NewStore(Config{Backend: "JSONL", Path: filepath.Join(dir, "a.jsonl")})
	require.NoError(t, err)
	assert.IsType(t, &JSONLStore{}, store)

	store, err = NewStore(Config{Backend: "sqlite", Path: filepath.Join(dir, "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	_, err = NewStore(Config{Backend: "postgres"})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Backend: "rotating"}
	cfg.SetDefaults()
	assert.Equal(t, "evcharge.jsonl", cfg.Path)
	assert.Equal(t, 10, cfg.MaxSizeMB)
	require.NoError(t, cfg.Validate())
}

func TestSink(t *testing.T) {
	store, err := NewJSONLStore(filepath.Join(t.TempDir(), "journal.jsonl"))
	require.NoError(t, err)
	sink := NewSink(store)

	require.NoError(t, sink.RecordCharge(coremetrics.ChargeEvent{RunID: "r1", Turn: 4, Plate: "2CCC", Tier: "premium", ChargerKind: "ultrafast", KWh: 30, Cost: 19.8, Accepted: true}))
	require.NoError(t, sink.RecordArrival(coremetrics.ArrivalEvent{RunID: "r1", Turn: 8, Plate: "2CCC", Tier: "premium", Charges: 1, Cost: 19.8}))
	require.NoError(t, sink.Close())

	out, err := store.Query(context.Background(), Query{RunID: "r1", Plate: "2CCC"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, KindCharge, out[0].Kind)
	assert.Equal(t, 30, out[0].KWh)
	assert.Equal(t, KindArrival, out[1].Kind)
	assert.Equal(t, 8, out[1].Turn)
}
