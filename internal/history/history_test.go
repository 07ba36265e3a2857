package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riftroulette/internal/ddragon"
	"riftroulette/internal/generator"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history", "loadouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLoadout(player, champion string) generator.Loadout {
	return generator.Loadout{
		Player:   player,
		Champion: ddragon.Champion{ID: champion, Name: champion},
		Spells: []ddragon.SummonerSpell{
			{ID: "SummonerFlash", Name: "Flash"},
			{ID: "SummonerDot", Name: "Ignite"},
		},
		Items: []ddragon.Item{
			{ID: "3200", Name: "Blade 0"},
			{ID: "3201", Name: "Blade 1"},
			{ID: "3202", Name: "Blade 2"},
			{ID: "3203", Name: "Blade 3"},
			{ID: "3204", Name: "Blade 4"},
			{ID: "3205", Name: "Blade 5"},
		},
		Runes: generator.RunePage{
			PrimaryTree:   ddragon.RuneTree{ID: 8000, Key: "Precision"},
			SecondaryTree: ddragon.RuneTree{ID: 8100, Key: "Domination"},
			Keystone:      ddragon.Rune{ID: 8005, Name: "Press the Attack"},
		},
		Version: "15.1.1",
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Record(ctx, "ARAM", map[string]generator.Loadout{
		"Alice": testLoadout("Alice", "Champ1"),
		"Bob":   testLoadout("Bob", "Champ2"),
	})
	require.NoError(t, err)

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byPlayer := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byPlayer[e.Player] = e
	}

	alice, ok := byPlayer["Alice"]
	require.True(t, ok)
	assert.Equal(t, "ARAM", alice.Mode)
	assert.Equal(t, "Champ1", alice.Champion)
	assert.Equal(t, "15.1.1", alice.Version)
	assert.False(t, alice.CreatedAt.IsZero())

	// The full loadout survives the payload round trip
	assert.Equal(t, testLoadout("Alice", "Champ1"), alice.Loadout)
}

func TestStore_RecentOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, champ := range []string{"Champ1", "Champ2", "Champ3"} {
		err := s.Record(ctx, "CLASSIC", map[string]generator.Loadout{
			"Alice": testLoadout("Alice", champ),
		})
		require.NoError(t, err, "record %d", i)
	}

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Champ3", entries[0].Champion, "newest entry first")
	assert.Equal(t, "Champ2", entries[1].Champion)
}

func TestStore_RecentEmpty(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.Recent(context.Background(), 20)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loadouts.db")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, "URF", map[string]generator.Loadout{
		"Alice": testLoadout("Alice", "Champ1"),
	}))
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "URF", entries[0].Mode)
}
