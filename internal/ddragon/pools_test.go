package ddragon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildItemPools_FilterPipeline(t *testing.T) {
	items := []Item{
		finishedItem("1001", "Keeper", nil),
		finishedItem("1002", "Machete", []string{"Jungle"}),
		// excluded: wrong map
		{ID: "2001", Name: "Abyss Only", Gold: Gold{Total: 1000, Purchasable: true}, Maps: map[string]bool{"12": true}},
		// excluded: map explicitly false
		{ID: "2002", Name: "Banned Here", Gold: Gold{Total: 1000, Purchasable: true}, Maps: map[string]bool{"11": false}},
		// excluded: not purchasable
		{ID: "2003", Name: "Quest Reward", Gold: Gold{Total: 1000, Purchasable: false}, Maps: map[string]bool{"11": true}},
		// excluded: zero cost
		{ID: "2004", Name: "Freebie", Gold: Gold{Total: 0, Purchasable: true}, Maps: map[string]bool{"11": true}},
		// excluded: explicitly out of store
		{ID: "2005", Name: "Hidden Shop", Gold: Gold{Total: 1000, Purchasable: true}, InStore: boolPtr(false), Maps: map[string]bool{"11": true}},
		// excluded: has an upgrade path
		{ID: "2006", Name: "Component", Gold: Gold{Total: 1000, Purchasable: true}, Into: []string{"3001"}, Maps: map[string]bool{"11": true}},
		// excluded: consumable tag (case-insensitive)
		{ID: "2007", Name: "Potion", Gold: Gold{Total: 50, Purchasable: true}, Tags: []string{"consumable"}, Maps: map[string]bool{"11": true}},
		// excluded: trinket
		{ID: "2008", Name: "Totem", Gold: Gold{Total: 1, Purchasable: true}, Tags: []string{"Trinket"}, Maps: map[string]bool{"11": true}},
		// excluded: consumed on use
		{ID: "2009", Name: "Elixir", Gold: Gold{Total: 500, Purchasable: true}, Consumed: true, Maps: map[string]bool{"11": true}},
		// excluded: hidden from all
		{ID: "2010", Name: "Internal", Gold: Gold{Total: 500, Purchasable: true}, HideFromAll: true, Maps: map[string]bool{"11": true}},
		// excluded: champion-locked
		{ID: "2011", Name: "Hextech Gun", Gold: Gold{Total: 3000, Purchasable: true}, RequiredChampion: "Viktor", Maps: map[string]bool{"11": true}},
		// excluded: ally-locked
		{ID: "2012", Name: "Banner", Gold: Gold{Total: 3000, Purchasable: true}, RequiredAlly: "Ornn", Maps: map[string]bool{"11": true}},
	}

	pools := buildItemPools(items, 11)

	require.Len(t, pools.FinishedAll, 2)
	assert.Len(t, pools.FinishedNonJungle, 1)
	assert.Len(t, pools.FinishedJungle, 1)
	assert.Equal(t, "1001", pools.FinishedNonJungle[0].ID)
	assert.Equal(t, "1002", pools.FinishedJungle[0].ID)
}

func TestBuildItemPools_Partition(t *testing.T) {
	store, _ := newTestStore(t)

	pools, err := store.ItemPools(context.Background(), 11)
	require.NoError(t, err)

	// finishedAll = finishedJungle ∪ finishedNonJungle, with no overlap
	assert.Equal(t, len(pools.FinishedAll), len(pools.FinishedJungle)+len(pools.FinishedNonJungle))

	jungle := make(map[string]bool)
	for _, it := range pools.FinishedJungle {
		jungle[it.ID] = true
	}
	for _, it := range pools.FinishedNonJungle {
		assert.False(t, jungle[it.ID], "item %s in both partitions", it.ID)
	}

	for _, it := range pools.FinishedAll {
		assert.True(t, it.Finished(), "item %s is not finished", it.ID)
		assert.True(t, it.Gold.Purchasable, "item %s not purchasable", it.ID)
		assert.Greater(t, it.Gold.Total, 0, "item %s has zero cost", it.ID)
		assert.True(t, it.Maps["11"], "item %s not allowed on map 11", it.ID)
	}
}

func TestItemPools_Memoized(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.ItemPools(ctx, 11)
	require.NoError(t, err)
	second, err := store.ItemPools(ctx, 11)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated pool requests should reuse the build")
	assert.Equal(t, first.FinishedAll, second.FinishedAll)
}

func TestItemPools_PerMap(t *testing.T) {
	store, fx := newTestStore(t)
	ctx := context.Background()

	// One extra item only allowed on the Abyss
	fx.mu.Lock()
	fx.items["4500"] = Item{
		ID:   "4500",
		Name: "Abyss Relic",
		Gold: Gold{Total: 2000, Purchasable: true},
		Maps: map[string]bool{"12": true},
	}
	fx.mu.Unlock()

	require.NoError(t, store.EnsureLoaded(ctx))

	rift, err := store.ItemPools(ctx, 11)
	require.NoError(t, err)
	abyss, err := store.ItemPools(ctx, 12)
	require.NoError(t, err)

	assert.Len(t, abyss.FinishedAll, len(rift.FinishedAll)+1)
}

func TestItemPools_DeterministicRebuild(t *testing.T) {
	fx := newFixture()

	var snapItems []Item
	for id, it := range fx.items {
		it.ID = id
		snapItems = append(snapItems, it)
	}

	a := buildItemPools(snapItems, 11)
	b := buildItemPools(snapItems, 11)
	assert.Equal(t, a, b)
}
