package ddragon

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ItemPools holds the precomputed eligibility pools for one map. The three
// slices are immutable once built; FinishedJungle and FinishedNonJungle
// partition FinishedAll by the Jungle tag.
type ItemPools struct {
	FinishedAll       []Item
	FinishedNonJungle []Item
	FinishedJungle    []Item
}

// ItemPools returns the finished-item pools for a map, building them on
// first request and memoizing per (dataset version, map ID). Concurrent
// callers for the same key share a single build. The cache hangs off the
// current snapshot, so a refresh to a new dataset version discards it.
func (s *Store) ItemPools(ctx context.Context, mapID int) (*ItemPools, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	snap.poolsMu.Lock()
	if pools, ok := snap.pools[mapID]; ok {
		snap.poolsMu.Unlock()
		return pools, nil
	}
	snap.poolsMu.Unlock()

	key := fmt.Sprintf("pools:%s:%d", snap.version, mapID)
	v, err, _ := s.loads.Do(key, func() (interface{}, error) {
		snap.poolsMu.Lock()
		defer snap.poolsMu.Unlock()
		if pools, ok := snap.pools[mapID]; ok {
			return pools, nil
		}
		pools := buildItemPools(snap.items, mapID)
		snap.pools[mapID] = pools
		return pools, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ItemPools), nil
}

// buildItemPools applies the eligibility filter pipeline to every item.
// It is a pure function of the item list and map ID.
func buildItemPools(items []Item, mapID int) *ItemPools {
	mapKey := strconv.Itoa(mapID)

	pools := &ItemPools{}
	for _, it := range items {
		if !allowedOnMap(it, mapKey) {
			continue
		}
		if !purchasableInStore(it) {
			continue
		}
		if !it.Finished() {
			continue
		}
		if excludedCategory(it) {
			continue
		}
		if championLocked(it) {
			continue
		}

		pools.FinishedAll = append(pools.FinishedAll, it)
		if it.HasTag("Jungle") {
			pools.FinishedJungle = append(pools.FinishedJungle, it)
		} else {
			pools.FinishedNonJungle = append(pools.FinishedNonJungle, it)
		}
	}
	return pools
}

func allowedOnMap(it Item, mapKey string) bool {
	return it.Maps[mapKey]
}

func purchasableInStore(it Item) bool {
	if !it.Gold.Purchasable {
		return false
	}
	if it.InStore != nil && !*it.InStore {
		return false
	}
	return it.Gold.Total > 0
}

func excludedCategory(it Item) bool {
	if it.Consumed || it.HideFromAll {
		return true
	}
	return it.HasTag("Consumable") || it.HasTag("Trinket")
}

func championLocked(it Item) bool {
	return strings.TrimSpace(it.RequiredChampion) != "" || strings.TrimSpace(it.RequiredAlly) != ""
}
