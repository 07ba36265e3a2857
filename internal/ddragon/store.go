package ddragon

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store holds the in-memory reference data for one dataset version:
// champions, summoner spells, items and rune trees, plus the derived item
// pools. All state lives in an immutable snapshot that is swapped
// atomically on refresh, so readers never observe a half-rebuilt store.
type Store struct {
	client *Client
	logger *slog.Logger

	mu   sync.RWMutex
	snap *snapshot

	loads singleflight.Group
}

// snapshot is the loaded dataset for a single version. It is never mutated
// after construction; the pools cache hangs off it so that a version change
// discards every derived pool along with the data that produced it.
type snapshot struct {
	version string

	champions []Champion
	spells    []SummonerSpell
	items     []Item
	runeTrees []RuneTree

	championsByID map[string]Champion
	itemsByID     map[string]Item

	poolsMu sync.Mutex
	pools   map[int]*ItemPools
}

// NewStore creates a Store backed by the given client
func NewStore(client *Client, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, logger: logger}
}

// Loaded reports whether the store has a committed dataset
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// Version returns the dataset version of the current snapshot, or "" when
// nothing is loaded yet.
func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return ""
	}
	return s.snap.version
}

// EnsureLoaded loads the dataset on first use. It is idempotent and
// serialized: concurrent callers share a single in-flight load.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches the latest dataset version and rebuilds the whole store
// from it. On any fetch or parse failure nothing is committed and the
// previous snapshot, if any, stays in place. A successful refresh discards
// all previously derived item pools.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.loads.Do("refresh", func() (interface{}, error) {
		snap, err := s.load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.snap = snap
		s.mu.Unlock()

		s.logger.Info("reference data loaded",
			slog.String("version", snap.version),
			slog.Int("champions", len(snap.champions)),
			slog.Int("spells", len(snap.spells)),
			slog.Int("items", len(snap.items)),
			slog.Int("runeTrees", len(snap.runeTrees)))
		return nil, nil
	})
	return err
}

func (s *Store) load(ctx context.Context) (*snapshot, error) {
	version, err := s.client.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		version: version,
		pools:   make(map[int]*ItemPools),
	}

	if snap.champions, err = s.loadChampions(ctx, version); err != nil {
		return nil, err
	}
	if snap.spells, err = s.loadSummonerSpells(ctx, version); err != nil {
		return nil, err
	}
	if snap.items, err = s.loadItems(ctx, version); err != nil {
		return nil, err
	}
	if snap.runeTrees, err = s.loadRuneTrees(ctx, version); err != nil {
		return nil, err
	}

	snap.championsByID = make(map[string]Champion, len(snap.champions))
	for _, c := range snap.champions {
		snap.championsByID[c.ID] = c
	}
	snap.itemsByID = make(map[string]Item, len(snap.items))
	for _, it := range snap.items {
		snap.itemsByID[it.ID] = it
	}

	return snap, nil
}

func (s *Store) loadChampions(ctx context.Context, version string) ([]Champion, error) {
	raw, err := s.client.FetchJSON(ctx, "champion.json", version)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data map[string]Champion `json:"data"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DataLoadError{Resource: "champion.json", Err: err}
	}
	if len(doc.Data) == 0 {
		return nil, &DataLoadError{Resource: "champion.json", Err: fmt.Errorf("no champions in dataset")}
	}

	champions := make([]Champion, 0, len(doc.Data))
	for id, c := range doc.Data {
		if c.ID == "" {
			c.ID = id
		}
		if c.Name == "" {
			return nil, &DataLoadError{Resource: "champion.json", Err: fmt.Errorf("champion %q has no name", id)}
		}
		champions = append(champions, c)
	}
	sort.Slice(champions, func(i, j int) bool { return champions[i].ID < champions[j].ID })
	return champions, nil
}

func (s *Store) loadSummonerSpells(ctx context.Context, version string) ([]SummonerSpell, error) {
	raw, err := s.client.FetchJSON(ctx, "summoner.json", version)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data map[string]SummonerSpell `json:"data"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DataLoadError{Resource: "summoner.json", Err: err}
	}
	if len(doc.Data) == 0 {
		return nil, &DataLoadError{Resource: "summoner.json", Err: fmt.Errorf("no summoner spells in dataset")}
	}

	spells := make([]SummonerSpell, 0, len(doc.Data))
	for id, sp := range doc.Data {
		if sp.ID == "" {
			sp.ID = id
		}
		spells = append(spells, sp)
	}
	sort.Slice(spells, func(i, j int) bool { return spells[i].ID < spells[j].ID })
	return spells, nil
}

func (s *Store) loadItems(ctx context.Context, version string) ([]Item, error) {
	raw, err := s.client.FetchJSON(ctx, "item.json", version)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data map[string]Item `json:"data"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DataLoadError{Resource: "item.json", Err: err}
	}
	if len(doc.Data) == 0 {
		return nil, &DataLoadError{Resource: "item.json", Err: fmt.Errorf("no items in dataset")}
	}

	items := make([]Item, 0, len(doc.Data))
	for id, it := range doc.Data {
		it.ID = id
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) loadRuneTrees(ctx context.Context, version string) ([]RuneTree, error) {
	raw, err := s.client.FetchJSON(ctx, "runesReforged.json", version)
	if err != nil {
		return nil, err
	}

	var trees []RuneTree
	if err := json.Unmarshal(raw, &trees); err != nil {
		return nil, &DataLoadError{Resource: "runesReforged.json", Err: err}
	}
	if len(trees) == 0 {
		return nil, &DataLoadError{Resource: "runesReforged.json", Err: fmt.Errorf("no rune trees in dataset")}
	}
	for _, t := range trees {
		if len(t.Slots) < 4 {
			return nil, &DataLoadError{
				Resource: "runesReforged.json",
				Err:      fmt.Errorf("rune tree %s has %d slots, want 4", t.Key, len(t.Slots)),
			}
		}
		for i, slot := range t.Slots {
			if len(slot.Runes) == 0 {
				return nil, &DataLoadError{
					Resource: "runesReforged.json",
					Err:      fmt.Errorf("rune tree %s slot %d is empty", t.Key, i),
				}
			}
		}
	}
	return trees, nil
}

// current returns the committed snapshot or an error when nothing is loaded
func (s *Store) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, &DataLoadError{Resource: "store", Err: fmt.Errorf("reference data not loaded")}
	}
	return s.snap, nil
}

// Champions returns all loaded champions, sorted by ID
func (s *Store) Champions() []Champion {
	snap, err := s.current()
	if err != nil {
		return nil
	}
	return snap.champions
}

// SummonerSpells returns all loaded summoner spells, sorted by ID
func (s *Store) SummonerSpells() []SummonerSpell {
	snap, err := s.current()
	if err != nil {
		return nil
	}
	return snap.spells
}

// Items returns all loaded items, sorted by ID
func (s *Store) Items() []Item {
	snap, err := s.current()
	if err != nil {
		return nil
	}
	return snap.items
}

// RuneTrees returns all loaded rune trees
func (s *Store) RuneTrees() []RuneTree {
	snap, err := s.current()
	if err != nil {
		return nil
	}
	return snap.runeTrees
}

// Champion looks up a champion by its stable string ID
func (s *Store) Champion(id string) (Champion, bool) {
	snap, err := s.current()
	if err != nil {
		return Champion{}, false
	}
	c, ok := snap.championsByID[id]
	return c, ok
}

// Item looks up an item by ID
func (s *Store) Item(id string) (Item, bool) {
	snap, err := s.current()
	if err != nil {
		return Item{}, false
	}
	it, ok := snap.itemsByID[id]
	return it, ok
}
