package generator

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"riftroulette/internal/ddragon"
)

// Map IDs used in item.json's "maps" field
const (
	MapSummonersRift = 11
	MapHowlingAbyss  = 12
	MapNexusBlitz    = 21
)

// mapIDByMode resolves a game mode tag to its map. Several Summoner's Rift
// modes share map 11.
var mapIDByMode = map[string]int{
	"CLASSIC":    MapSummonersRift,
	"URF":        MapSummonersRift,
	"ONEFORALL":  MapSummonersRift,
	"ULTBOOK":    MapSummonersRift,
	"ARAM":       MapHowlingAbyss,
	"NEXUSBLITZ": MapNexusBlitz,
}

// supportItemNameKeys are support items that carry no identifying tag in
// some dataset versions, matched by normalized name.
var supportItemNameKeys = map[string]struct{}{
	"bloodsong":           {},
	"celestialopposition": {},
	"dreammaker":          {},
	"solsticesleigh":      {},
	"zazzaksrealmspike":   {},
	"worldatlas":          {},
	"runiccompass":        {},
	"bountyofworlds":      {},
	"watchfulwardstone":   {},
	"vigilantwardstone":   {},
}

// DataSource is the reference data the generator draws from. Implemented
// by *ddragon.Store.
type DataSource interface {
	EnsureLoaded(ctx context.Context) error
	Version() string
	Champions() []ddragon.Champion
	SummonerSpells() []ddragon.SummonerSpell
	RuneTrees() []ddragon.RuneTree
	ItemPools(ctx context.Context, mapID int) (*ddragon.ItemPools, error)
}

// PlayerSource provides the ordered list of player names to generate for
type PlayerSource interface {
	Players() []string
}

// StaticPlayers is a fixed PlayerSource
type StaticPlayers []string

// Players returns the fixed list
func (s StaticPlayers) Players() []string { return s }

// Generator produces randomized loadouts from a DataSource. It holds no
// mutable state of its own beyond the injected RNG; every Generate call is
// independent and side-effect-free.
type Generator struct {
	source DataSource
	logger *slog.Logger
	rng    *rand.Rand
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithRand sets a fixed RNG, useful for deterministic tests
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator over the given data source
func New(source DataSource, opts ...GeneratorOption) *Generator {
	g := &Generator{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ResolveMapID returns the map a mode is played on
func ResolveMapID(mode string) (int, bool) {
	id, ok := mapIDByMode[strings.ToUpper(strings.TrimSpace(mode))]
	return id, ok
}

// Modes returns the supported mode tags
func Modes() []string {
	return []string{"CLASSIC", "ARAM", "URF", "ONEFORALL", "ULTBOOK", "NEXUSBLITZ"}
}

// Generate produces one loadout per player for the given mode. Players are
// trimmed and deduplicated preserving order. Any stage failure aborts the
// whole call; no partial result is ever returned.
func (g *Generator) Generate(ctx context.Context, players []string, mode string) (map[string]Loadout, error) {
	names := normalizePlayers(players)
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}

	mapID, ok := ResolveMapID(mode)
	if !ok {
		return nil, &UnsupportedModeError{Mode: mode}
	}
	mode = strings.ToUpper(strings.TrimSpace(mode))

	if err := g.source.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	version := g.source.Version()

	champions := g.source.Champions()
	if len(champions) == 0 {
		return nil, ErrNoChampions
	}

	spells := spellsForMode(g.source.SummonerSpells(), mode)
	if len(spells) < 2 {
		return nil, &InsufficientSpellPoolError{Mode: mode, Have: len(spells)}
	}

	pools, err := g.source.ItemPools(ctx, mapID)
	if err != nil {
		return nil, err
	}
	if len(pools.FinishedNonJungle) < 6 {
		return nil, &InsufficientItemPoolError{MapID: mapID, Need: 6, Got: len(pools.FinishedNonJungle)}
	}

	trees := g.source.RuneTrees()
	if len(trees) < 2 {
		return nil, &InsufficientRuneDataError{Have: len(trees)}
	}

	rng := g.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	out := make(map[string]Loadout, len(names))
	for _, player := range names {
		champ := champions[rng.IntN(len(champions))]
		picked := pickTwoDistinctSpells(rng, spells)
		items, err := g.rollItems(rng, pools, picked, mapID)
		if err != nil {
			return nil, err
		}
		runes, err := AssembleRunePage(rng, trees)
		if err != nil {
			return nil, err
		}

		out[player] = Loadout{
			Player:   player,
			Champion: champ,
			Spells:   picked,
			Items:    items,
			Runes:    runes,
			Version:  version,
		}
	}

	g.logger.Info("loadouts generated",
		slog.String("mode", mode),
		slog.Int("players", len(out)),
		slog.String("version", version))
	return out, nil
}

// rollItems draws six distinct items. With Smite rolled and a non-empty
// jungle pool, exactly one jungle item is included and the six are
// reshuffled so it is not always first. At most one support item is drawn
// in total, counting a support-tagged jungle item against the budget.
func (g *Generator) rollItems(rng *rand.Rand, pools *ddragon.ItemPools, spells []ddragon.SummonerSpell, mapID int) ([]ddragon.Item, error) {
	if !hasJungleEnabler(spells) || len(pools.FinishedJungle) == 0 {
		return pickDistinctWithSupportLimit(rng, pools.FinishedNonJungle, 6, 1, mapID)
	}

	jungle := pools.FinishedJungle[rng.IntN(len(pools.FinishedJungle))]

	supportBudget := 1
	if isSupportItem(jungle) {
		supportBudget = 0
	}

	rest, err := pickDistinctWithSupportLimit(rng, removeByID(pools.FinishedNonJungle, jungle.ID), 5, supportBudget, mapID)
	if err != nil {
		return nil, err
	}

	items := make([]ddragon.Item, 0, 6)
	items = append(items, jungle)
	items = append(items, rest...)
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items, nil
}

// hasJungleEnabler reports whether one of the spells is Smite, matched
// case-insensitively by ID or display name.
func hasJungleEnabler(spells []ddragon.SummonerSpell) bool {
	for _, sp := range spells {
		if strings.EqualFold(sp.ID, "SummonerSmite") || strings.EqualFold(sp.Name, "Smite") {
			return true
		}
	}
	return false
}

func spellsForMode(all []ddragon.SummonerSpell, mode string) []ddragon.SummonerSpell {
	out := make([]ddragon.SummonerSpell, 0, len(all))
	for _, sp := range all {
		if sp.AllowedInMode(mode) {
			out = append(out, sp)
		}
	}
	return out
}

func pickTwoDistinctSpells(rng *rand.Rand, pool []ddragon.SummonerSpell) []ddragon.SummonerSpell {
	a := rng.IntN(len(pool))
	b := rng.IntN(len(pool) - 1)
	if b >= a {
		b++
	}
	return []ddragon.SummonerSpell{pool[a], pool[b]}
}

// isSupportItem reports whether an item belongs to the gold-income/support
// category: a GoldPer or Support tag, a known support name key, or a
// wardstone upgrade.
func isSupportItem(it ddragon.Item) bool {
	if it.HasTag("GoldPer") || it.HasTag("Support") {
		return true
	}
	key := normalizeKey(it.Name)
	if _, ok := supportItemNameKeys[key]; ok {
		return true
	}
	return strings.Contains(key, "wardstone")
}

// normalizeKey lowercases a name and strips everything but letters and digits
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// pickDistinctWithSupportLimit draws count distinct items from a shuffled
// copy of the pool, admitting at most maxSupport support items.
func pickDistinctWithSupportLimit(rng *rand.Rand, pool []ddragon.Item, count, maxSupport, mapID int) ([]ddragon.Item, error) {
	shuffled := make([]ddragon.Item, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	seen := make(map[string]struct{}, count)
	out := make([]ddragon.Item, 0, count)
	supportCount := 0

	for _, it := range shuffled {
		if it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}

		support := isSupportItem(it)
		if support && supportCount >= maxSupport {
			continue
		}

		out = append(out, it)
		if support {
			supportCount++
		}
		if len(out) == count {
			return out, nil
		}
	}

	return nil, &InsufficientItemPoolError{MapID: mapID, Need: count, Got: len(out)}
}

func removeByID(pool []ddragon.Item, id string) []ddragon.Item {
	out := make([]ddragon.Item, 0, len(pool))
	for _, it := range pool {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func normalizePlayers(players []string) []string {
	seen := make(map[string]struct{}, len(players))
	out := make([]string, 0, len(players))
	for _, p := range players {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
