package ddragon

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fixture is a fake Data Dragon CDN whose dataset can be swapped between
// requests to simulate an upstream version bump.
type fixture struct {
	mu sync.Mutex

	version   string
	champions map[string]Champion
	spells    map[string]SummonerSpell
	items     map[string]Item
	runeTrees []RuneTree

	hits map[string]int
}

func newFixture() *fixture {
	f := &fixture{
		version:   "15.1.1",
		champions: make(map[string]Champion),
		spells:    make(map[string]SummonerSpell),
		items:     make(map[string]Item),
		hits:      make(map[string]int),
	}

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("Champ%d", i)
		f.champions[id] = Champion{ID: id, Key: fmt.Sprintf("%d", 100+i), Name: id, Title: "the Test Subject"}
	}

	f.spells = map[string]SummonerSpell{
		"SummonerFlash":   {ID: "SummonerFlash", Name: "Flash"},
		"SummonerDot":     {ID: "SummonerDot", Name: "Ignite"},
		"SummonerSmite":   {ID: "SummonerSmite", Name: "Smite", Modes: []string{"CLASSIC", "ARAM"}},
		"SummonerHeal":    {ID: "SummonerHeal", Name: "Heal", Modes: []string{"CLASSIC", "ARAM", "URF"}},
		"SummonerClarity": {ID: "SummonerClarity", Name: "Clarity", Modes: []string{"ARAM"}},
	}

	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("32%02d", i)
		f.items[id] = finishedItem(id, fmt.Sprintf("Blade %d", i), nil)
	}
	f.items["3500"] = finishedItem("3500", "Stalker's Fang", []string{"Jungle"})
	f.items["3501"] = finishedItem("3501", "Ranger's Edge", []string{"Jungle"})

	f.runeTrees = []RuneTree{
		testTree(8000, "Precision"),
		testTree(8100, "Domination"),
	}

	return f
}

// finishedItem builds a purchasable finished item allowed on maps 11 and 12
func finishedItem(id, name string, tags []string) Item {
	return Item{
		ID:   id,
		Name: name,
		Gold: Gold{Base: 1000, Total: 3000, Sell: 2100, Purchasable: true},
		Tags: tags,
		Maps: map[string]bool{"11": true, "12": true},
	}
}

// testTree builds a 4-slot tree with 3 runes per slot
func testTree(id int, key string) RuneTree {
	tree := RuneTree{ID: id, Key: key, Name: key, Icon: fmt.Sprintf("perk-images/%s.png", key)}
	for slot := 0; slot < 4; slot++ {
		var runes []Rune
		for r := 0; r < 3; r++ {
			runeID := id + slot*10 + r
			runes = append(runes, Rune{ID: runeID, Key: fmt.Sprintf("%s_%d_%d", key, slot, r), Name: fmt.Sprintf("%s %d-%d", key, slot, r)})
		}
		tree.Slots = append(tree.Slots, RuneSlot{Runes: runes})
	}
	return tree
}

func (f *fixture) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits["versions.json"]++
		json.NewEncoder(w).Encode([]string{f.version})
	})

	mux.HandleFunc("/cdn/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		var payload interface{}
		switch {
		case strings.HasSuffix(r.URL.Path, "/champion.json"):
			f.hits["champion.json"]++
			payload = map[string]interface{}{"data": f.champions}
		case strings.HasSuffix(r.URL.Path, "/summoner.json"):
			f.hits["summoner.json"]++
			payload = map[string]interface{}{"data": f.spells}
		case strings.HasSuffix(r.URL.Path, "/item.json"):
			f.hits["item.json"]++
			payload = map[string]interface{}{"data": f.items}
		case strings.HasSuffix(r.URL.Path, "/runesReforged.json"):
			f.hits["runesReforged.json"]++
			payload = f.runeTrees
		default:
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(payload)
	})

	return mux
}

func (f *fixture) hitCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[name]
}

func (f *fixture) setVersion(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.version = v
}

func (f *fixture) removeItem(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
}

// newTestStore spins up a fixture CDN and a Store over it
func newTestStore(t *testing.T, opts ...Option) (*Store, *fixture) {
	t.Helper()

	fx := newFixture()
	server := httptest.NewServer(fx.handler())
	t.Cleanup(server.Close)

	clientOpts := append([]Option{WithBaseURL(server.URL)}, opts...)
	client := NewClient(clientOpts...)
	return NewStore(client, nil), fx
}
