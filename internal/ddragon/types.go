package ddragon

import (
	"fmt"
	"strings"
)

// Image holds Data Dragon sprite-sheet coordinates for an asset.
type Image struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	Group  string `json:"group"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
}

// Champion holds champion reference data
type Champion struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Image Image  `json:"image"`
}

// IconURL returns the square icon URL for the champion at the given dataset version
func (c Champion) IconURL(baseURL, version string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", baseURL, version, c.ID)
}

// SplashURL returns the loading-splash URL for the champion. Splashes are
// not versioned on the CDN.
func (c Champion) SplashURL(baseURL string) string {
	return fmt.Sprintf("%s/cdn/img/champion/splash/%s_0.jpg", baseURL, c.ID)
}

// SummonerSpell holds summoner spell reference data. An empty Modes list
// means the spell is allowed in every game mode.
type SummonerSpell struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Modes []string `json:"modes"`
	Image Image    `json:"image"`
}

// IconURL returns the spell icon URL at the given dataset version
func (s SummonerSpell) IconURL(baseURL, version string) string {
	return fmt.Sprintf("%s/cdn/%s/img/spell/%s", baseURL, version, s.Image.Full)
}

// AllowedInMode reports whether the spell may be picked in the given mode tag
func (s SummonerSpell) AllowedInMode(mode string) bool {
	if len(s.Modes) == 0 {
		return true
	}
	for _, m := range s.Modes {
		if strings.EqualFold(strings.TrimSpace(m), mode) {
			return true
		}
	}
	return false
}

// Gold holds an item's shop pricing
type Gold struct {
	Base        int  `json:"base"`
	Total       int  `json:"total"`
	Sell        int  `json:"sell"`
	Purchasable bool `json:"purchasable"`
}

// Item holds item reference data. item.json entries carry no id field of
// their own; ID is filled in from the map key during parsing.
type Item struct {
	ID string `json:"id"`

	Name      string `json:"name"`
	Plaintext string `json:"plaintext"`
	Image     Image  `json:"image"`

	Gold Gold `json:"gold"`

	Tags []string        `json:"tags"`
	Maps map[string]bool `json:"maps"`

	Into []string `json:"into"`
	From []string `json:"from"`

	Depth int `json:"depth"`

	Consumed    bool  `json:"consumed"`
	InStore     *bool `json:"inStore"`
	HideFromAll bool  `json:"hideFromAll"`

	RequiredChampion string `json:"requiredChampion"`
	RequiredAlly     string `json:"requiredAlly"`
}

// IconURL returns the item icon URL at the given dataset version
func (i Item) IconURL(baseURL, version string) string {
	return fmt.Sprintf("%s/cdn/%s/img/item/%s.png", baseURL, version, i.ID)
}

// Finished reports whether the item has no further upgrade path
func (i Item) Finished() bool {
	return len(i.Into) == 0
}

// HasTag reports whether the item carries the given tag, case-insensitively
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// RuneTree is one of the rune categories. Slots[0] is the keystone row,
// Slots[1..3] are the minor rows.
type RuneTree struct {
	ID    int        `json:"id"`
	Key   string     `json:"key"`
	Name  string     `json:"name"`
	Icon  string     `json:"icon"`
	Slots []RuneSlot `json:"slots"`
}

// IconURL returns the tree icon URL. Rune art is not versioned on the CDN.
func (t RuneTree) IconURL(baseURL string) string {
	return fmt.Sprintf("%s/cdn/img/%s", baseURL, t.Icon)
}

// RuneSlot is a single row of runes within a tree
type RuneSlot struct {
	Runes []Rune `json:"runes"`
}

// Rune is a single pickable rune
type Rune struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// IconURL returns the rune icon URL
func (r Rune) IconURL(baseURL string) string {
	return fmt.Sprintf("%s/cdn/img/%s", baseURL, r.Icon)
}
