package generator

import "riftroulette/internal/ddragon"

// Loadout is one player's generated result: a champion, two spells, six
// items and a rune page. It is created per generation call and never
// mutated; regenerating replaces it wholesale.
type Loadout struct {
	Player   string                  `json:"player"`
	Champion ddragon.Champion        `json:"champion"`
	Spells   []ddragon.SummonerSpell `json:"spells"`  // exactly 2, distinct
	Items    []ddragon.Item          `json:"items"`   // exactly 6, distinct, post-shuffle order
	Runes    RunePage                `json:"runes"`
	Version  string                  `json:"version"` // dataset version the loadout was drawn from
}

// RunePage is a generated rune page. The keystone comes from the primary
// tree's slot 0; primary minors are one pick per slot 1..3 in slot order;
// secondary minors are picks from two distinct slots among the secondary
// tree's slots 1..3.
type RunePage struct {
	PrimaryTree     ddragon.RuneTree `json:"primaryTree"`
	SecondaryTree   ddragon.RuneTree `json:"secondaryTree"`
	Keystone        ddragon.Rune     `json:"keystone"`
	PrimaryMinors   []ddragon.Rune   `json:"primaryMinors"`
	SecondaryMinors []ddragon.Rune   `json:"secondaryMinors"`
}
