package generator

import (
	"math/rand/v2"

	"riftroulette/internal/ddragon"
)

// secondaryTreeAttempts bounds the retry loop for a distinct secondary
// tree. With two or more trees a duplicate after ten draws is vanishingly
// rare; if it happens anyway the duplicate is accepted rather than looping
// forever.
const secondaryTreeAttempts = 10

// AssembleRunePage rolls a rune page from the given trees: a primary tree,
// a distinct secondary tree, the keystone from the primary's slot 0, one
// minor per primary slot 1..3 in slot order, and two secondary minors drawn
// from two different rows. Trees must carry 4 non-empty slots each, as
// validated at load time.
func AssembleRunePage(rng *rand.Rand, trees []ddragon.RuneTree) (RunePage, error) {
	if len(trees) < 2 {
		return RunePage{}, &InsufficientRuneDataError{Have: len(trees)}
	}

	primary := trees[rng.IntN(len(trees))]

	secondary := trees[rng.IntN(len(trees))]
	for attempt := 0; secondary.ID == primary.ID && attempt < secondaryTreeAttempts; attempt++ {
		secondary = trees[rng.IntN(len(trees))]
	}

	keystone := pickRune(rng, primary.Slots[0])

	primaryMinors := make([]ddragon.Rune, 0, 3)
	for slot := 1; slot <= 3; slot++ {
		primaryMinors = append(primaryMinors, pickRune(rng, primary.Slots[slot]))
	}

	rows := []int{1, 2, 3}
	rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})

	secondaryMinors := []ddragon.Rune{
		pickRune(rng, secondary.Slots[rows[0]]),
		pickRune(rng, secondary.Slots[rows[1]]),
	}

	return RunePage{
		PrimaryTree:     primary,
		SecondaryTree:   secondary,
		Keystone:        keystone,
		PrimaryMinors:   primaryMinors,
		SecondaryMinors: secondaryMinors,
	}, nil
}

func pickRune(rng *rand.Rand, slot ddragon.RuneSlot) ddragon.Rune {
	return slot.Runes[rng.IntN(len(slot.Runes))]
}
