package resolve

import (
	"sort"

	"territory/board"
)

// force is one contender's strength at a destination square during
// combat resolution.
type force struct {
	owner board.PlayerID
	units int
}

// ResolveCombat applies §4.5 to every square of b, seeding each
// destination's forces with the post-debit incumbent (if any) plus
// every incoming movement, then awarding the square. b must already
// have had DebitSources applied. Each square is resolved independently
// from the same post-debit snapshot, so movement order and square
// iteration order never affect the result (§4.5, §8 property 5).
func ResolveCombat(b *board.Board, movements []Movement) {
	forcesByDest := make(map[board.Coordinate]map[board.PlayerID]int)

	// Seed with incumbents.
	for _, c := range b.Coordinates() {
		sq := b.At(c)
		if sq.Owner != board.Neutral {
			forcesByDest[c] = map[board.PlayerID]int{sq.Owner: sq.Units}
		}
	}

	// Add incoming movements.
	for _, m := range movements {
		if forcesByDest[m.To] == nil {
			forcesByDest[m.To] = make(map[board.PlayerID]int)
		}
		forcesByDest[m.To][m.Owner] += m.Units
	}

	for _, c := range b.Coordinates() {
		sq := b.At(c)
		resolved := resolveSquare(forcesByDest[c])
		resolved.IsResource = sq.IsResource
		b.Set(c, resolved)
	}
}

func resolveSquare(forces map[board.PlayerID]int) board.Square {
	if len(forces) == 0 {
		return board.Square{Owner: board.Neutral, Units: 0}
	}
	if len(forces) == 1 {
		for owner, units := range forces {
			return board.Square{Owner: owner, Units: units}
		}
	}

	sorted := make([]force, 0, len(forces))
	for owner, units := range forces {
		sorted = append(sorted, force{owner: owner, units: units})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].units != sorted[j].units {
			return sorted[i].units > sorted[j].units
		}
		return sorted[i].owner < sorted[j].owner
	})

	u1, u2 := sorted[0].units, sorted[1].units
	if u1 == u2 {
		// Tie for first: everyone at this square is annihilated,
		// including any runner-up with strictly fewer units.
		return board.Square{Owner: board.Neutral, Units: 0}
	}
	return board.Square{Owner: sorted[0].owner, Units: u1 - u2}
}
