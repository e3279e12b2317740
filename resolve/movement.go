// Package resolve implements the movement model, combat resolver, and
// production step that together turn a validated order set into the
// next board: debit sources, resolve combat at every destination from
// a single forces snapshot, then apply production.
package resolve

import (
	"territory/apperr"
	"territory/board"
	"territory/order"
)

// Movement is a validated order decomposed into its mechanical effect.
type Movement struct {
	From  board.Coordinate
	To    board.Coordinate
	Owner board.PlayerID
	Units int
}

// BuildMovements translates each player's validated orders into
// Movement values. ordersByPlayer is a positional slice indexed by
// player ordinal, per the round driver's "dynamic order collections"
// design note: absence of orders for a player is simply a nil/empty
// slice at that index.
func BuildMovements(ordersByPlayer [][]order.Order) []Movement {
	var movements []Movement
	for playerIdx, orders := range ordersByPlayer {
		for _, o := range orders {
			movements = append(movements, Movement{
				From:  o.From,
				To:    board.Neighbor(o.From, o.Direction),
				Owner: board.PlayerID(playerIdx),
				Units: o.Units,
			})
		}
	}
	return movements
}

// DebitSources subtracts, for every source coordinate, the total
// units leaving it across all movements. This mutates b in place and
// must run before any destination arithmetic (§4.4, §5). A source
// that empties becomes Neutral. The validator's cumulative-
// availability check guarantees this subtraction never goes negative;
// if it ever would, that is an engine bug, not a recoverable error.
func DebitSources(b *board.Board, movements []Movement) {
	spent := make(map[board.Coordinate]int)
	for _, m := range movements {
		spent[m.From] += m.Units
	}
	for coord, total := range spent {
		sq := b.At(coord)
		if total > sq.Units {
			apperr.Bugf("source debit at (%d,%d) would go negative: have %d, spending %d",
				coord.X, coord.Y, sq.Units, total)
		}
		sq.Units -= total
		if sq.Units == 0 {
			sq.Owner = board.Neutral
		}
		b.Set(coord, sq)
	}
}
