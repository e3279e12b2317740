package resolve

import (
	"territory/board"
	"territory/order"
)

// Round applies the full per-round pipeline to a copy of before:
// debit sources, resolve combat, apply production. before is never
// mutated; the returned board is the new "boardBefore" for the next
// round (§2 data flow, §4.4–§4.6).
func Round(before *board.Board, ordersByPlayer [][]order.Order, cfg ProductionConfig) *board.Board {
	b := before.Clone()
	movements := BuildMovements(ordersByPlayer)
	DebitSources(b, movements)
	ResolveCombat(b, movements)
	ApplyProduction(b, cfg)
	return b
}
