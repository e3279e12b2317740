package resolve

import "territory/board"

// ProductionConfig carries the three config knobs production needs,
// kept separate from the top-level config package so this package has
// no dependency on it (§4.6).
type ProductionConfig struct {
	BaseProduction     int
	ResourceProduction int
	ProductionCap      int
}

// ApplyProduction increments every non-Neutral square's unit count by
// the appropriate production value, gated on the pre-production count
// being strictly below the cap. The cap is a threshold, not a clamp:
// production may push a square's count past it (§4.6, §9 open
// question — the source's behavior is adopted as specified).
func ApplyProduction(b *board.Board, cfg ProductionConfig) {
	for _, c := range b.Coordinates() {
		sq := b.At(c)
		if sq.Owner == board.Neutral {
			continue
		}
		if sq.Units >= cfg.ProductionCap {
			continue
		}
		if sq.IsResource {
			sq.Units += cfg.ResourceProduction
		} else {
			sq.Units += cfg.BaseProduction
		}
		b.Set(c, sq)
	}
}
