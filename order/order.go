// Package order implements the per-player order-line parser and
// validator described in the round resolver's order-validation
// pipeline: a pure function of (line, playerId, boardBefore, config)
// that turns free text into a validated list of Order values or a
// structured error.
package order

import (
	"strconv"
	"strings"

	"territory/apperr"
	"territory/board"
)

// Order is a single validated player intent.
type Order struct {
	From      board.Coordinate
	Direction board.Direction
	Units     int
}

// FailurePolicy controls how a round driver reacts to a line that
// fails validation — both are host policy, not a core default, per
// the order validator's design.
type FailurePolicy int

const (
	// RejectHard propagates the validation error to the caller.
	RejectHard FailurePolicy = iota
	// TreatAsEmpty silently treats the player as having submitted no
	// orders, swallowing the validation error.
	TreatAsEmpty
)

// ParseAndValidate parses line as playerID's orders against b,
// enforcing bounds, ownership, and the cumulative-availability
// invariant. An empty or whitespace-only line means "no orders."
func ParseAndValidate(line string, playerID board.PlayerID, b *board.Board, maxOrdersPerRound int) ([]Order, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	rawTokens := strings.Split(trimmed, "|")
	if len(rawTokens) > maxOrdersPerRound {
		return nil, apperr.Newf(apperr.ValidationError,
			"too many orders: %d submitted, max %d", len(rawTokens), maxOrdersPerRound).
			WithContext("kind", "too_many_orders", "count", len(rawTokens), "max", maxOrdersPerRound)
	}

	orders := make([]Order, 0, len(rawTokens))
	spent := make(map[board.Coordinate]int)

	for _, raw := range rawTokens {
		o, err := parseToken(raw)
		if err != nil {
			return nil, err
		}
		if err := validateOrder(o, playerID, b); err != nil {
			return nil, err
		}

		spent[o.From] += o.Units
		if spent[o.From] > b.At(o.From).Units {
			return nil, apperr.Newf(apperr.ValidationError,
				"insufficient units at (%d,%d): attempted total %d exceeds available %d",
				o.From.X, o.From.Y, spent[o.From], b.At(o.From).Units).
				WithContext("kind", "insufficient_units", "x", o.From.X, "y", o.From.Y,
					"attempted", spent[o.From], "available", b.At(o.From).Units)
		}

		orders = append(orders, o)
	}

	return orders, nil
}

func parseToken(raw string) (Order, error) {
	trimmed := strings.TrimSpace(raw)
	parts := strings.Split(trimmed, ",")
	if len(parts) != 4 {
		return Order{}, apperr.Newf(apperr.ParseError,
			"order token %q must have 4 fields x,y,d,u", trimmed).
			WithContext("token", trimmed)
	}

	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return Order{}, apperr.Newf(apperr.ParseError,
			"order token %q has non-integer coordinate", trimmed).
			WithContext("token", trimmed)
	}

	d, errD := board.ParseDirection(parts[2])
	if errD != nil {
		return Order{}, apperr.Newf(apperr.ParseError,
			"order token %q has invalid direction %q", trimmed, parts[2]).
			WithContext("token", trimmed)
	}

	u, errU := strconv.Atoi(strings.TrimSpace(parts[3]))
	if errU != nil || u <= 0 {
		return Order{}, apperr.Newf(apperr.ParseError,
			"order token %q has non-positive unit count", trimmed).
			WithContext("token", trimmed)
	}

	return Order{From: board.Coordinate{X: x, Y: y}, Direction: d, Units: u}, nil
}

func validateOrder(o Order, playerID board.PlayerID, b *board.Board) error {
	if !board.InBounds(o.From, b.Size) {
		return apperr.Newf(apperr.ValidationError, "source (%d,%d) is out of bounds", o.From.X, o.From.Y).
			WithContext("kind", "out_of_bounds_source", "x", o.From.X, "y", o.From.Y)
	}
	if b.At(o.From).Owner != playerID {
		return apperr.Newf(apperr.ValidationError, "(%d,%d) is not owned by the submitting player", o.From.X, o.From.Y).
			WithContext("kind", "not_your_square", "x", o.From.X, "y", o.From.Y)
	}
	to := board.Neighbor(o.From, o.Direction)
	if !board.InBounds(to, b.Size) {
		return apperr.Newf(apperr.ValidationError, "target (%d,%d) is out of bounds", to.X, to.Y).
			WithContext("kind", "out_of_bounds_target", "x", to.X, "y", to.Y)
	}
	return nil
}
