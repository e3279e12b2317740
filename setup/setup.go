// Package setup implements the one randomized step in the engine
// (§4.9): edge placement of starting squares and resource marking.
// Once a game begins, nothing else in the engine touches an RNG
// (§3.3 invariant 6, §9 "isolate the RNG to initial setup").
package setup

import (
	"math"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"territory/apperr"
	"territory/board"
	"territory/config"
)

// NewGameID generates a fresh game identifier. Grounded on the
// corpus's own uuid.NewString() convention for entity IDs.
func NewGameID() string {
	return uuid.NewString()
}

// NewSeededRand returns a seedable RNG, isolated to this package, so a
// caller can reproduce a game's initial setup given (config, seed).
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// InitialSetup builds the round-1 board: shuffles the outer edge,
// assigns the first numPlayers coordinates as starting squares with
// cfg.StartingUnits, then marks a shuffled subset of the remaining
// squares as resource squares (§4.9 steps 1–5).
func InitialSetup(cfg config.Config, numPlayers int, rng *rand.Rand) (*board.Board, error) {
	if err := cfg.ValidateNumPlayers(numPlayers); err != nil {
		return nil, err
	}

	b := board.NewBoard(cfg.MapSize)
	edges := b.EdgeCoordinates()
	if len(edges) < numPlayers {
		return nil, apperr.Newf(apperr.InvalidConfig,
			"mapSize %d has only %d edge squares, cannot seat %d players",
			cfg.MapSize, len(edges), numPlayers).
			WithContext("mapSize", cfg.MapSize, "edges", len(edges), "numPlayers", numPlayers)
	}

	rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
	starts := edges[:numPlayers]

	startSet := make(map[board.Coordinate]bool, numPlayers)
	for i, c := range starts {
		b.Set(c, board.Square{Units: cfg.StartingUnits, Owner: board.PlayerID(i)})
		startSet[c] = true
	}

	var nonStart []board.Coordinate
	for _, c := range b.Coordinates() {
		if !startSet[c] {
			nonStart = append(nonStart, c)
		}
	}
	rng.Shuffle(len(nonStart), func(i, j int) { nonStart[i], nonStart[j] = nonStart[j], nonStart[i] })

	numResource := int(math.Ceil(float64(cfg.MapSize*cfg.MapSize) * float64(cfg.ResourceSquarePct) / 100.0))
	if numResource > len(nonStart) {
		// Can only happen at very high resourceSquarePct with few
		// starting squares excluded; clamp rather than mark a
		// starting square, since those are never resources (§4.9).
		numResource = len(nonStart)
	}
	for _, c := range nonStart[:numResource] {
		sq := b.At(c)
		sq.IsResource = true
		b.Set(c, sq)
	}

	return b, nil
}
