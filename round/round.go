// Package round implements the round driver's state machine (§4.8):
// declarations → orders → resolve, producing an append-only history
// of RoundRecord values sufficient to replay or audit a match.
package round

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"territory/apperr"
	"territory/board"
	"territory/config"
	"territory/order"
	"territory/setup"
	"territory/verdict"
)

// RoundRecord is the board at the start of a round, plus whatever
// declarations and orders have been recorded against it so far. The
// stored board is always the pre-resolution snapshot (§3.1).
type RoundRecord struct {
	RoundNumber     int
	Declarations    []string
	DeclPhasesDone  int
	OrdersByPlayer  [][]order.Order
	OrdersSubmitted bool
	BoardBefore     *board.Board
}

// GameState is the full persistable state of one match (§3.1).
type GameState struct {
	GameID       string
	Config       config.Config
	NumPlayers   int
	CurrentRound int
	Rounds       []*RoundRecord
	Verdict      verdict.Verdict
}

// New runs initial setup (§4.9) and returns a fresh GameState whose
// first round is ready to accept declarations.
func New(gameID string, cfg config.Config, numPlayers int, rng *rand.Rand) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateNumPlayers(numPlayers); err != nil {
		return nil, err
	}

	b, err := setup.InitialSetup(cfg, numPlayers, rng)
	if err != nil {
		return nil, err
	}

	gs := &GameState{
		GameID:       gameID,
		Config:       cfg,
		NumPlayers:   numPlayers,
		CurrentRound: 1,
		Rounds: []*RoundRecord{
			{RoundNumber: 1, BoardBefore: b},
		},
		Verdict: verdict.Verdict{Kind: verdict.Ongoing},
	}
	log.Info().Str("gameId", gameID).Int("numPlayers", numPlayers).Int("mapSize", cfg.MapSize).
		Msg("game initialized")
	return gs, nil
}

// current returns the last round record: while the game is ongoing,
// the round accepting declarations/orders; after a terminal verdict,
// the final pre-resolution snapshot (§3.1), which Replay audits.
func (gs *GameState) current() *RoundRecord {
	return gs.Rounds[len(gs.Rounds)-1]
}

func (gs *GameState) requireOngoing() error {
	if gs.Verdict.Terminal() {
		return apperr.New(apperr.PhaseError, "game has already reached a terminal verdict").
			WithContext("phase", "terminal")
	}
	return nil
}
