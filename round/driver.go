package round

import (
	"strings"

	"github.com/rs/zerolog/log"

	"territory/apperr"
	"territory/board"
	"territory/order"
	"territory/resolve"
	"territory/verdict"
)

// SubmitDeclarations appends one declaration per player to the current
// round, truncated and sanitized per §4.8/§6.3, and advances the
// declaration phase counter. Rejected if the current round already
// has orders or if all declaration phases are complete.
func (gs *GameState) SubmitDeclarations(lines []string) error {
	if err := gs.requireOngoing(); err != nil {
		return err
	}
	cur := gs.current()
	if cur.OrdersSubmitted {
		return apperr.New(apperr.PhaseError, "cannot submit declarations after orders have been submitted").
			WithContext("round", cur.RoundNumber)
	}
	if cur.DeclPhasesDone >= gs.Config.DeclarationCount {
		return apperr.New(apperr.PhaseError, "all declaration phases for this round are already complete").
			WithContext("round", cur.RoundNumber)
	}
	if len(lines) != gs.NumPlayers {
		return apperr.Newf(apperr.ValidationError, "expected %d declaration lines, got %d", gs.NumPlayers, len(lines)).
			WithContext("expected", gs.NumPlayers, "got", len(lines))
	}

	for _, line := range lines {
		cur.Declarations = append(cur.Declarations, sanitizeDeclaration(line, gs.Config.MaxPlanLength))
	}
	cur.DeclPhasesDone++

	log.Debug().Str("gameId", gs.GameID).Int("round", cur.RoundNumber).
		Int("phase", cur.DeclPhasesDone).Msg("declarations submitted")
	return nil
}

func sanitizeDeclaration(line string, maxLen int) string {
	replaced := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		return r
	}, line)
	if len(replaced) > maxLen {
		replaced = replaced[:maxLen]
	}
	return replaced
}

// SubmitOrders validates and stores one order line per player against
// the current round's boardBefore (§4.3, §4.8). policy controls
// whether a validation failure for one player's line is a hard error
// for the whole call or is treated as that player submitting nothing.
func (gs *GameState) SubmitOrders(lines []string, policy order.FailurePolicy) error {
	if err := gs.requireOngoing(); err != nil {
		return err
	}
	cur := gs.current()
	if cur.DeclPhasesDone < gs.Config.DeclarationCount {
		return apperr.New(apperr.PhaseError, "declarations are not yet complete for this round").
			WithContext("round", cur.RoundNumber)
	}
	if cur.OrdersSubmitted {
		return apperr.New(apperr.PhaseError, "orders have already been submitted for this round").
			WithContext("round", cur.RoundNumber)
	}
	if len(lines) != gs.NumPlayers {
		return apperr.Newf(apperr.ValidationError, "expected %d order lines, got %d", gs.NumPlayers, len(lines)).
			WithContext("expected", gs.NumPlayers, "got", len(lines))
	}

	ordersByPlayer := make([][]order.Order, gs.NumPlayers)
	for i, line := range lines {
		parsed, err := order.ParseAndValidate(line, board.PlayerID(i), cur.BoardBefore, gs.Config.MaxOrdersPerRound)
		if err != nil {
			if policy == order.RejectHard {
				return err
			}
			log.Debug().Str("gameId", gs.GameID).Int("round", cur.RoundNumber).
				Int("player", i).Err(err).Msg("order line rejected, treated as empty")
			continue
		}
		ordersByPlayer[i] = parsed
	}

	cur.OrdersByPlayer = ordersByPlayer
	cur.OrdersSubmitted = true
	log.Debug().Str("gameId", gs.GameID).Int("round", cur.RoundNumber).Msg("orders submitted")
	return nil
}

// Resolve applies §4.4–§4.7 to the current round and either appends a
// fresh round (verdict Ongoing) or freezes the game at a terminal
// verdict (§4.8). Once frozen, no further round transitions succeed.
func (gs *GameState) Resolve() error {
	if err := gs.requireOngoing(); err != nil {
		return err
	}
	cur := gs.current()
	if cur.DeclPhasesDone < gs.Config.DeclarationCount {
		return apperr.New(apperr.PhaseError, "declarations are not yet complete for this round").
			WithContext("round", cur.RoundNumber)
	}
	if !cur.OrdersSubmitted {
		return apperr.New(apperr.PhaseError, "orders have not been submitted for this round").
			WithContext("round", cur.RoundNumber)
	}

	newBoard := resolve.Round(cur.BoardBefore, cur.OrdersByPlayer, gs.productionConfig())
	v := verdict.Evaluate(newBoard, gs.NumPlayers, gs.CurrentRound, gs.Config.MaxRounds)
	gs.Verdict = v

	if v.Terminal() {
		log.Info().Str("gameId", gs.GameID).Int("round", cur.RoundNumber).
			Interface("verdict", v).Msg("game reached a terminal verdict")
		return nil
	}

	gs.CurrentRound++
	gs.Rounds = append(gs.Rounds, &RoundRecord{RoundNumber: gs.CurrentRound, BoardBefore: newBoard})
	log.Info().Str("gameId", gs.GameID).Int("round", cur.RoundNumber).Msg("round resolved")
	return nil
}

func (gs *GameState) productionConfig() resolve.ProductionConfig {
	return resolve.ProductionConfig{
		BaseProduction:     gs.Config.BaseProduction,
		ResourceProduction: gs.Config.ResourceProduction,
		ProductionCap:      gs.Config.ProductionCap,
	}
}

// Replay re-derives every intermediate board from round 1 by
// re-running the resolver over the stored order history, checking
// that the persisted boards are exactly what the resolver would have
// produced — the "sufficient to replay or audit the match" guarantee
// from the purpose statement, and an exercise of determinism and
// order-independence.
func (gs *GameState) Replay() error {
	for i := 0; i < len(gs.Rounds)-1; i++ {
		r := gs.Rounds[i]
		next := gs.Rounds[i+1]
		got := resolve.Round(r.BoardBefore, r.OrdersByPlayer, gs.productionConfig())
		if !got.Equal(next.BoardBefore) {
			return apperr.Newf(apperr.Bug, "replay mismatch at round %d", r.RoundNumber).
				WithContext("round", r.RoundNumber)
		}
	}

	if gs.Verdict.Terminal() {
		last := gs.current()
		if last.OrdersSubmitted {
			got := resolve.Round(last.BoardBefore, last.OrdersByPlayer, gs.productionConfig())
			v := verdict.Evaluate(got, gs.NumPlayers, last.RoundNumber, gs.Config.MaxRounds)
			if !v.Equal(gs.Verdict) {
				return apperr.Newf(apperr.Bug, "replay verdict mismatch at round %d", last.RoundNumber).
					WithContext("round", last.RoundNumber)
			}
		}
	}
	return nil
}
