package round

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"territory/apperr"
	"territory/config"
	"territory/order"
	"territory/verdict"
)

func newGame(t *testing.T, numPlayers int) *GameState {
	t.Helper()
	cfg := config.Default()
	gs, err := New("test-game", cfg, numPlayers, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return gs
}

func declareAll(t *testing.T, gs *GameState) {
	t.Helper()
	for phase := 0; phase < gs.Config.DeclarationCount; phase++ {
		lines := make([]string, gs.NumPlayers)
		err := gs.SubmitDeclarations(lines)
		require.NoError(t, err)
	}
}

func TestFullRoundLifecycle(t *testing.T) {
	gs := newGame(t, 3)
	require.Equal(t, 1, gs.CurrentRound)
	require.Len(t, gs.Rounds, 1)

	declareAll(t, gs)
	lines := make([]string, gs.NumPlayers)
	require.NoError(t, gs.SubmitOrders(lines, order.RejectHard))
	require.NoError(t, gs.Resolve())

	require.Equal(t, verdict.Ongoing, gs.Verdict.Kind)
	require.Equal(t, 2, gs.CurrentRound)
	require.Len(t, gs.Rounds, 2)
}

func TestOrdersBeforeDeclarationsRejected(t *testing.T) {
	gs := newGame(t, 3)
	lines := make([]string, gs.NumPlayers)
	err := gs.SubmitOrders(lines, order.RejectHard)
	require.Error(t, err)
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, apperr.PhaseError, kind)
}

func TestResolveWithoutOrdersRejected(t *testing.T) {
	gs := newGame(t, 3)
	declareAll(t, gs)
	err := gs.Resolve()
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	require.Equal(t, apperr.PhaseError, kind)
}

func TestDeclarationsCompleteRejectsMore(t *testing.T) {
	gs := newGame(t, 3)
	declareAll(t, gs)
	lines := make([]string, gs.NumPlayers)
	err := gs.SubmitDeclarations(lines)
	require.Error(t, err)
}

func TestDeclarationSanitization(t *testing.T) {
	gs := newGame(t, 3)
	gs.Config.MaxPlanLength = 5
	lines := []string{"hello\tworld\nextra", "short", "x"}
	require.NoError(t, gs.SubmitDeclarations(lines))
	require.Equal(t, "hello", gs.current().Declarations[0])
}

func TestNoFurtherTransitionsAfterTerminal(t *testing.T) {
	gs := newGame(t, 3)
	// Force annihilation by zeroing the board (simulate all players dying).
	for i := range gs.current().BoardBefore.Squares {
		gs.current().BoardBefore.Squares[i].Owner = -1
		gs.current().BoardBefore.Squares[i].Units = 0
	}
	declareAll(t, gs)
	require.NoError(t, gs.SubmitOrders(make([]string, gs.NumPlayers), order.RejectHard))
	require.NoError(t, gs.Resolve())
	require.True(t, gs.Verdict.Terminal())

	err := gs.SubmitDeclarations(make([]string, gs.NumPlayers))
	require.Error(t, err)
	kind, _ := apperr.KindOf(err)
	require.Equal(t, apperr.PhaseError, kind)
}

func TestTreatAsEmptyPolicy(t *testing.T) {
	gs := newGame(t, 3)
	declareAll(t, gs)
	lines := make([]string, gs.NumPlayers)
	lines[0] = "99,99,U,1" // invalid: out of bounds
	err := gs.SubmitOrders(lines, order.TreatAsEmpty)
	require.NoError(t, err)
	require.Empty(t, gs.current().OrdersByPlayer[0])
}

func TestRejectHardPolicy(t *testing.T) {
	gs := newGame(t, 3)
	declareAll(t, gs)
	lines := make([]string, gs.NumPlayers)
	lines[0] = "99,99,U,1"
	err := gs.SubmitOrders(lines, order.RejectHard)
	require.Error(t, err)
}

func TestReplayAfterSeveralRounds(t *testing.T) {
	gs := newGame(t, 3)
	for i := 0; i < 3; i++ {
		declareAll(t, gs)
		require.NoError(t, gs.SubmitOrders(make([]string, gs.NumPlayers), order.RejectHard))
		require.NoError(t, gs.Resolve())
		if gs.Verdict.Terminal() {
			break
		}
	}
	require.NoError(t, gs.Replay())
}
