// Command territoryctl is the reference host for the engine: a small
// CLI that drives one game per invocation against a JSON store on
// disk, matching spec.md §6's verb table (§6.4).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"territory/apperr"
	"territory/board"
	"territory/config"
	"territory/order"
	"territory/round"
	"territory/setup"
	"territory/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) (code int) {
	setupLogging(os.Stderr)

	if len(args) == 0 {
		fmt.Fprintln(stdout, "usage: territoryctl <init|show|declare|orders|advance> [flags]")
		return 2
	}

	var err error
	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(*apperr.Error)
			if !ok {
				panic(r)
			}
			log.Error().Err(ae).Msg("internal invariant violation")
			fmt.Fprintln(stdout, ae)
			code = 1
		}
	}()

	switch args[0] {
	case "init":
		err = cmdInit(args[1:], stdout)
	case "show":
		err = cmdShow(args[1:], stdout)
	case "declare":
		err = cmdDeclare(args[1:], stdin)
	case "orders":
		err = cmdOrders(args[1:], stdin)
	case "advance":
		err = cmdAdvance(args[1:], stdin)
	default:
		fmt.Fprintf(stdout, "unknown verb %q\n", args[0])
		return 2
	}

	if err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(stdout, err)
		return 1
	}
	return 0
}

func setupLogging(w io.Writer) {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
	if cfg, err := config.FromEnv(); err == nil {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			log.Logger = log.Logger.Level(lvl)
		}
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func openStore(dir string) (*store.Store, error) {
	return store.New(dir)
}

func cmdInit(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	dir := fs.String("store", "./games", "directory to persist game state under")
	numPlayers := fs.Int("players", 3, "number of players")
	seed := fs.Uint64("seed", 1, "seed for initial setup's RNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	s, err := openStore(*dir)
	if err != nil {
		return err
	}

	gameID := setup.NewGameID()
	gs, err := round.New(gameID, cfg, *numPlayers, rand.New(rand.NewSource(*seed)))
	if err != nil {
		return err
	}
	if err := s.Create(gs); err != nil {
		return err
	}

	fmt.Fprintln(stdout, gameID)
	return nil
}

func cmdShow(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	dir := fs.String("store", "./games", "directory to persist game state under")
	gameID := fs.String("game", "", "game id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openStore(*dir)
	if err != nil {
		return err
	}
	gs, err := s.Load(*gameID)
	if err != nil {
		return err
	}

	cur := gs.Rounds[len(gs.Rounds)-1]
	fmt.Fprintf(stdout, "game=%s round=%d verdict=%v round_duration=%s\n",
		gs.GameID, gs.CurrentRound, gs.Verdict.Kind, gs.Config.RoundDuration)
	fmt.Fprintln(stdout, board.Serialize(cur.BoardBefore))
	return nil
}

func cmdDeclare(args []string, stdin io.Reader) error {
	fs := flag.NewFlagSet("declare", flag.ContinueOnError)
	dir := fs.String("store", "./games", "directory to persist game state under")
	gameID := fs.String("game", "", "game id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openStore(*dir)
	if err != nil {
		return err
	}
	gs, err := s.Load(*gameID)
	if err != nil {
		return err
	}

	lines, err := readLines(stdin, gs.NumPlayers)
	if err != nil {
		return err
	}
	if err := gs.SubmitDeclarations(lines); err != nil {
		return err
	}
	return s.Save(gs)
}

func cmdOrders(args []string, stdin io.Reader) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	dir := fs.String("store", "./games", "directory to persist game state under")
	gameID := fs.String("game", "", "game id")
	treatAsEmpty := fs.Bool("lenient", false, "treat a malformed order line as no orders instead of rejecting the call")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openStore(*dir)
	if err != nil {
		return err
	}
	gs, err := s.Load(*gameID)
	if err != nil {
		return err
	}

	lines, err := readLines(stdin, gs.NumPlayers)
	if err != nil {
		return err
	}
	policy := order.RejectHard
	if *treatAsEmpty {
		policy = order.TreatAsEmpty
	}
	if err := gs.SubmitOrders(lines, policy); err != nil {
		return err
	}
	if err := gs.Resolve(); err != nil {
		return err
	}
	return s.Save(gs)
}

// cmdAdvance auto-detects which phase the current round is in and
// feeds it the next batch of stdin lines: declarations if the
// declaration phases aren't complete, otherwise orders (which also
// triggers resolution). It fails if the game has already reached a
// terminal verdict.
func cmdAdvance(args []string, stdin io.Reader) error {
	fs := flag.NewFlagSet("advance", flag.ContinueOnError)
	dir := fs.String("store", "./games", "directory to persist game state under")
	gameID := fs.String("game", "", "game id")
	treatAsEmpty := fs.Bool("lenient", false, "treat a malformed order line as no orders instead of rejecting the call")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openStore(*dir)
	if err != nil {
		return err
	}
	gs, err := s.Load(*gameID)
	if err != nil {
		return err
	}
	if gs.Verdict.Terminal() {
		return apperr.New(apperr.PhaseError, "game has already reached a terminal verdict")
	}

	cur := gs.Rounds[len(gs.Rounds)-1]
	lines, err := readLines(stdin, gs.NumPlayers)
	if err != nil {
		return err
	}

	if cur.DeclPhasesDone < gs.Config.DeclarationCount {
		if err := gs.SubmitDeclarations(lines); err != nil {
			return err
		}
		return s.Save(gs)
	}

	policy := order.RejectHard
	if *treatAsEmpty {
		policy = order.TreatAsEmpty
	}
	if err := gs.SubmitOrders(lines, policy); err != nil {
		return err
	}
	if err := gs.Resolve(); err != nil {
		return err
	}
	return s.Save(gs)
}

func readLines(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, n)
	for len(lines) < n && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Newf(apperr.Bug, "read input lines").Wrap(err)
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines, nil
}
