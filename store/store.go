// Package store persists round.GameState to disk as one JSON file per
// game (§6.3), using encoding/json directly: no example repo in the
// reference corpus carries a struct-marshaling library suited to a
// fixed-shape round trip.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"territory/apperr"
	"territory/round"
)

// Store reads and writes GameState under a single root directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. dir is created if it does not
// already exist.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Newf(apperr.Bug, "create store directory %q", dir).Wrap(err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(gameID string) string {
	return filepath.Join(s.dir, gameID+".json")
}

// Create persists a brand-new game, failing if a file for its GameID
// already exists.
func (s *Store) Create(gs *round.GameState) error {
	path := s.path(gs.GameID)
	if _, err := os.Stat(path); err == nil {
		return apperr.Newf(apperr.GameAlreadyExists, "game %q already exists", gs.GameID).
			WithContext("gameId", gs.GameID)
	}
	return s.write(gs)
}

// Save overwrites the persisted state for an existing game.
func (s *Store) Save(gs *round.GameState) error {
	return s.write(gs)
}

// write serializes gs to a temp file in the same directory and renames
// it into place, so a reader never observes a partially-written file.
func (s *Store) write(gs *round.GameState) error {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return apperr.Newf(apperr.Bug, "marshal game state %q", gs.GameID).Wrap(err)
	}

	tmp, err := os.CreateTemp(s.dir, gs.GameID+".*.tmp")
	if err != nil {
		return apperr.Newf(apperr.Bug, "create temp file for game %q", gs.GameID).Wrap(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperr.Newf(apperr.Bug, "write temp file for game %q", gs.GameID).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.Newf(apperr.Bug, "close temp file for game %q", gs.GameID).Wrap(err)
	}
	if err := os.Rename(tmpName, s.path(gs.GameID)); err != nil {
		return apperr.Newf(apperr.Bug, "rename temp file into place for game %q", gs.GameID).Wrap(err)
	}

	log.Debug().Str("gameId", gs.GameID).Str("path", s.path(gs.GameID)).Msg("game state persisted")
	return nil
}

// Load reads the persisted state for gameID, reporting GameNotFound if
// no file exists.
func (s *Store) Load(gameID string) (*round.GameState, error) {
	data, err := os.ReadFile(s.path(gameID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Newf(apperr.GameNotFound, "game %q not found", gameID).
				WithContext("gameId", gameID)
		}
		return nil, apperr.Newf(apperr.Bug, "read game state %q", gameID).Wrap(err)
	}

	var gs round.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, apperr.Newf(apperr.Bug, "unmarshal game state %q", gameID).Wrap(err)
	}
	return &gs, nil
}

// Exists reports whether a game with the given ID is persisted.
func (s *Store) Exists(gameID string) bool {
	_, err := os.Stat(s.path(gameID))
	return err == nil
}
