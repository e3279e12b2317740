package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"territory/apperr"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 5, cfg.MapSize)
	require.Equal(t, 21, cfg.ProductionCap)
}

func TestValidateMapSize(t *testing.T) {
	cfg := Default()
	cfg.MapSize = 1
	err := cfg.Validate()
	require.Error(t, err)
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, apperr.InvalidConfig, kind)
}

func TestValidateNumPlayersCeiling(t *testing.T) {
	cfg := Default()
	cfg.MaxPlayers = 25
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidateNumPlayersBounds(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ValidateNumPlayers(3))
	require.Error(t, cfg.ValidateNumPlayers(1))
	require.Error(t, cfg.ValidateNumPlayers(21))
}
