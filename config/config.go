// Package config holds the recognized configuration options (§3.2)
// and their validation (§9 "Config validation surface"), plus an
// environment-variable loader for the CLI host.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"territory/apperr"
	"territory/board"
)

// Config carries every option spec.md §3.2 recognizes. RoundDuration
// is advisory metadata the core never reads (§9, SPEC_FULL.md §11).
type Config struct {
	MinPlayers        int           `env:"MIN_PLAYERS" envDefault:"3"`
	MaxPlayers        int           `env:"MAX_PLAYERS" envDefault:"20"`
	MapSize           int           `env:"MAP_SIZE" envDefault:"5"`
	MaxRounds         int           `env:"MAX_ROUNDS" envDefault:"15"`
	StartingUnits     int           `env:"STARTING_UNITS" envDefault:"5"`
	MaxPlanLength     int           `env:"MAX_PLAN_LENGTH" envDefault:"280"`
	DeclarationCount  int           `env:"DECLARATION_COUNT" envDefault:"1"`
	MaxOrdersPerRound int           `env:"MAX_ORDERS_PER_ROUND" envDefault:"10"`
	ResourceSquarePct int           `env:"RESOURCE_SQUARE_PCT" envDefault:"10"`
	BaseProduction    int           `env:"BASE_PRODUCTION" envDefault:"1"`
	ResourceProduction int          `env:"RESOURCE_PRODUCTION" envDefault:"2"`
	ProductionCap     int           `env:"PRODUCTION_CAP" envDefault:"21"`
	RoundDuration     time.Duration `env:"ROUND_DURATION" envDefault:"24h"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Default returns the same defaults FromEnv falls back to when no
// environment variable overrides are present.
func Default() Config {
	var cfg Config
	// env.Parse fills envDefault values even against an empty
	// environment, so a zero-value struct plus a parse pass against an
	// explicitly empty environment is the canonical way to materialize
	// the tag defaults.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// FromEnv loads configuration from environment variables, falling
// back to each field's envDefault, mirroring the corpus's own
// env.Parse(target) helper.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, apperr.Newf(apperr.InvalidConfig, "parse environment config").Wrap(err)
	}
	return cfg, nil
}

// Validate checks every bound spec.md §3.2/§9 places on configuration.
func (c Config) Validate() error {
	switch {
	case c.MinPlayers < 1:
		return invalid("minPlayers", c.MinPlayers, "must be >= 1")
	case c.MaxPlayers < c.MinPlayers:
		return invalid("maxPlayers", c.MaxPlayers, "must be >= minPlayers")
	case c.MaxPlayers > board.MaxPlayers:
		return invalid("maxPlayers", c.MaxPlayers, "must be <= 20 (letters a..t)")
	case c.MapSize < 2:
		return invalid("mapSize", c.MapSize, "must be >= 2")
	case c.MaxRounds < 1:
		return invalid("maxRounds", c.MaxRounds, "must be >= 1")
	case c.StartingUnits < 1:
		return invalid("startingUnits", c.StartingUnits, "must be >= 1")
	case c.MaxPlanLength < 1:
		return invalid("maxPlanLength", c.MaxPlanLength, "must be >= 1")
	case c.DeclarationCount < 1:
		return invalid("declarationCount", c.DeclarationCount, "must be >= 1")
	case c.MaxOrdersPerRound < 0:
		return invalid("maxOrdersPerRound", c.MaxOrdersPerRound, "must be >= 0")
	case c.ResourceSquarePct < 0 || c.ResourceSquarePct > 100:
		return invalid("resourceSquarePct", c.ResourceSquarePct, "must be within [0,100]")
	case c.BaseProduction < 0:
		return invalid("baseProduction", c.BaseProduction, "must be >= 0")
	case c.ResourceProduction < 0:
		return invalid("resourceProduction", c.ResourceProduction, "must be >= 0")
	case c.ProductionCap < 0:
		return invalid("productionCap", c.ProductionCap, "must be >= 0")
	}
	return nil
}

// ValidateNumPlayers checks a candidate player count against this
// config's bounds, distinct from struct-level Validate since it is
// checked again at game-init time against a caller-supplied value.
func (c Config) ValidateNumPlayers(numPlayers int) error {
	if numPlayers < c.MinPlayers || numPlayers > c.MaxPlayers {
		return apperr.Newf(apperr.InvalidConfig,
			"numPlayers %d outside bounds [%d,%d]", numPlayers, c.MinPlayers, c.MaxPlayers).
			WithContext("field", "numPlayers", "value", numPlayers)
	}
	if numPlayers > board.MaxPlayers {
		return apperr.Newf(apperr.InvalidConfig,
			"numPlayers %d exceeds the 20-player ceiling", numPlayers).
			WithContext("field", "numPlayers", "value", numPlayers)
	}
	return nil
}

func invalid(field string, value int, reason string) error {
	return apperr.Newf(apperr.InvalidConfig, "%s=%d invalid: %s", field, value, reason).
		WithContext("field", field, "value", value)
}
