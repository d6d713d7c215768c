package config

import "github.com/caarlos0/env/v11"

type GameConfig struct {
	StartingChips         int64 `env:"STARTING_CHIPS" envDefault:"2000"`
	TimeBankSeconds       int   `env:"TIME_BANK_SECONDS" envDefault:"30"`
	OracleFallbackSeconds int   `env:"ORACLE_FALLBACK_SECONDS" envDefault:"15"`
	SweepIntervalMS       int   `env:"SWEEP_INTERVAL_MS" envDefault:"500"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}
