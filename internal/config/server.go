package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	// PostgresDSN is optional: without it the server runs in-memory and
	// tables do not survive a restart.
	PostgresDSN string `env:"POSTGRES_DSN"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	SnapshotTTLSeconds int    `env:"SNAPSHOT_TTL_SECONDS" envDefault:"30"`

	// OracleEndpoint is the external dealer's base URL. Empty means the
	// built-in deterministic dealer handles reveals and showdowns itself.
	OracleEndpoint       string `env:"ORACLE_ENDPOINT"`
	OracleTimeoutSeconds int    `env:"ORACLE_TIMEOUT_SECONDS" envDefault:"10"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
