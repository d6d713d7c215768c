package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/cache"
	"github.com/Ololadestephen/EncryptedPoker/internal/config"
	"github.com/Ololadestephen/EncryptedPoker/internal/logging"
	"github.com/Ololadestephen/EncryptedPoker/internal/oracle"
	"github.com/Ololadestephen/EncryptedPoker/internal/registry"
	"github.com/Ololadestephen/EncryptedPoker/internal/store"
	httptransport "github.com/Ololadestephen/EncryptedPoker/internal/transport/http"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if cfg.Server.PostgresDSN != "" {
		st, err = store.New(ctx, cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		if err := st.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		defer st.Close()
	} else {
		log.Warn().Msg("POSTGRES_DSN not set; running in-memory")
	}

	snaps := cache.New(cfg.Server.RedisAddr, cfg.Server.RedisPassword, cfg.Server.RedisDB,
		time.Duration(cfg.Server.SnapshotTTLSeconds)*time.Second)
	defer snaps.Close()

	local := oracle.NewLocal()
	var dealer, fallback oracle.Oracle
	if cfg.Server.OracleEndpoint != "" {
		dealer = oracle.NewClient(cfg.Server.OracleEndpoint, time.Duration(cfg.Server.OracleTimeoutSeconds)*time.Second)
		fallback = local
	} else {
		dealer = local
	}

	reg := registry.New(st, snaps, dealer, fallback, registry.Config{
		StartingChips:       cfg.Game.StartingChips,
		TimeBank:            time.Duration(cfg.Game.TimeBankSeconds) * time.Second,
		OracleFallbackAfter: time.Duration(cfg.Game.OracleFallbackSeconds) * time.Second,
		SweepInterval:       time.Duration(cfg.Game.SweepIntervalMS) * time.Millisecond,
	})
	local.Bind(reg)
	reg.StartJanitor(ctx)

	r := httptransport.NewRouter(reg)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server stopped")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
		log.Info().Msg("server stopped")
	}
}
