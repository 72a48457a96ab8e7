package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bhaveshvasandani/PortfolioMgmt/internal/config"
	"github.com/bhaveshvasandani/PortfolioMgmt/internal/portfolio"
	"github.com/bhaveshvasandani/PortfolioMgmt/internal/server"
	"github.com/bhaveshvasandani/PortfolioMgmt/internal/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.FromEnv()

	// The cache backend is optional: when unset or unreachable the service
	// runs with the nop driver and keeps all state in memory only.
	var drv store.Driver = store.Nop{}
	if addr := cfg.RedisAddr(); addr != "" {
		rd, err := store.DialRedis(addr)
		if err != nil {
			logger.Warn().Err(err).Str("addr", addr).Msg("cache backend unreachable, snapshots disabled")
		} else {
			logger.Info().Str("addr", addr).Msg("cache backend connected")
			drv = rd
		}
	}
	defer drv.Close()

	srv := server.New(portfolio.NewDirectory(), drv, logger)

	httpSrv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", httpSrv.Addr).Msg("portfolio service listening")
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
