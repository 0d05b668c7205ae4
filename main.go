package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/sync/errgroup"

	"github.com/ecra2001/chess-old/internal/auth"
	"github.com/ecra2001/chess-old/internal/httpapi"
	"github.com/ecra2001/chess-old/internal/realtime"
	"github.com/ecra2001/chess-old/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	matches, err := store.NewMatchRepository(db, log)
	if err != nil {
		return fmt.Errorf("match repository: %w", err)
	}
	defer func() { _ = matches.Close() }()

	tokens := auth.NewTokens(config.JWTSecret, config.AuthTokenDuration).
		WithRevocations(store.NewRevocationRepository(db, log))
	accounts := auth.NewAccounts(store.NewUserRepository(db, log), tokens)
	registry := realtime.NewRegistry(log)
	dispatcher := realtime.NewDispatcher(log, tokens, matches, registry)
	ws := realtime.HandleWebSocket(dispatcher, realtime.ClientConfig{
		SendBufferSize: config.SendBufferSize,
		ReadLimit:      int64(config.ReadLimit),
		PongWait:       config.PongWait,
		WriteWait:      config.WriteWait,
	}, log)
	api := httpapi.NewServer(log, accounts, matches)
	if config.EnableClear {
		log.Warn("DELETE /api/db is enabled")
		api.WithClear(store.NewAdmin(db, log))
	}

	address := config.Host + ":" + strconv.Itoa(config.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           api.Routes(ws),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting chess server", "address", address, "at", time.Now().UTC())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		// Hijacked websocket connections are not tracked by Shutdown.
		registry.CloseAll()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Program stopped cleanly")
	return nil
}
