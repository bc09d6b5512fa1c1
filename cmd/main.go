package main

import (
	"context"
	"fmt"
	"hive-signal/auth"
	"hive-signal/domain"
	"hive-signal/gateway"
	"hive-signal/identity"
	"hive-signal/infrastructure/http/server"
	"hive-signal/observability"
	"hive-signal/repositories"
	"hive-signal/services"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run keeps every defer reachable before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	scope, err := domain.ParseScopeMode(config.OwnerScope)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	messageRepository, err := repositories.NewMessageRepository(db, log)
	if err != nil {
		return err
	}
	defer func() { _ = messageRepository.Close() }()

	// 3. Gateway, pipeline and identity
	gw, err := gateway.New(gateway.Mode(config.GatewayMode), gateway.Config{
		AccountSID: config.TwilioAccountSID,
		AuthToken:  config.TwilioAuthToken,
		FromNumber: config.TwilioPhoneNumber,
	}, log)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	monitor := observability.NewDispatchMonitor(log)
	messages := services.NewMessageService(log, messageRepository, gw, monitor)
	accounts := services.NewAuthService(log, repositories.NewUserRepository(db))

	resolver, err := newResolver(log, scope, config)
	if err != nil {
		return err
	}

	// 4. HTTP Server
	handler := server.NewHandler(log, messages, accounts, resolver, monitor, server.Options{
		FrontendOrigin: config.FrontendOrigin,
		CookieSecure:   config.CookieSecure,
		GatewayMode:    gateway.Mode(config.GatewayMode),
	})
	httpServer := server.NewServer(log, fmt.Sprintf("%s:%d", config.Host, config.Port), handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Start()
	}()

	// 5. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	log.Info("Program stopped cleanly", "scope", scope)
	return nil
}

func newResolver(log *slog.Logger, scope domain.ScopeMode, config Config) (identity.Resolver, error) {
	if scope == domain.ScopeSession {
		return identity.NewSessionResolver(log), nil
	}
	tokens, err := auth.NewTokenIssuer(config.AuthTokenSecret, config.AuthTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return identity.NewAccountResolver(log, tokens), nil
}
