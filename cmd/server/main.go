// cmd/server/main.go
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/DeadCoder-N/Shadow-Signal/internal/cache"
	"github.com/DeadCoder-N/Shadow-Signal/internal/config"
	"github.com/DeadCoder-N/Shadow-Signal/internal/game"
	"github.com/DeadCoder-N/Shadow-Signal/internal/handlers"
	"github.com/DeadCoder-N/Shadow-Signal/internal/store"
	"github.com/DeadCoder-N/Shadow-Signal/internal/words"
)

func main() {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	st, cleanup := buildStore(logger)
	defer cleanup()

	bank := loadBank(logger)

	if err := cache.ConnectRedis(); err != nil {
		logger.Warnf("redis unavailable, event publishing disabled: %v", err)
	}

	svc := game.NewService(st, bank, logger)
	api := handlers.NewAPIServer(svc, logger)

	server := &http.Server{
		Handler:      api.Routes(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}

	l, err := net.Listen("tcp", ":"+config.GetEnv("PORT", "8080"))
	if err != nil {
		logger.Fatalf("failed to listen: %v", err)
	}
	logger.Infof("listening on %s", l.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Errorf("failed to serve: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}
}

// buildStore picks the backing store from STORE_BACKEND: "postgres" for
// the pgx-backed store, anything else for the in-memory one.
func buildStore(logger *logrus.Logger) (store.Store, func()) {
	if config.GetEnv("STORE_BACKEND", "memory") != "postgres" {
		logger.Info("using in-memory store")
		return store.NewMemoryStore(), func() {}
	}

	pool, err := store.ConnectPostgres(context.Background())
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	pg := store.NewPostgresStore(pool)
	if err := pg.EnsureSchema(context.Background()); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}
	logger.Info("using postgres store")
	return pg, pool.Close
}

// loadBank reads a custom word bank when WORD_BANK_FILE is set, else the
// compiled-in default.
func loadBank(logger *logrus.Logger) *words.Bank {
	path := config.GetEnv("WORD_BANK_FILE", "")
	if path == "" {
		return words.DefaultBank()
	}
	bank, err := words.LoadFile(path)
	if err != nil {
		logger.Fatalf("load word bank: %v", err)
	}
	logger.Infof("loaded word bank from %s (%d domains)", path, len(bank.Domains))
	return bank
}
