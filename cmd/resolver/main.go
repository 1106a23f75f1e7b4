package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/config"
	"github.com/KirkDiggler/dnd-battlemap/internal/dice"
	"github.com/KirkDiggler/dnd-battlemap/internal/logging"
	"github.com/KirkDiggler/dnd-battlemap/internal/resolver/local"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	seed := flag.Int64("seed", 0, "dice seed, random when 0")
	configPath := flag.String("config", os.Getenv("BATTLEMAP_CONFIG"), "path to a TOML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if *seed == 0 {
		if *seed, err = battlemap.NewSeed(); err != nil {
			logger.Fatal("failed to seed dice", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           local.Handler(local.New(dice.NewRandomRoller(*seed), logger), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("resolver shutdown", zap.Error(err))
		}
	}()

	logger.Info("local resolver listening", zap.String("addr", *addr), zap.Int64("seed", *seed))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("resolver stopped", zap.Error(err))
	}
}
