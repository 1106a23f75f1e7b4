package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap/script"
	"github.com/KirkDiggler/dnd-battlemap/internal/bestiary"
	"github.com/KirkDiggler/dnd-battlemap/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-battlemap/internal/clients/resolver"
	"github.com/KirkDiggler/dnd-battlemap/internal/config"
	"github.com/KirkDiggler/dnd-battlemap/internal/dice"
	"github.com/KirkDiggler/dnd-battlemap/internal/events"
	"github.com/KirkDiggler/dnd-battlemap/internal/handlers/web"
	"github.com/KirkDiggler/dnd-battlemap/internal/logging"
	"github.com/KirkDiggler/dnd-battlemap/internal/notifiers/discord"
	"github.com/KirkDiggler/dnd-battlemap/internal/repositories/turnlocks"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/session"
	"github.com/KirkDiggler/dnd-battlemap/internal/services/turn"
	"github.com/KirkDiggler/dnd-battlemap/internal/telemetry"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

func main() {
	configPath := flag.String("config", os.Getenv("BATTLEMAP_CONFIG"), "path to a TOML config file")
	flag.Parse()

	// Load .env file
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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("battlemap stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	grid, err := buildGrid(cfg.Map, logger)
	if err != nil {
		return err
	}
	logger.Info("battle map generated",
		zap.String("name", grid.Name),
		zap.String("layout", cfg.Map.Layout),
		zap.Int64("seed", grid.Seed),
	)

	beasts, srd, err := buildBestiary(cfg.Bestiary, grid.Seed)
	if err != nil {
		return err
	}

	bus := events.NewBus(logger)

	policy := turnorder.PolicyReset
	if cfg.TurnOrder.PreserveActive {
		policy = turnorder.PolicyPreserveActive
	}

	sess := session.NewService(&session.ServiceConfig{
		Grid:         grid,
		Bestiary:     beasts,
		SRD:          srd,
		Policy:       policy,
		Bus:          bus,
		CharacterIDs: uuid.NewGoogleUUIDGenerator("character"),
		EntityIDs:    uuid.NewGoogleUUIDGenerator("entity"),
		Logger:       logger,
	})
	logger.Info("default entities spawned", zap.Int("count", sess.SpawnDefaults(ctx)))

	locker, redisClient := buildLocker(cfg.Redis, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	resolverClient, err := resolver.New(&resolver.Config{
		URL:    resolverURL(cfg.Resolver.URL),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	turns := turn.NewService(&turn.ServiceConfig{
		Session:  sess,
		Resolver: resolverClient,
		Locker:   locker,
		Timeout:  cfg.Resolver.Timeout,
		Bus:      bus,
		Logger:   logger,
		Tracer:   otel.Tracer("github.com/KirkDiggler/dnd-battlemap/internal/services/turn"),
		OnStateChange: func(s turn.State) {
			logger.Debug("turn state changed", zap.String("state", string(s)))
		},
	})
	defer turns.Close()

	feed := web.NewFeed(logger)
	feed.Subscribe(bus)
	defer feed.Close()

	handler := web.NewHandler(&web.HandlerConfig{
		Session: sess,
		Turn:    turns,
		Feed:    feed,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Discord.Token != "" {
		dg, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			return err
		}
		notifier := discord.New(&discord.Config{
			Sender:    dg,
			ChannelID: cfg.Discord.ChannelID,
			Logger:    logger,
		})
		notifier.Subscribe(bus)
		g.Go(func() error { return notifier.Run(gctx) })
		logger.Info("mirroring battle log to discord", zap.String("channel", cfg.Discord.ChannelID))
	}

	g.Go(func() error {
		logger.Info("battlemap listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		turns.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func buildGrid(cfg config.MapConfig, logger *zap.Logger) (*battlemap.Grid, error) {
	var (
		painter battlemap.Painter
		err     error
	)
	if battlemap.Layout(cfg.Layout) == battlemap.LayoutScript {
		painter, err = script.Load(cfg.ScriptPath, logger)
	} else {
		painter, err = battlemap.BuiltinPainter(battlemap.Layout(cfg.Layout), cfg.CrateChance)
	}
	if err != nil {
		return nil, err
	}

	return battlemap.Generate(battlemap.Spec{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Name:        cfg.Name,
		Description: cfg.Description,
		Seed:        cfg.Seed,
		Painter:     painter,
	})
}

func buildBestiary(cfg config.BestiaryConfig, seed int64) (*bestiary.Bestiary, *bestiary.SRDImporter, error) {
	beasts := bestiary.Builtin()
	if cfg.Path != "" {
		loaded, err := bestiary.Load(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		beasts = loaded
	}

	if !cfg.SRDEnabled {
		return beasts, nil, nil
	}

	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return beasts, bestiary.NewSRDImporter(client, dice.NewRandomRoller(seed)), nil
}

// buildLocker uses Redis when configured and reachable, otherwise the
// in-process lock
func buildLocker(cfg config.RedisConfig, logger *zap.Logger) (turnlocks.Locker, redis.UniversalClient) {
	ids := uuid.NewGoogleUUIDGenerator("lock")
	if cfg.URL == "" {
		return turnlocks.NewInMemory(ids), nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		logger.Warn("failed to parse redis url, falling back to in-memory turn lock", zap.Error(err))
		return turnlocks.NewInMemory(ids), nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.Warn("failed to connect to redis, falling back to in-memory turn lock",
			zap.String("addr", opts.Addr),
			zap.Error(err),
		)
		return turnlocks.NewInMemory(ids), nil
	}
	logger.Info("using redis turn lock", zap.String("addr", opts.Addr))

	return turnlocks.NewRedis(&turnlocks.RedisConfig{
		Client: client,
		TTL:    cfg.LockTTL,
		IDs:    ids,
	}), client
}

// resolverURL accepts either a base URL or the full turn endpoint
func resolverURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, resolver.DefaultPath) {
		return base
	}
	return base + resolver.DefaultPath
}
