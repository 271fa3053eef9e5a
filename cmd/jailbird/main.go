package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/jailbird/internal/common/clock"
	"github.com/KirkDiggler/jailbird/internal/common/keylock"
	"github.com/KirkDiggler/jailbird/internal/common/uuid"
	"github.com/KirkDiggler/jailbird/internal/dice"
	"github.com/KirkDiggler/jailbird/internal/handlers/discord"
	"github.com/KirkDiggler/jailbird/internal/platform"
	gameRepo "github.com/KirkDiggler/jailbird/internal/repositories/prison_game"
	quarantineRepo "github.com/KirkDiggler/jailbird/internal/repositories/quarantine"
	ledgerRepo "github.com/KirkDiggler/jailbird/internal/repositories/sentence_ledger"
	"github.com/KirkDiggler/jailbird/internal/scheduler"
	"github.com/KirkDiggler/jailbird/internal/services/isolation"
	"github.com/KirkDiggler/jailbird/internal/services/messaging"
	"github.com/KirkDiggler/jailbird/internal/services/mirror"
	"github.com/KirkDiggler/jailbird/internal/services/prisonbreak"
	"github.com/KirkDiggler/jailbird/internal/services/quarantine"
	"github.com/KirkDiggler/jailbird/internal/services/spectator"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "jailbird",
		Usage:   "discord quarantine bot with a prison break on the side",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "discord-token",
				Usage:    "bot token",
				Required: true,
				EnvVars:  []string{"DISCORD_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "application-id",
				Usage:   "application ID, defaults to the bot user",
				EnvVars: []string{"APPLICATION_ID"},
			},
			&cli.StringFlag{
				Name:    "guild-id",
				Usage:   "register commands for a single guild instead of globally",
				EnvVars: []string{"GUILD_ID"},
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "redis connection URL",
				Value:   "redis://localhost:6379/0",
				EnvVars: []string{"REDIS_URL"},
			},
			&cli.StringFlag{
				Name:    "metrics-listen",
				Usage:   "IP or address, and port, to listen on for metrics APIs",
				Value:   ":3998",
				EnvVars: []string{"JAILBIRD_METRICS_LISTEN"},
			},
			&cli.DurationFlag{
				Name:    "expiry-interval",
				Usage:   "time between sentence expiry and stale game sweeps",
				Value:   scheduler.DefaultInterval,
				EnvVars: []string{"JAILBIRD_EXPIRY_INTERVAL"},
			},
			&cli.Float64Flag{
				Name:    "platform-rate-limit",
				Usage:   "max Discord REST requests per second",
				Value:   10,
				EnvVars: []string{"JAILBIRD_PLATFORM_RATE_LIMIT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: runBot,
	}

	return app.Run(args)
}

func runBot(cctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisOpts, err := redis.ParseURL(cctx.String("redis-url"))
	if err != nil {
		return fmt.Errorf("invalid redis URL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Initialize repositories
	quarantineRepository, err := quarantineRepo.NewRedis(&quarantineRepo.Config{
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create quarantine repository: %w", err)
	}

	ledgerRepository, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create sentence ledger repository: %w", err)
	}

	gameRepository, err := gameRepo.NewRedis(&gameRepo.Config{
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create game repository: %w", err)
	}

	session, err := discordgo.New("Bot " + cctx.String("discord-token"))
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	discordPlatform, err := platform.NewDiscord(&platform.DiscordConfig{
		Session:           session,
		RequestsPerSecond: cctx.Float64("platform-rate-limit"),
	})
	if err != nil {
		return fmt.Errorf("failed to create platform: %w", err)
	}

	// Record writes and game moves share one set of locks
	locker := keylock.New()
	roller := dice.New(nil)
	clk := clock.New()
	ids := uuid.New()

	isolationSvc, err := isolation.New(&isolation.Config{
		Platform: discordPlatform,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create isolation service: %w", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: roller,
	})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	quarantineSvc, err := quarantine.New(&quarantine.Config{
		QuarantineRepo: quarantineRepository,
		LedgerRepo:     ledgerRepository,
		Isolation:      isolationSvc,
		Platform:       discordPlatform,
		Messaging:      messagingSvc,
		Clock:          clk,
		UUIDGenerator:  ids,
		Locker:         locker,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create quarantine service: %w", err)
	}

	prisonBreakSvc, err := prisonbreak.New(&prisonbreak.Config{
		GameRepo:      gameRepository,
		Quarantine:    quarantineSvc,
		Platform:      discordPlatform,
		Messaging:     messagingSvc,
		DiceRoller:    roller,
		Clock:         clk,
		UUIDGenerator: ids,
		Locker:        locker,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create prison break service: %w", err)
	}

	spectatorSvc, err := spectator.New(&spectator.Config{
		GameRepo:   gameRepository,
		Quarantine: quarantineSvc,
		Platform:   discordPlatform,
		Clock:      clk,
		Locker:     locker,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create spectator service: %w", err)
	}

	mirrorSvc, err := mirror.New(&mirror.Config{
		Quarantine: quarantineSvc,
		Platform:   discordPlatform,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create mirror service: %w", err)
	}

	sweeps, err := scheduler.New(&scheduler.Config{
		Interval: cctx.Duration("expiry-interval"),
		Tasks: []scheduler.Task{
			{
				Name: "expire_sentences",
				Run: func(ctx context.Context) error {
					out, err := quarantineSvc.ExpireDue(ctx, &quarantine.ExpireDueInput{})
					if err != nil {
						return err
					}
					if len(out.Released) > 0 {
						logger.Info("sentences expired", "released", len(out.Released))
					}
					return nil
				},
			},
			{
				Name: "collect_stale_games",
				Run: func(ctx context.Context) error {
					out, err := prisonBreakSvc.CollectStale(ctx, &prisonbreak.CollectStaleInput{})
					if err != nil {
						return err
					}
					if out.PlayersRemoved > 0 || out.GamesDeactivated > 0 {
						logger.Info("stale games collected", "players_removed", out.PlayersRemoved, "games_deactivated", out.GamesDeactivated)
					}
					return nil
				},
			},
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Session:       session,
		ApplicationID: cctx.String("application-id"),
		GuildID:       cctx.String("guild-id"),
		Quarantine:    quarantineSvc,
		PrisonBreak:   prisonBreakSvc,
		Spectator:     spectatorSvc,
		Mirror:        mirrorSvc,
		Messaging:     messagingSvc,
		Scheduler:     sweeps,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	metricsServer := &http.Server{
		Addr:    cctx.String("metrics-listen"),
		Handler: promhttp.Handler(),
	}

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}
	logger.Info("jailbird started", "version", versioninfo.Short())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics endpoint: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to stop metrics endpoint", "err", err)
		}
		return bot.Stop()
	})

	return g.Wait()
}
