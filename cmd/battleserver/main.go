package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/db"
	"github.com/udisondev/battlecore/internal/game/broadcast"
	"github.com/udisondev/battlecore/internal/game/combat"
	"github.com/udisondev/battlecore/internal/game/party"
	"github.com/udisondev/battlecore/internal/game/skill"
	"github.com/udisondev/battlecore/internal/gameserver"
	"github.com/udisondev/battlecore/internal/i18n"
	"github.com/udisondev/battlecore/internal/scripting"
	"github.com/udisondev/battlecore/internal/world"
)

// ConfigPath is the default config location; BATTLECORE_CONFIG overrides it.
const ConfigPath = "config/battle.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.ResolvePath(ConfigPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(newLogHandler(os.Stdout, cfg.LogFormat, parseLogLevel(cfg.LogLevel))))
	slog.Info("battlecore starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"bind", cfg.BindAddress,
		"port", cfg.Port)

	catalog, err := data.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading static data: %w", err)
	}

	w := world.New()
	if err := data.Populate(w, catalog.Maps, catalog.Monsters); err != nil {
		return fmt.Errorf("populating world: %w", err)
	}
	slog.Info("world initialized", "maps", w.MapCount())

	hooks, err := scripting.NewEngine(cfg.ScriptsDir)
	if err != nil {
		return fmt.Errorf("loading scripts: %w", err)
	}
	defer hooks.Close()

	msgs, err := i18n.New(cfg.Language)
	if err != nil {
		return fmt.Errorf("loading messages: %w", err)
	}

	// nil interface, а не nil-указатель: без БД сессии не сохраняются
	var progress gameserver.ProgressStore
	var persistence *db.PersistenceService
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		persistence = db.NewPersistenceService(
			db.NewCharacterRepository(database.Pool()),
			db.NewPenaltyRepository(database.Pool()),
		)
		progress = persistence
	} else {
		slog.Warn("database disabled, progress is not persisted")
	}

	clients := gameserver.NewClientManager(w)
	out := broadcast.New(clients)
	rng := combat.DefaultRand()
	env := &combat.Env{
		Characters: w,
		Groups:     party.NewManager(),
		Items:      catalog.Items,
		Rates:      cfg.Rates,
		Combat:     cfg.Combat,
		Rand:       rng,
		Engine:     combat.NewEngine(rng, cfg.Combat.OverflowMode),
		Out:        out,
		Messages:   msgs,
		Hooks:      hooks,
	}
	casts := skill.NewCastManager(env, w)
	sessions := gameserver.NewSessions(w, catalog, progress, casts)
	server := gameserver.NewServer(cfg, gameserver.NewHandler(sessions, clients, casts, out), clients)

	g, gctx := errgroup.WithContext(ctx)

	if persistence != nil {
		g.Go(func() error {
			slog.Info("starting progress flush loop", "interval", cfg.Database.FlushInterval)
			if err := persistence.Run(gctx, cfg.Database.FlushInterval, clients.Online); err != nil {
				return fmt.Errorf("progress flush loop: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := server.Run(gctx); err != nil {
			return fmt.Errorf("battle server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	slog.Info("battlecore stopped")
	return nil
}

func newLogHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
