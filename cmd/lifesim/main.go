package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MTvrimPossible/simulation-game/internal/config"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/game"
	"github.com/MTvrimPossible/simulation-game/internal/legacy"
	gonet "github.com/MTvrimPossible/simulation-game/internal/net"
	"github.com/MTvrimPossible/simulation-game/internal/persist"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/scripting"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string, seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              lifesim  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      turn-based life simulation kernel    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mworld:\033[0m %s \033[90m(seed: %d)\033[0m\n\n", name, seed)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main logic ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Simulation.Seed)

	// 3. Definition tables and scripts
	printSection("data")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tables, err := data.Load(ctx, cfg.Simulation.DataDir)
	if err != nil {
		return err
	}
	printStat("items", tables.Items.Count())
	printStat("npcs", tables.Npcs.Count())
	printStat("quests", tables.Quests.Count())
	printStat("dialogue trees", tables.Dialogue.Count())
	printStat("conditions", tables.Conditions.Count())
	printStat("maps", tables.Maps.Count())

	engine, err := scripting.NewEngine(cfg.Simulation.ScriptsDir, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printOK("Lua scripts loaded")
	fmt.Println()

	// 4. Save slots
	printSection("storage")
	var slots persist.SlotStore
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pg, db, err := persist.OpenSlotStore(ctx, cfg.Database, log.Named("db"))
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		slots = pg
		printOK("PostgreSQL connected, migrations applied")
	default:
		slots = persist.NewMemoryStore()
		printOK("in-memory save slots")
	}
	saves := persist.NewSaveLoad(slots, cfg.Storage.SaveSlot, log.Named("saves"))
	fmt.Println()

	// 5. World
	printSection("world")
	maps := game.NewMaps(tables.Maps)
	w := world.New(log.Named("world"), world.WithMapProvider(maps))
	spawner := game.NewSpawner(tables, maps, cfg.Rules.InventoryCapacity, log.Named("spawn"))
	err = spawner.Populate(w, game.WorldSpec{
		MapID:  cfg.Simulation.MapID,
		Width:  cfg.Simulation.MapWidth,
		Height: cfg.Simulation.MapHeight,
		Seed:   cfg.Simulation.Seed,
		Era:    world.Era(cfg.Simulation.StartEra),
	})
	if err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	printStat("entities", w.Store().Pool().Len())

	eval := rules.NewEvaluator(engine, log.Named("rules"))
	deaths := legacy.NewManager(slots, cfg.Storage.GraveyardKey, cfg.Rules.MaxLoad,
		world.NewDeterministicRNG(cfg.Simulation.Seed, "legacy"), log.Named("legacy"))
	deaths.SetEpitapher(engine)

	pipeline := game.RegisterDefaultSystems(w, game.Deps{
		Tables:    tables,
		Evaluator: eval,
		Scripts:   engine,
		Deaths:    deaths,
		Saver:     saves,
		Rules:     cfg.Rules,
		Storage:   cfg.Storage,
		Seed:      cfg.Simulation.Seed,
		Log:       log.Named("sys"),
	})
	printStat("systems", len(w.Systems()))
	fmt.Println()

	// 6. Input and output
	input := game.NewLatestInput()
	var renderers []game.Renderer
	if !cfg.Simulation.Headless {
		renderers = append(renderers, game.NewASCIIRenderer(os.Stdout))
		go func() {
			if err := game.ReadLines(os.Stdin, input, log.Named("stdin")); err != nil {
				log.Warn("stdin closed", zap.Error(err))
			}
		}()
	}

	var netServer *gonet.Server
	if cfg.Network.Enabled {
		netServer, err = gonet.NewServer(cfg.Network, input, log.Named("net"))
		if err != nil {
			return fmt.Errorf("network: %w", err)
		}
		go func() {
			if err := netServer.Serve(); err != nil {
				log.Error("websocket server stopped", zap.Error(err))
			}
		}()
		renderers = append(renderers, netServer)
		printReady(fmt.Sprintf("listening on ws://%s%s", netServer.Addr().String(), cfg.Network.Path))
	}

	loop := game.NewLoop(game.LoopConfig{
		World:     w,
		Input:     input,
		Renderers: renderers,
		Slots:     saves,
		Spawner:   spawner,
		Pipeline:  pipeline,
		Dialogue:  tables.Dialogue,
		Evaluator: eval,
		PollRate:  cfg.Simulation.PollRate,
		Log:       log.Named("loop"),
	})

	// 7. Run until a quit command or a signal
	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			stop()
		case <-runCtx.Done():
		}
	}()

	printReady(fmt.Sprintf("game loop started (poll: %s)", cfg.Simulation.PollRate))
	err = loop.Run(runCtx)

	if netServer != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := netServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("websocket shutdown", zap.Error(err))
		}
	}
	log.Info("server stopped", zap.Int64("turn", w.Turn))
	return err
}

// loadConfig reads LIFESIM_CONFIG or config/server.toml. A missing default
// file falls back to built-in settings; a missing explicit file is an error.
func loadConfig() (*config.Config, error) {
	path := os.Getenv("LIFESIM_CONFIG")
	if path != "" {
		return config.Load(path)
	}
	path = "config/server.toml"
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
