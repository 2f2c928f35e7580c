// Command dewansim runs the parliamentary democracy simulation.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/azmanhj/dewansim/internal/api"
	"github.com/azmanhj/dewansim/internal/config"
	"github.com/azmanhj/dewansim/internal/engine"
	"github.com/azmanhj/dewansim/internal/geo"
	"github.com/azmanhj/dewansim/internal/persistence"
	"github.com/azmanhj/dewansim/internal/rng"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	start, err := cfg.Start()
	if err != nil {
		slog.Error("bad config", "error", err)
		os.Exit(1)
	}

	bills, err := config.LoadBills(cfg.BillCatalogPath)
	if err != nil {
		slog.Error("failed to load bill catalog", "error", err)
		os.Exit(1)
	}

	// ── Country ───────────────────────────────────────────────────────
	var country *geo.Country
	if cfg.ConstituencyCSV != "" {
		country, err = geo.LoadCSV(cfg.ConstituencyCSV)
		if err != nil {
			slog.Error("failed to load constituencies", "error", err)
			os.Exit(1)
		}
		slog.Info("constituencies loaded", "path", cfg.ConstituencyCSV, "seats", country.TotalSeats())
	} else {
		genCfg := geo.DefaultGenConfig()
		genCfg.Seed = cfg.Seed
		country = geo.Generate(genCfg)
		slog.Info("constituencies generated", "seats", country.TotalSeats())
	}

	// ── Database ──────────────────────────────────────────────────────
	db, err := persistence.Open(cfg.SnapshotPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.SnapshotPath)

	// ── Load or Generate World State ──────────────────────────────────
	rn := rng.New(cfg.Seed)
	var sim *engine.Simulation

	if db.HasSnapshot() {
		slog.Info("found saved world state, loading...")
		sim = engine.NewSimulation(country, rn, start)
		if err := db.LoadWorldState(sim); err != nil {
			slog.Error("failed to load world state", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("no saved state found, creating new world...")
		sim = engine.BuildWorld(country, rn, start)
		if err := db.SaveWorldState(sim); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}
	sim.BillCatalog = bills

	// ── Clock ─────────────────────────────────────────────────────────
	speed, ok := engine.ParseSpeed(cfg.Speed)
	if !ok {
		slog.Error("bad config", "speed", cfg.Speed)
		os.Exit(1)
	}
	ticker := engine.NewTicker(sim, speed)

	if cfg.SnapshotEveryDays > 0 {
		days := 0
		ticker.OnDay = func(s *engine.Simulation) {
			days++
			if days%cfg.SnapshotEveryDays != 0 {
				return
			}
			if err := db.SaveWorldState(s); err != nil {
				slog.Error("periodic save failed", "error", err)
			}
		}
	}

	// ── API ───────────────────────────────────────────────────────────
	server := &api.Server{
		Ticker:   ticker,
		DB:       db,
		Hub:      api.NewHub(),
		Addr:     cfg.APIAddr,
		AdminKey: os.Getenv("DEWANSIM_ADMIN_KEY"),
	}
	server.Start()

	// ── Run ───────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		slog.Info("shutting down")
		cancel()
	}()

	ticker.Run(ctx)

	ticker.Locked(func(s *engine.Simulation) {
		if err := db.SaveWorldState(s); err != nil {
			slog.Error("final save failed", "error", err)
		}
	})
}
