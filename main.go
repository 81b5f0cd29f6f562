package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Agentic-Enrichment-Grid/agent/agents/enricher"
	"github.com/tanpawarit/Agentic-Enrichment-Grid/agent/agents/orchestrator"
	"github.com/tanpawarit/Agentic-Enrichment-Grid/agent/grid"
	configx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/config"
	langgraphx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/langgraph"
	logx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/logger"
	_ "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/logger/autoload"
	"github.com/tanpawarit/Agentic-Enrichment-Grid/tui"
)

type AppConfig struct {
	GridSeed string `envconfig:"GRID_SEED"`
	Headless bool   `envconfig:"HEADLESS" default:"false"`
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("enrichment grid stopped")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	appCfg := configx.MustNew[AppConfig]("")
	logCfg := configx.MustNew[logx.Config]("LOG")
	if !appCfg.Headless && logCfg.File == "" {
		// The terminal UI owns stdout.
		logx.Discard()
	}

	langgraphCfg := configx.MustNew[langgraphx.Config]("LANGGRAPH")
	client := langgraphx.MustNew(*langgraphCfg)

	enrichCfg := configx.MustNew[orchestrator.Config]("ENRICH")

	g, err := loadGrid(appCfg.GridSeed)
	if err != nil {
		return err
	}

	e, err := enricher.New(client)
	if err != nil {
		return err
	}
	orch, err := orchestrator.New(g, e, *enrichCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appCfg.Headless {
		return runHeadless(ctx, g, orch)
	}

	app, err := tui.NewApp(g, orch, tui.WithContext(ctx))
	if err != nil {
		return err
	}
	defer app.Close()

	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func loadGrid(path string) (*grid.Grid, error) {
	var (
		seed grid.Seed
		err  error
	)
	if path == "" {
		seed, err = grid.DefaultSeed()
	} else {
		seed, err = grid.LoadSeed(path)
	}
	if err != nil {
		return nil, err
	}
	return grid.NewFromSeed(seed)
}

// runHeadless enriches every eligible cell once and prints the grid.
func runHeadless(ctx context.Context, g *grid.Grid, orch *orchestrator.Orchestrator) error {
	n := orch.TriggerEnrichment(ctx)
	log.Info().Int("scheduled", n).Msg("waiting for enrichment")

	if err := orch.Wait(ctx); err != nil {
		return fmt.Errorf("wait for enrichment: %w", err)
	}
	fmt.Println(tui.RenderSnapshot(g.Snapshot()))
	return nil
}
