package commands

import (
	"fmt"
	"os"

	"github.com/tas-github/ogeemo-timekeeper/internal/broadcast"
	"github.com/tas-github/ogeemo-timekeeper/internal/clock"
	"github.com/tas-github/ogeemo-timekeeper/internal/config"
	"github.com/tas-github/ogeemo-timekeeper/internal/journal"
	"github.com/tas-github/ogeemo-timekeeper/internal/ledger"
	"github.com/tas-github/ogeemo-timekeeper/internal/store"
	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
)

// app bundles the wired services every command needs: one data dir,
// one task database, one timer record, one broadcast bus.
type app struct {
	cfg     *config.Config
	clock   clock.Clock
	bus     *broadcast.Bus
	tasks   *store.Store
	timer   *timer.Store
	journal *journal.Journal
	ledger  *ledger.Ledger
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tasks, err := store.Open(cfg.TaskDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open task database: %w", err)
	}

	clk := clock.System()
	bus := broadcast.NewBus()

	tm, err := timer.NewStore(cfg.DataDir, clk, bus)
	if err != nil {
		tasks.Close()
		return nil, fmt.Errorf("failed to open timer record: %w", err)
	}

	jnl, err := journal.New(cfg.JournalDir())
	if err != nil {
		tasks.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		clock:   clk,
		bus:     bus,
		tasks:   tasks,
		timer:   tm,
		journal: jnl,
		ledger:  ledger.New(tasks, tm, jnl, clk),
	}, nil
}

func (a *app) Close() {
	a.bus.Close()
	a.tasks.Close()
}
