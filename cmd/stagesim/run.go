package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/sensorstage/audit"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/levels"
	"github.com/milk9111/sensorstage/prefabs"
	"github.com/milk9111/sensorstage/sim"
)

var (
	flagTicks         int
	flagAudit         string
	flagWatch         bool
	flagTimeScale     float64
	flagSnapshotEvery int
)

var runCmd = &cobra.Command{
	Use:   "run <stage>",
	Short: "Run a stage and check its expectations",
	Long: `Builds the stage, steps it for --ticks ticks and checks every expected
contact listed in the stage file. With --watch the stage is rebuilt and rerun
whenever a file under levels/ or prefabs/ changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runStage,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
	runCmd.Flags().StringVar(&flagAudit, "audit", "", "Record contacts and snapshots to this SQLite file")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Rerun when stage, prefab or script files change")
	runCmd.Flags().Float64Var(&flagTimeScale, "timescale", 1, "Velocity multiplier per tick")
	runCmd.Flags().IntVar(&flagSnapshotEvery, "snapshot-every", 10, "Ticks between audit snapshots")
}

func runStage(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	name := args[0]

	if !flagWatch {
		return runOnce(logger, name)
	}

	watcher, err := prefabs.NewWatcher(prefabs.WatchDirs...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		if err := runOnce(logger, name); err != nil {
			logger.Error("run failed", "stage", name, "err", err)
		}
		logger.Info("watching for changes", "stage", name)
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			logger.Info("file changed", "kind", c.Kind, "path", c.Path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

func runOnce(logger *log.Logger, name string) error {
	stage, err := levels.LoadStage(name)
	if err != nil {
		return err
	}

	score := 0
	hooks := &component.Hooks{
		Sound: func(name string) { logger.Debug("sound", "name", name) },
		Score: func(points int) { score += points },
	}

	var rec *audit.Recorder
	if flagAudit != "" {
		rec, err = audit.Open(flagAudit, stage.Name)
		if err != nil {
			return err
		}
		defer rec.Close()
		hooks.Contact = rec.ContactHook()
	}

	s, err := sim.New(stage, sim.Options{Logger: logger, Hooks: hooks, TimeScale: flagTimeScale})
	if err != nil {
		return err
	}
	expect, err := sim.NewExpectations(s)
	if err != nil {
		return err
	}

	every := uint64(flagSnapshotEvery)
	if every == 0 {
		every = 1
	}
	s.Run(flagTicks, func(tick uint64, events []ecs.Event, contacts []sim.Contact) {
		expect.Observe(contacts)
		logEvents(logger, tick, events)
		if rec == nil || tick%every != 0 {
			return
		}
		for _, a := range s.Snapshot() {
			if err := rec.RecordSnapshot(audit.Snapshot{
				Tick:     tick,
				Actor:    uint64(a.Entity),
				X:        a.X,
				Y:        a.Y,
				AngleDeg: a.AngleDeg,
				Mode:     a.Mode,
				Grounded: a.Grounded,
			}); err != nil {
				logger.Warn("snapshot not recorded", "tick", tick, "err", err)
				return
			}
		}
	})

	if rec != nil {
		if err := rec.Err(); err != nil {
			return err
		}
		if err := rec.Close(); err != nil {
			return err
		}
		logger.Info("audit written", "path", flagAudit, "run", rec.Run())
	}

	if p, ok := s.Actor(s.Player()); ok {
		logger.Info("finished", "stage", stage.Name, "ticks", s.Tick(), "x", p.X, "y", p.Y, "rings", p.Rings, "score", score)
	} else {
		logger.Info("finished", "stage", stage.Name, "ticks", s.Tick(), "score", score)
	}

	results := expect.Results()
	for _, r := range results {
		if r.Met {
			fmt.Printf("  ok    %s\n", r)
		} else {
			fmt.Printf("  FAIL  %s\n", r)
		}
	}
	if n := expect.Failed(); n > 0 {
		return fmt.Errorf("%s: %d of %d expectations failed", stage.Name, n, len(results))
	}
	return nil
}

func logEvents(logger *log.Logger, tick uint64, events []ecs.Event) {
	for _, ev := range events {
		switch ev.Type {
		case ecs.EventActorLanded, ecs.EventActorAirborne:
			logger.Debug(ev.Type, "tick", tick, "entity", ev.Data)
		default:
			logger.Info(ev.Type, "tick", tick, "data", ev.Data)
		}
	}
}
