package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/levels"
	"github.com/milk9111/sensorstage/prefabs"
	"github.com/milk9111/sensorstage/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	logger    *log.Logger
	stageName string
	sim       *sim.Sim
	watcher   *prefabs.Watcher

	paused      bool
	stepOnce    bool
	showSensors bool
	jumpHeld    bool
	camX, camY  float64
	lastSound   string
}

func NewGame(stageName string, watch bool, logger *log.Logger) (*Game, error) {
	g := &Game{logger: logger, stageName: stageName, showSensors: true}
	s, err := sim.Load(stageName, sim.Options{Logger: logger, Hooks: g.hooks(), ManualInput: true})
	if err != nil {
		return nil, err
	}
	g.sim = s
	if watch {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs...)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) hooks() *component.Hooks {
	return &component.Hooks{
		Sound: func(name string) { g.lastSound = name },
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) reload() {
	stage, err := levels.LoadStage(g.stageName)
	if err != nil {
		g.logger.Error("reload failed", "stage", g.stageName, "err", err)
		return
	}
	if err := g.sim.Reload(stage); err != nil {
		g.logger.Error("reload failed", "stage", g.stageName, "err", err)
		return
	}
	g.logger.Info("stage reloaded", "stage", stage.Name)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case c, ok := <-g.watcher.Changes:
		if ok {
			g.logger.Info("file changed", "kind", c.Kind, "path", c.Path)
			g.reload()
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("watcher error", "err", err)
		}
	default:
	}
}

func (g *Game) readInput() component.Input {
	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveX++
	}
	in.Down = ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS)
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = in.Jump && !g.jumpHeld
	g.jumpHeld = in.Jump
	return in
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showSensors = !g.showSensors
	}

	in := g.readInput()
	if g.paused && !g.stepOnce {
		return nil
	}
	g.stepOnce = false
	g.sim.SetInput(in)
	g.sim.Step()

	if p, ok := g.sim.Actor(g.sim.Player()); ok {
		g.camX += (p.X - g.camX) * 0.2
		g.camY += (p.Y - g.camY) * 0.2
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	v := view{camX: g.camX, camY: g.camY, w: baseWidth, h: baseHeight}
	v.drawTerrain(screen, g.sim.Stage())
	v.drawSolids(screen, g.sim)
	v.drawGimmicks(screen, g.sim.Gimmicks())
	v.drawActors(screen, g.sim, g.showSensors)

	status := ""
	if g.paused {
		status = "  [paused, N to step]"
	}
	hud := fmt.Sprintf("%s  tick %d  FPS %.0f%s", g.sim.Stage().Name, g.sim.Tick(), ebiten.ActualFPS(), status)
	if p, ok := g.sim.Actor(g.sim.Player()); ok {
		hud += fmt.Sprintf("\nrings %d  gsp %.2f  v (%.2f, %.2f)  angle %.1f  mode %s  action %s",
			p.Rings, p.GroundSpeed, p.VX, p.VY, p.AngleDeg, p.Mode, p.Action)
		if p.GimmickMode != "" {
			hud += "  gimmick " + p.GimmickMode
		}
	}
	if g.lastSound != "" {
		hud += "\nsound " + g.lastSound
	}
	hud += "\narrows move  space jump  down roll  R reload  P pause  F1 sensors"
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
